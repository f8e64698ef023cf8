// Command learntrack is a terminal front-end to the LearnTrack backend.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mhAkoum/LearnTrack-sub000/internal/config"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository/rest"
	"github.com/mhAkoum/LearnTrack-sub000/internal/service"
	"github.com/mhAkoum/LearnTrack-sub000/internal/storage"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", repository.Message(err))
		os.Exit(1)
	}
}

// app holds everything a command needs, built once per invocation.
type app struct {
	cfg   config.Config
	log   zerolog.Logger
	base  *rest.Client
	api   *rest.Client
	auth  service.AuthService
	out   io.Writer
	files storage.FileStorage
}

func newApp(ctx context.Context, configDir string, out, errOut io.Writer) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log := config.NewLogger(cfg.Log, errOut)

	base, err := rest.NewClient(cfg.API.BaseURL, rest.WithTimeout(cfg.API.Timeout), rest.WithLogger(log))
	if err != nil {
		return nil, err
	}

	tokens, err := tokenStore(cfg.Auth, log)
	if err != nil {
		return nil, err
	}
	auth := service.NewAuthService(rest.NewAuthRepository(base), tokens, log, service.WithFallbackToken(cfg.API.Bearer))

	a := &app{
		cfg:  cfg,
		log:  log,
		base: base,
		api:  base.WithTokens(auth),
		auth: auth,
		out:  out,
	}
	if cfg.S3.Enabled() {
		if a.files, err = storage.NewS3Storage(ctx, cfg.S3, log); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// tokenStore persists tokens in an encrypted file when a passphrase is set.
// Without one, a login only lasts for the current command.
func tokenStore(cfg config.AuthConfig, log zerolog.Logger) (storage.TokenStore, error) {
	if cfg.Passphrase == "" {
		log.Debug().Msg("no auth passphrase configured, tokens are not persisted")
		return storage.NewMemoryTokenStore(), nil
	}
	path := cfg.TokenFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "learntrack", "tokens")
	}
	return storage.NewFileTokenStore(path, cfg.Passphrase), nil
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var (
		configDir string
		a         *app
	)
	root := &cobra.Command{
		Use:           "learntrack",
		Short:         "Manage training sessions, trainers, clients and schools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(cmd.Context(), configDir, out, errOut)
			return err
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding config.yaml and .env")

	get := func() *app { return a }
	root.AddCommand(
		newHealthCmd(get),
		newLoginCmd(get),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newSessionsCmd(get),
		newFormateursCmd(get),
		newClientsCmd(get),
		newEcolesCmd(get),
		newUsersCmd(get),
	)
	return root
}
