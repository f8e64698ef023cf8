package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository/rest"
	"github.com/mhAkoum/LearnTrack-sub000/internal/service"
	"github.com/mhAkoum/LearnTrack-sub000/internal/viewmodel"
)

type appFunc func() *app

func newHealthCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend and its database answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			repo := rest.NewHealthRepository(a.base)
			h, err := repo.CheckHealth(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "api: %s %s\n", h.Status, h.Message)
			db, err := repo.CheckDatabaseHealth(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "database: %s %s\n", db.Status, db.Database)
			return nil
		},
	}
}

func newLoginCmd(get appFunc) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.FullName(), u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := a.auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			u, err := a.auth.CurrentUser()
			if errors.Is(err, service.ErrNotAuthenticated) {
				fmt.Fprintln(a.out, "Not logged in")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s <%s> %s\n", u.FullName(), u.Email, u.Role)
			return nil
		},
	}
}

func newSessionsCmd(get appFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "sessions", Short: "Training sessions"}

	var (
		search, statut, modalite, date string
		formateur, client, ecole       int64
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var f viewmodel.SessionFilter
			f.Statut = statut
			if modalite != "" {
				m, err := domain.ParseModality(modalite)
				if err != nil {
					return err
				}
				f.Modalite = m
			}
			if date != "" {
				day, ok := domain.ParseDate(date)
				if !ok {
					return fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
				}
				f.Date = &day
			}
			f.FormateurID = optionalID(cmd, "formateur", formateur)
			f.ClientID = optionalID(cmd, "client", client)
			f.EcoleID = optionalID(cmd, "ecole", ecole)

			vm := viewmodel.NewSessions(rest.NewSessionRepository(a.api), a.log)
			vm.Fetch(cmd.Context())
			if msg := vm.LastError(); msg != "" {
				return errors.New(msg)
			}
			vm.SetSearch(search)
			vm.SetFilter(f)
			return printSessions(a.out, vm.Filtered())
		},
	}
	list.Flags().StringVar(&search, "search", "", "text to look for in title, description, notes and status")
	list.Flags().StringVar(&statut, "statut", "", "status contains")
	list.Flags().StringVar(&modalite, "modalite", "", "on-site, remote, P or D")
	list.Flags().StringVar(&date, "date", "", "start day, YYYY-MM-DD")
	list.Flags().Int64Var(&formateur, "formateur", 0, "trainer id")
	list.Flags().Int64Var(&client, "client", 0, "client id")
	list.Flags().Int64Var(&ecole, "ecole", 0, "school id")

	summary := &cobra.Command{
		Use:   "summary <id>",
		Short: "Print the text shared for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text, err := a.shareService().SessionSummary(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, text)
			return nil
		},
	}

	share := &cobra.Command{
		Use:   "share <id>",
		Short: "Publish a session summary and print a temporary link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			url, err := a.shareService().ShareSession(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, url)
			return nil
		},
	}

	cmd.AddCommand(list, newSessionCreateCmd(get), newSessionUpdateCmd(get), newSessionDeleteCmd(get), summary, share)
	return cmd
}

func newFormateursCmd(get appFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "formateurs", Short: "Trainers"}
	var search, kind string
	list := &cobra.Command{
		Use:   "list",
		Short: "List trainers by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var f viewmodel.FormateurFilter
			switch t := domain.TrainerType(strings.ToLower(kind)); t {
			case "":
			case domain.TrainerInterne, domain.TrainerExterne:
				f.Type = t
			default:
				return fmt.Errorf("unknown trainer type %q", kind)
			}

			vm := viewmodel.NewFormateurs(rest.NewFormateurRepository(a.api), a.log)
			vm.Fetch(cmd.Context())
			if msg := vm.LastError(); msg != "" {
				return errors.New(msg)
			}
			vm.SetSearch(search)
			vm.SetFilter(f)

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSPECIALTY\tCITY")
			for _, t := range vm.Filtered() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.FullName(), t.Type(), deref(t.Specialite), deref(t.Ville))
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&search, "search", "", "text to look for in name, email, specialty, city and company")
	list.Flags().StringVar(&kind, "type", "", "interne or externe")
	cmd.AddCommand(list, newNestedSessionsCmd(get, "trainer", func(a *app) sessionLister {
		return rest.NewFormateurRepository(a.api).ListSessions
	}))
	return cmd
}

func newClientsCmd(get appFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "clients", Short: "Clients"}
	var search, actif string
	list := &cobra.Command{
		Use:   "list",
		Short: "List clients alphabetically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			f, err := activeFilter(actif)
			if err != nil {
				return err
			}
			vm := viewmodel.NewClients(rest.NewClientRepository(a.api), a.log)
			vm.Fetch(cmd.Context())
			if msg := vm.LastError(); msg != "" {
				return errors.New(msg)
			}
			vm.SetSearch(search)
			vm.SetFilter(f)

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tCITY\tACTIVE")
			for _, c := range vm.Filtered() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", c.ID, c.DisplayName(), deref(c.Entreprise), deref(c.Ville), c.Actif)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&search, "search", "", "text to look for in name, email, contact, city, SIRET and company")
	list.Flags().StringVar(&actif, "actif", "", "true or false")
	cmd.AddCommand(list, newNestedSessionsCmd(get, "client", func(a *app) sessionLister {
		return rest.NewClientRepository(a.api).ListSessions
	}))
	return cmd
}

func newEcolesCmd(get appFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "ecoles", Short: "Schools"}
	var search, actif string
	list := &cobra.Command{
		Use:   "list",
		Short: "List schools by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			f, err := activeFilter(actif)
			if err != nil {
				return err
			}
			vm := viewmodel.NewEcoles(rest.NewEcoleRepository(a.api), a.log)
			vm.Fetch(cmd.Context())
			if msg := vm.LastError(); msg != "" {
				return errors.New(msg)
			}
			vm.SetSearch(search)
			vm.SetFilter(f)

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCITY\tCONTACT\tACTIVE")
			for _, e := range vm.Filtered() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", e.ID, e.Nom, deref(e.Ville), deref(e.ContactNom), e.Actif)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&search, "search", "", "text to look for in name, city and contact")
	list.Flags().StringVar(&actif, "actif", "", "true or false")
	cmd.AddCommand(list, newNestedSessionsCmd(get, "school", func(a *app) sessionLister {
		return rest.NewEcoleRepository(a.api).ListSessions
	}))
	return cmd
}

func newUsersCmd(get appFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Accounts (admin only)"}
	var search, role string
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			f := viewmodel.UserFilter{Role: domain.Role(role)}
			if role != "" && !f.Role.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}
			vm := viewmodel.NewUsers(rest.NewUserRepository(a.api), a.log)
			vm.Fetch(cmd.Context())
			if msg := vm.LastError(); msg != "" {
				return errors.New(msg)
			}
			vm.SetSearch(search)
			vm.SetFilter(f)

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
			for _, u := range vm.Filtered() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.FullName(), u.Email, u.Role, u.Actif)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&search, "search", "", "text to look for in email and name")
	list.Flags().StringVar(&role, "role", "", "admin or user")
	cmd.AddCommand(list)
	return cmd
}

func (a *app) shareService() service.ShareService {
	repos := service.ShareRepositories{
		Sessions:   rest.NewSessionRepository(a.api),
		Formateurs: rest.NewFormateurRepository(a.api),
		Clients:    rest.NewClientRepository(a.api),
		Ecoles:     rest.NewEcoleRepository(a.api),
	}
	expiry := a.cfg.S3.ShareExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return service.NewShareService(repos, a.files, expiry, a.log)
}

func activeFilter(raw string) (viewmodel.ActiveFilter, error) {
	if raw == "" {
		return viewmodel.ActiveFilter{}, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return viewmodel.ActiveFilter{}, fmt.Errorf("--actif: %w", err)
	}
	return viewmodel.ActiveFilter{Actif: &v}, nil
}

// optionalID returns nil unless the flag was given on the command line.
func optionalID(cmd *cobra.Command, flag string, v int64) *int64 {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
