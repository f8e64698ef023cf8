package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository/rest"
	"github.com/mhAkoum/LearnTrack-sub000/internal/viewmodel"
)

// sessionForm holds the flags shared by sessions create and update.
type sessionForm struct {
	titre, description, notes, statut, modalite string
	debut, fin, heureDebut, heureFin            string
	formateur, client, ecole                    int64
	participants                                int
	prix                                        float64
}

func (f *sessionForm) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.titre, "titre", "", "title")
	fs.StringVar(&f.description, "description", "", "description")
	fs.StringVar(&f.notes, "notes", "", "internal notes")
	fs.StringVar(&f.statut, "statut", "", "status, planifiee when omitted on create")
	fs.StringVar(&f.modalite, "modalite", "", "on-site, remote, P or D")
	fs.StringVar(&f.debut, "debut", "", "start day, YYYY-MM-DD")
	fs.StringVar(&f.fin, "fin", "", "end day, YYYY-MM-DD")
	fs.StringVar(&f.heureDebut, "heure-debut", "", "start time, HH:MM")
	fs.StringVar(&f.heureFin, "heure-fin", "", "end time, HH:MM")
	fs.Int64Var(&f.formateur, "formateur", 0, "trainer id")
	fs.Int64Var(&f.client, "client", 0, "client id")
	fs.Int64Var(&f.ecole, "ecole", 0, "school id")
	fs.IntVar(&f.participants, "participants", 0, "number of participants")
	fs.Float64Var(&f.prix, "prix", 0, "price in euros")
}

// str returns a pointer to v when the flag was set, nil otherwise.
func str(cmd *cobra.Command, flag, v string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}

func (f *sessionForm) create(cmd *cobra.Command) (domain.SessionCreate, error) {
	in := domain.SessionCreate{
		Titre:       f.titre,
		Description: str(cmd, "description", f.description),
		Notes:       str(cmd, "notes", f.notes),
		Statut:      f.statut,
		DateDebut:   f.debut,
		DateFin:     f.fin,
		HeureDebut:  str(cmd, "heure-debut", f.heureDebut),
		HeureFin:    str(cmd, "heure-fin", f.heureFin),
		FormateurID: optionalID(cmd, "formateur", f.formateur),
		ClientID:    optionalID(cmd, "client", f.client),
		EcoleID:     optionalID(cmd, "ecole", f.ecole),
	}
	if cmd.Flags().Changed("participants") {
		in.NbParticipants = &f.participants
	}
	if cmd.Flags().Changed("prix") {
		in.Prix = &f.prix
	}
	if f.modalite != "" {
		m, err := domain.ParseModality(f.modalite)
		if err != nil {
			return in, err
		}
		in.Modalite = m
	}
	return in, nil
}

func (f *sessionForm) update(cmd *cobra.Command) (domain.SessionUpdate, error) {
	in := domain.SessionUpdate{
		Titre:       str(cmd, "titre", f.titre),
		Description: str(cmd, "description", f.description),
		Notes:       str(cmd, "notes", f.notes),
		Statut:      str(cmd, "statut", f.statut),
		DateDebut:   str(cmd, "debut", f.debut),
		DateFin:     str(cmd, "fin", f.fin),
		HeureDebut:  str(cmd, "heure-debut", f.heureDebut),
		HeureFin:    str(cmd, "heure-fin", f.heureFin),
		FormateurID: optionalID(cmd, "formateur", f.formateur),
		ClientID:    optionalID(cmd, "client", f.client),
		EcoleID:     optionalID(cmd, "ecole", f.ecole),
	}
	if cmd.Flags().Changed("participants") {
		in.NbParticipants = &f.participants
	}
	if cmd.Flags().Changed("prix") {
		in.Prix = &f.prix
	}
	if cmd.Flags().Changed("modalite") {
		m, err := domain.ParseModality(f.modalite)
		if err != nil {
			return in, err
		}
		in.Modalite = &m
	}
	return in, nil
}

func newSessionCreateCmd(get appFunc) *cobra.Command {
	var form sessionForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			in, err := form.create(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewSessions(rest.NewSessionRepository(a.api), a.log)
			s, err := vm.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created session %d\n", s.ID)
			return nil
		},
	}
	form.bind(cmd)
	return cmd
}

func newSessionUpdateCmd(get appFunc) *cobra.Command {
	var form sessionForm
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := form.update(cmd)
			if err != nil {
				return err
			}
			vm := viewmodel.NewSessions(rest.NewSessionRepository(a.api), a.log)
			if _, err := vm.Update(cmd.Context(), id, in); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated session %d\n", id)
			return nil
		},
	}
	form.bind(cmd)
	return cmd
}

func newSessionDeleteCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			vm := viewmodel.NewSessions(rest.NewSessionRepository(a.api), a.log)
			if err := vm.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted session %d\n", id)
			return nil
		},
	}
}

type sessionLister func(ctx context.Context, id int64) ([]domain.Session, error)

// newNestedSessionsCmd lists the sessions attached to one trainer, client or school.
func newNestedSessionsCmd(get appFunc, owner string, lister func(*app) sessionLister) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions <id>",
		Short: "List the sessions of a " + owner + ", most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			items, err := lister(a)(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printSessions(a.out, viewmodel.FilterSessions(items, "", viewmodel.SessionFilter{}))
		},
	}
}

func printSessions(out io.Writer, items []domain.Session) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND\tMODALITY\tSTATUS")
	for _, s := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Titre, s.DateDebut, s.DateFin, s.Modalite.Word(), s.Statut)
	}
	return w.Flush()
}
