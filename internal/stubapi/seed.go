package stubapi

import (
	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
)

// Demo credentials created by SeedDemo.
const (
	DemoAdminEmail    = "admin@learntrack.fr"
	DemoAdminPassword = "admin1234"
)

// SeedDemo fills the store with a small, consistent data set for local use.
func (s *Server) SeedDemo() error {
	if _, err := s.AddUser(DemoAdminEmail, DemoAdminPassword, "Admin", "LearnTrack", domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.AddUser("jeanne.durand@learntrack.fr", "jeanne1234", "Durand", "Jeanne", domain.RoleUser); err != nil {
		return err
	}

	claire, err := s.Seed(Formateurs, domain.Formateur{
		Nom: "Martin", Prenom: "Claire", Email: domain.Ptr("claire.martin@example.fr"),
		Specialite: domain.Ptr("Go"), TarifJournalier: domain.Ptr(650.0), Externe: true,
		Societe: domain.Ptr("Gopher Conseil"), Ville: domain.Ptr("Lyon"),
	})
	if err != nil {
		return err
	}
	paul, err := s.Seed(Formateurs, domain.Formateur{
		Nom: "Bernard", Prenom: "Paul", Specialite: domain.Ptr("Kubernetes"), Ville: domain.Ptr("Paris"),
	})
	if err != nil {
		return err
	}

	acme, err := s.Seed(Clients, domain.Client{
		Nom: "Dupont", Prenom: domain.Ptr("Marc"), Entreprise: domain.Ptr("Acme"),
		Email: domain.Ptr("marc.dupont@acme.fr"), Ville: domain.Ptr("Lyon"), Actif: true,
	})
	if err != nil {
		return err
	}
	if _, err := s.Seed(Clients, domain.Client{Nom: "Abel", Entreprise: domain.Ptr("Globex"), Actif: false}); err != nil {
		return err
	}

	ens, err := s.Seed(Ecoles, domain.Ecole{
		Nom: "ENS Lyon", Ville: domain.Ptr("Lyon"), ContactNom: domain.Ptr("Petit"), Capacite: domain.Ptr(40), Actif: true,
	})
	if err != nil {
		return err
	}

	sessions := []domain.Session{
		{
			Titre: "Go avancé", DateDebut: "2024-03-04", DateFin: "2024-03-06",
			HeureDebut: domain.Ptr("09:00:00"), HeureFin: domain.Ptr("17:00:00"),
			FormateurID: &claire, ClientID: &acme, NbParticipants: domain.Ptr(8), Prix: domain.Ptr(4200.0),
			Statut: domain.StatusTerminee, Modalite: domain.ModalityOnSite,
		},
		{
			Titre: "Kubernetes en production", DateDebut: "2024-09-16", DateFin: "2024-09-17",
			FormateurID: &paul, EcoleID: &ens, NbParticipants: domain.Ptr(20),
			Statut: domain.StatusPlanifiee, Modalite: domain.ModalityRemote,
		},
	}
	for _, session := range sessions {
		if _, err := s.Seed(Sessions, session); err != nil {
			return err
		}
	}
	return nil
}
