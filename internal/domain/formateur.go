package domain

// TrainerType is the human projection of Formateur.Externe.
type TrainerType string

const (
	TrainerInterne TrainerType = "interne"
	TrainerExterne TrainerType = "externe"
)

// Formateur is a trainer delivering sessions, internal or external to the business.
type Formateur struct {
	ID              int64    `json:"id"`
	Nom             string   `json:"nom"`
	Prenom          string   `json:"prenom"`
	Email           *string  `json:"email,omitempty"`
	Telephone       *string  `json:"telephone,omitempty"`
	Specialite      *string  `json:"specialite,omitempty"`
	TarifJournalier *float64 `json:"tarif_journalier,omitempty"`
	Externe         FlexBool `json:"externe"`
	Societe         *string  `json:"societe,omitempty"`
	Siret           *string  `json:"siret,omitempty"`
	Adresse         *string  `json:"adresse,omitempty"`
	CodePostal      *string  `json:"code_postal,omitempty"`
	Ville           *string  `json:"ville,omitempty"`
}

// Type derives "interne"/"externe" from the Externe flag. It is never stored.
func (f *Formateur) Type() TrainerType {
	if f.Externe {
		return TrainerExterne
	}
	return TrainerInterne
}

// FullName returns "Prenom Nom".
func (f *Formateur) FullName() string {
	return joinName(f.Prenom, f.Nom)
}

// FormateurCreate is the body of POST /formateurs.
type FormateurCreate struct {
	Nom             string   `json:"nom" validate:"required"`
	Prenom          string   `json:"prenom" validate:"required"`
	Email           *string  `json:"email,omitempty" validate:"omitempty,email"`
	Telephone       *string  `json:"telephone,omitempty"`
	Specialite      *string  `json:"specialite,omitempty"`
	TarifJournalier *float64 `json:"tarif_journalier,omitempty" validate:"omitempty,gte=0"`
	Externe         bool     `json:"externe"`
	Societe         *string  `json:"societe,omitempty"`
	Siret           *string  `json:"siret,omitempty"`
	Adresse         *string  `json:"adresse,omitempty"`
	CodePostal      *string  `json:"code_postal,omitempty"`
	Ville           *string  `json:"ville,omitempty"`
}

// FormateurUpdate is the body of PUT /formateurs/{id}. Nil fields are not sent.
type FormateurUpdate struct {
	Nom             *string  `json:"nom,omitempty" validate:"omitempty,min=1"`
	Prenom          *string  `json:"prenom,omitempty"`
	Email           *string  `json:"email,omitempty" validate:"omitempty,email"`
	Telephone       *string  `json:"telephone,omitempty"`
	Specialite      *string  `json:"specialite,omitempty"`
	TarifJournalier *float64 `json:"tarif_journalier,omitempty" validate:"omitempty,gte=0"`
	Externe         *bool    `json:"externe,omitempty"`
	Societe         *string  `json:"societe,omitempty"`
	Siret           *string  `json:"siret,omitempty"`
	Adresse         *string  `json:"adresse,omitempty"`
	CodePostal      *string  `json:"code_postal,omitempty"`
	Ville           *string  `json:"ville,omitempty"`
}
