package domain

// Ecole is a school hosting or ordering sessions.
type Ecole struct {
	ID               int64   `json:"id"`
	Nom              string  `json:"nom"`
	ContactNom       *string `json:"contact_nom,omitempty"`
	ContactPrenom    *string `json:"contact_prenom,omitempty"`
	ContactEmail     *string `json:"contact_email,omitempty"`
	ContactTelephone *string `json:"contact_telephone,omitempty"`
	Adresse          *string `json:"adresse,omitempty"`
	CodePostal       *string `json:"code_postal,omitempty"`
	Ville            *string `json:"ville,omitempty"`
	Capacite         *int    `json:"capacite,omitempty"`
	Actif            bool    `json:"actif"`
}

// EcoleCreate is the body of POST /ecoles.
type EcoleCreate struct {
	Nom              string  `json:"nom" validate:"required"`
	ContactNom       *string `json:"contact_nom,omitempty"`
	ContactPrenom    *string `json:"contact_prenom,omitempty"`
	ContactEmail     *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactTelephone *string `json:"contact_telephone,omitempty"`
	Adresse          *string `json:"adresse,omitempty"`
	CodePostal       *string `json:"code_postal,omitempty"`
	Ville            *string `json:"ville,omitempty"`
	Capacite         *int    `json:"capacite,omitempty" validate:"omitempty,gte=0"`
	Actif            *bool   `json:"actif,omitempty"`
}

// EcoleUpdate is the body of PUT /ecoles/{id}. Nil fields are not sent.
type EcoleUpdate struct {
	Nom              *string `json:"nom,omitempty" validate:"omitempty,min=1"`
	ContactNom       *string `json:"contact_nom,omitempty"`
	ContactPrenom    *string `json:"contact_prenom,omitempty"`
	ContactEmail     *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactTelephone *string `json:"contact_telephone,omitempty"`
	Adresse          *string `json:"adresse,omitempty"`
	CodePostal       *string `json:"code_postal,omitempty"`
	Ville            *string `json:"ville,omitempty"`
	Capacite         *int    `json:"capacite,omitempty" validate:"omitempty,gte=0"`
	Actif            *bool   `json:"actif,omitempty"`
}
