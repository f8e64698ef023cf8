package domain

// Client is a customer ordering training sessions.
type Client struct {
	ID         int64   `json:"id"`
	Nom        string  `json:"nom"`
	Prenom     *string `json:"prenom,omitempty"`
	Email      *string `json:"email,omitempty"`
	Telephone  *string `json:"telephone,omitempty"`
	Entreprise *string `json:"entreprise,omitempty"`
	ContactNom *string `json:"contact_nom,omitempty"`
	Siret      *string `json:"siret,omitempty"`
	Adresse    *string `json:"adresse,omitempty"`
	CodePostal *string `json:"code_postal,omitempty"`
	Ville      *string `json:"ville,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Actif      bool    `json:"actif"`
}

// DisplayName returns the company or person name shown in lists.
func (c *Client) DisplayName() string {
	return joinName(deref(c.Prenom), c.Nom)
}

// ClientCreate is the body of POST /clients.
type ClientCreate struct {
	Nom        string  `json:"nom" validate:"required"`
	Prenom     *string `json:"prenom,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Telephone  *string `json:"telephone,omitempty"`
	Entreprise *string `json:"entreprise,omitempty"`
	ContactNom *string `json:"contact_nom,omitempty"`
	Siret      *string `json:"siret,omitempty"`
	Adresse    *string `json:"adresse,omitempty"`
	CodePostal *string `json:"code_postal,omitempty"`
	Ville      *string `json:"ville,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Actif      *bool   `json:"actif,omitempty"`
}

// ClientUpdate is the body of PUT /clients/{id}. Nil fields are not sent.
type ClientUpdate struct {
	Nom        *string `json:"nom,omitempty" validate:"omitempty,min=1"`
	Prenom     *string `json:"prenom,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Telephone  *string `json:"telephone,omitempty"`
	Entreprise *string `json:"entreprise,omitempty"`
	ContactNom *string `json:"contact_nom,omitempty"`
	Siret      *string `json:"siret,omitempty"`
	Adresse    *string `json:"adresse,omitempty"`
	CodePostal *string `json:"code_postal,omitempty"`
	Ville      *string `json:"ville,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Actif      *bool   `json:"actif,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
