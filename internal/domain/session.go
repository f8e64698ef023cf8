package domain

import (
	"time"
)

// Conventional session statuses. The backend treats the field as free text.
const (
	StatusPlanifiee = "planifiee"
	StatusEnCours   = "en_cours"
	StatusTerminee  = "terminee"
	StatusAnnulee   = "annulee"
)

// Session is a single scheduled training engagement.
type Session struct {
	ID             int64    `json:"id"`
	Titre          string   `json:"titre"`
	Description    *string  `json:"description,omitempty"`
	DateDebut      string   `json:"date_debut"`
	DateFin        string   `json:"date_fin"`
	HeureDebut     *string  `json:"heure_debut,omitempty"`
	HeureFin       *string  `json:"heure_fin,omitempty"`
	FormateurID    *int64   `json:"formateur_id,omitempty"`
	ClientID       *int64   `json:"client_id,omitempty"`
	EcoleID        *int64   `json:"ecole_id,omitempty"`
	NbParticipants *int     `json:"nb_participants,omitempty"`
	Statut         string   `json:"statut"`
	Prix           *float64 `json:"prix,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	Modalite       Modality `json:"modalite,omitempty"`
}

// StartDate parses DateDebut. ok is false when the backend sent something unreadable.
func (s *Session) StartDate() (t time.Time, ok bool) {
	return ParseDate(s.DateDebut)
}

// EndDate parses DateFin.
func (s *Session) EndDate() (t time.Time, ok bool) {
	return ParseDate(s.DateFin)
}

// SessionCreate is the body of POST /sessions.
type SessionCreate struct {
	Titre          string   `json:"titre" validate:"required"`
	Description    *string  `json:"description,omitempty"`
	DateDebut      string   `json:"date_debut" validate:"required"`
	DateFin        string   `json:"date_fin" validate:"required"`
	HeureDebut     *string  `json:"heure_debut,omitempty"`
	HeureFin       *string  `json:"heure_fin,omitempty"`
	FormateurID    *int64   `json:"formateur_id,omitempty"`
	ClientID       *int64   `json:"client_id,omitempty"`
	EcoleID        *int64   `json:"ecole_id,omitempty"`
	NbParticipants *int     `json:"nb_participants,omitempty" validate:"omitempty,gte=0"`
	Statut         string   `json:"statut,omitempty"`
	Prix           *float64 `json:"prix,omitempty" validate:"omitempty,gte=0"`
	Notes          *string  `json:"notes,omitempty"`
	Modalite       Modality `json:"modalite,omitempty"`
}

// Normalize returns a copy ready for transmission: dates as YYYY-MM-DD,
// times as HH:MM:SS, modality as its wire letter, status defaulted.
func (in SessionCreate) Normalize() (SessionCreate, error) {
	var err error
	if in.DateDebut, err = NormalizeDate(in.DateDebut); err != nil {
		return in, err
	}
	if in.DateFin, err = NormalizeDate(in.DateFin); err != nil {
		return in, err
	}
	if in.HeureDebut, err = normalizeTimePtr(in.HeureDebut); err != nil {
		return in, err
	}
	if in.HeureFin, err = normalizeTimePtr(in.HeureFin); err != nil {
		return in, err
	}
	if in.Modalite != "" {
		if in.Modalite, err = ParseModality(string(in.Modalite)); err != nil {
			return in, err
		}
	}
	if in.Statut == "" {
		in.Statut = StatusPlanifiee
	}
	return in, nil
}

// SessionUpdate is the body of PUT /sessions/{id}. Nil fields are not sent.
type SessionUpdate struct {
	Titre          *string   `json:"titre,omitempty" validate:"omitempty,min=1"`
	Description    *string   `json:"description,omitempty"`
	DateDebut      *string   `json:"date_debut,omitempty"`
	DateFin        *string   `json:"date_fin,omitempty"`
	HeureDebut     *string   `json:"heure_debut,omitempty"`
	HeureFin       *string   `json:"heure_fin,omitempty"`
	FormateurID    *int64    `json:"formateur_id,omitempty"`
	ClientID       *int64    `json:"client_id,omitempty"`
	EcoleID        *int64    `json:"ecole_id,omitempty"`
	NbParticipants *int      `json:"nb_participants,omitempty" validate:"omitempty,gte=0"`
	Statut         *string   `json:"statut,omitempty"`
	Prix           *float64  `json:"prix,omitempty" validate:"omitempty,gte=0"`
	Notes          *string   `json:"notes,omitempty"`
	Modalite       *Modality `json:"modalite,omitempty"`
}

// Normalize applies the same rules as SessionCreate.Normalize to the present fields.
func (in SessionUpdate) Normalize() (SessionUpdate, error) {
	var err error
	if in.DateDebut != nil {
		d, err := NormalizeDate(*in.DateDebut)
		if err != nil {
			return in, err
		}
		in.DateDebut = &d
	}
	if in.DateFin != nil {
		d, err := NormalizeDate(*in.DateFin)
		if err != nil {
			return in, err
		}
		in.DateFin = &d
	}
	if in.HeureDebut, err = normalizeTimePtr(in.HeureDebut); err != nil {
		return in, err
	}
	if in.HeureFin, err = normalizeTimePtr(in.HeureFin); err != nil {
		return in, err
	}
	if in.Modalite != nil {
		m, err := ParseModality(string(*in.Modalite))
		if err != nil {
			return in, err
		}
		in.Modalite = &m
	}
	return in, nil
}

func normalizeTimePtr(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	t, err := NormalizeTime(*s)
	if err != nil {
		return s, err
	}
	return &t, nil
}
