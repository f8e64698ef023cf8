package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Modality is the delivery mode of a session. Its value is the wire code.
type Modality string

const (
	ModalityOnSite Modality = "P"
	ModalityRemote Modality = "D"
)

// Display words.
const (
	WordOnSite = "on-site"
	WordRemote = "remote"
)

// ParseModality accepts a wire code or a display word, in any case.
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", WordOnSite, "onsite", "présentiel", "presentiel":
		return ModalityOnSite, nil
	case "d", WordRemote, "distanciel":
		return ModalityRemote, nil
	}
	return "", fmt.Errorf("unknown modality %q", s)
}

// Word returns the human-readable form of the modality.
func (m Modality) Word() string {
	if canonical, err := ParseModality(string(m)); err == nil {
		m = canonical
	}
	switch m {
	case ModalityOnSite:
		return WordOnSite
	case ModalityRemote:
		return WordRemote
	}
	return ""
}

func (m Modality) String() string {
	return m.Word()
}

func (m Modality) MarshalJSON() ([]byte, error) {
	if m == "" {
		return []byte("null"), nil
	}
	canonical, err := ParseModality(string(m))
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(canonical))
}

func (m *Modality) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		*m = ""
		return nil
	}
	parsed, err := ParseModality(*raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
