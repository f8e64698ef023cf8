package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
	"github.com/mhAkoum/LearnTrack-sub000/internal/storage"
)

var ErrSharingDisabled = errors.New("no object storage configured for sharing")

// ShareService produces the text shown in the share sheet of a session.
type ShareService interface {
	// SessionSummary renders the session for the clipboard.
	SessionSummary(ctx context.Context, id int64) (string, error)
	// ShareSession publishes the summary and returns a temporary download link.
	ShareSession(ctx context.Context, id int64) (string, error)
}

// ShareRepositories groups the lookups used to resolve names in a summary.
// Any of Formateurs, Clients and Ecoles may be nil.
type ShareRepositories struct {
	Sessions   repository.SessionRepository
	Formateurs repository.FormateurRepository
	Clients    repository.ClientRepository
	Ecoles     repository.EcoleRepository
}

type shareService struct {
	repos  ShareRepositories
	files  storage.FileStorage
	expiry time.Duration
	log    zerolog.Logger
}

// NewShareService creates the service. files may be nil, in which case only
// SessionSummary works.
func NewShareService(repos ShareRepositories, files storage.FileStorage, expiry time.Duration, log zerolog.Logger) ShareService {
	return &shareService{
		repos:  repos,
		files:  files,
		expiry: expiry,
		log:    log.With().Str("service", "share").Logger(),
	}
}

func (s *shareService) SessionSummary(ctx context.Context, id int64) (string, error) {
	session, err := s.repos.Sessions.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return RenderSummary(session, s.names(ctx, session)), nil
}

func (s *shareService) ShareSession(ctx context.Context, id int64) (string, error) {
	if s.files == nil {
		return "", ErrSharingDisabled
	}
	text, err := s.SessionSummary(ctx, id)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("shares/sessions/%d/%s.txt", id, uuid.NewString())
	if err := s.files.PutObject(ctx, key, "text/plain; charset=utf-8", []byte(text)); err != nil {
		return "", fmt.Errorf("uploading summary: %w", err)
	}
	url, err := s.files.GeneratePresignedDownloadURL(ctx, key, s.expiry)
	if err != nil {
		if delErr := s.files.DeleteObject(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("could not remove orphan summary")
		}
		return "", fmt.Errorf("presigning summary: %w", err)
	}
	s.log.Info().Int64("session_id", id).Str("key", key).Msg("session shared")
	return url, nil
}

// SummaryNames are the display names of the parties of a session. Empty means unknown.
type SummaryNames struct {
	Formateur string
	Client    string
	Ecole     string
}

// names resolves what it can; a failed lookup falls back to the raw id.
func (s *shareService) names(ctx context.Context, session *domain.Session) SummaryNames {
	var n SummaryNames
	if id := session.FormateurID; id != nil {
		n.Formateur = "#" + strconv.FormatInt(*id, 10)
		if s.repos.Formateurs != nil {
			if f, err := s.repos.Formateurs.Get(ctx, *id); err == nil {
				n.Formateur = f.FullName()
			} else {
				s.log.Debug().Err(err).Int64("formateur_id", *id).Msg("trainer lookup failed")
			}
		}
	}
	if id := session.ClientID; id != nil {
		n.Client = "#" + strconv.FormatInt(*id, 10)
		if s.repos.Clients != nil {
			if c, err := s.repos.Clients.Get(ctx, *id); err == nil {
				n.Client = c.DisplayName()
			} else {
				s.log.Debug().Err(err).Int64("client_id", *id).Msg("client lookup failed")
			}
		}
	}
	if id := session.EcoleID; id != nil {
		n.Ecole = "#" + strconv.FormatInt(*id, 10)
		if s.repos.Ecoles != nil {
			if e, err := s.repos.Ecoles.Get(ctx, *id); err == nil {
				n.Ecole = e.Nom
			} else {
				s.log.Debug().Err(err).Int64("ecole_id", *id).Msg("school lookup failed")
			}
		}
	}
	return n
}

const displayDate = "02/01/2006"

// RenderSummary formats a session as plain text, one field per line, skipping
// what is not set.
func RenderSummary(s *domain.Session, n SummaryNames) string {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	line("Session", s.Titre)
	start, end := displayDay(s.DateDebut), displayDay(s.DateFin)
	switch {
	case start != "" && end != "" && start != end:
		line("Dates", start+" - "+end)
	default:
		line("Date", start)
	}
	if hours := timeRange(s.HeureDebut, s.HeureFin); hours != "" {
		line("Hours", hours)
	}
	if s.Modalite != "" {
		line("Modality", s.Modalite.Word())
	}
	line("Trainer", n.Formateur)
	line("Client", n.Client)
	line("School", n.Ecole)
	if s.NbParticipants != nil {
		line("Participants", strconv.Itoa(*s.NbParticipants))
	}
	if s.Prix != nil {
		line("Price", strconv.FormatFloat(*s.Prix, 'f', 2, 64)+" EUR")
	}
	line("Status", s.Statut)
	if s.Description != nil && *s.Description != "" {
		b.WriteString("\n" + strings.TrimSpace(*s.Description) + "\n")
	}
	return b.String()
}

func displayDay(raw string) string {
	if t, ok := domain.ParseDate(raw); ok {
		return t.Format(displayDate)
	}
	return raw
}

func timeRange(from, to *string) string {
	f, t := shortTime(from), shortTime(to)
	switch {
	case f != "" && t != "":
		return f + " - " + t
	case f != "":
		return "from " + f
	case t != "":
		return "until " + t
	}
	return ""
}

// shortTime renders HH:MM:SS as HH:MM. Unreadable values are shown as sent.
func shortTime(s *string) string {
	if s == nil || *s == "" {
		return ""
	}
	if norm, err := domain.NormalizeTime(*s); err == nil {
		return norm[:5]
	}
	return *s
}
