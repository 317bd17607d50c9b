package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"redflag/internal/cache"
	"redflag/internal/model"
	"redflag/internal/prompt"
	"redflag/internal/scoring"
)

var (
	ErrEmptyCredential = errors.New("you sent me air, I need the key, not vibes")
	ErrNoCredential    = errors.New("missing API key, go back to intake and paste it")
	ErrNoResult        = errors.New("no verdict yet, go back to the questionnaire and submit")
	ErrBadPage         = errors.New("unknown page")
)

// IncompleteError reports a questionnaire submission with required fields
// still unanswered. The submission is kept; only the transition is blocked.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("unanswered required fields: %s", strings.Join(e.Missing, ", "))
}

// SessionService owns the intake → questionnaire → verdict state machine.
// Every transition loads the session, applies its guard, and saves the
// session back; no state lives anywhere else.
type SessionService struct {
	store    cache.SessionStore
	auth     *AuthService
	advice   *AdviceService
	tokenTTL time.Duration
}

// NewSessionService creates a new session service.
func NewSessionService(store cache.SessionStore, auth *AuthService, advice *AdviceService, tokenTTL time.Duration) *SessionService {
	return &SessionService{
		store:    store,
		auth:     auth,
		advice:   advice,
		tokenTTL: tokenTTL,
	}
}

// Create starts a fresh session on the intake page and returns it with its
// bearer token.
func (s *SessionService) Create(ctx context.Context) (*model.Session, string, error) {
	session := model.NewSession(uuid.New().String())

	token, err := s.auth.IssueSessionToken(session.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Get loads a session by id.
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	return s.store.Get(ctx, id)
}

// SubmitCredential handles the intake submit. An empty credential blocks
// the transition; a non-empty one is stored and moves the session to the
// questionnaire.
func (s *SessionService) SubmitCredential(ctx context.Context, id, apiKey string) (*model.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrEmptyCredential
	}

	session.APIKey = apiKey
	session.Page = model.PageQuestionnaire
	session.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveDraft stores the current questionnaire form without any completeness
// check, so in-progress answers survive navigation.
func (s *SessionService) SaveDraft(ctx context.Context, id string, form *model.AnswerForm) (*model.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.APIKey == "" {
		return nil, ErrNoCredential
	}

	session.Answers = form.Record()
	session.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit is the questionnaire → verdict transition. The form is stored
// either way; if required fields are missing the transition is blocked and
// an IncompleteError names them.
func (s *SessionService) Submit(ctx context.Context, id string, form *model.AnswerForm) (*model.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.APIKey == "" {
		return nil, ErrNoCredential
	}

	session.Answers = form.Record()
	session.UpdatedAt = time.Now()

	if missing := session.Answers.MissingFields(); len(missing) > 0 {
		// Keep what was entered, stay on the questionnaire.
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
		return session, &IncompleteError{Missing: missing}
	}

	result := scoring.Score(session.Answers)
	session.Result = &result
	session.Page = model.PageVerdict
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Navigate handles explicit back navigation. Intake and questionnaire are
// always reachable; verdict only when a result exists.
func (s *SessionService) Navigate(ctx context.Context, id string, target model.Page) (*model.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch target {
	case model.PageIntake:
	case model.PageQuestionnaire:
		if session.APIKey == "" {
			return nil, ErrNoCredential
		}
	case model.PageVerdict:
		if session.Result == nil {
			return nil, ErrNoResult
		}
	default:
		return nil, ErrBadPage
	}

	session.Page = target
	session.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Verdict returns the session if it holds a computed result.
func (s *SessionService) Verdict(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Result == nil {
		return nil, ErrNoResult
	}
	return session, nil
}

// Advice builds the prompt for the session's verdict and issues one
// advisory call with the session's credential. Each call of this method is
// one attempt; retrying is the caller pressing the button again.
func (s *SessionService) Advice(ctx context.Context, id string) (string, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if session.Result == nil {
		return "", ErrNoResult
	}
	if session.APIKey == "" {
		return "", ErrNoCredential
	}

	p := prompt.Build(session.Answers, *session.Result)
	msg, aerr := s.advice.GetAdvice(ctx, p, session.APIKey)
	if aerr != nil {
		return "", aerr
	}
	return msg, nil
}
