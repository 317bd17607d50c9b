package model

import (
	"strings"
	"time"
)

// Page identifies one of the three screens.
type Page string

const (
	PageIntake        Page = "intake"
	PageQuestionnaire Page = "questionnaire"
	PageVerdict       Page = "verdict"
)

// ParsePage validates a navigation target.
func ParsePage(raw string) (Page, bool) {
	switch Page(strings.ToLower(strings.TrimSpace(raw))) {
	case PageIntake:
		return PageIntake, true
	case PageQuestionnaire:
		return PageQuestionnaire, true
	case PageVerdict:
		return PageVerdict, true
	default:
		return "", false
	}
}

// Session is the whole state of one user's walk through the app. It is
// owned by the session store and passed explicitly through every
// transition; nothing about it is global.
type Session struct {
	ID        string       `json:"id"`
	Page      Page         `json:"page"`
	APIKey    string       `json:"apiKey"` // advisory credential; masked in responses, never logged
	Answers   AnswerRecord `json:"answers"`
	Result    *ScoreResult `json:"result,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewSession returns a fresh session on the intake page.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Page:      PageIntake,
		Answers:   NewAnswerRecord(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MaskedKey is the echo-back form of the credential: dots only, with the
// length clamped so the real length leaks at most coarsely.
func (s *Session) MaskedKey() string {
	if s.APIKey == "" {
		return ""
	}
	n := len(s.APIKey)
	if n < 8 {
		n = 8
	}
	if n > 16 {
		n = 16
	}
	return strings.Repeat("•", n)
}
