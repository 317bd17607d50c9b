package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag/internal/cache"
	"redflag/internal/model"
)

func newTestService(t *testing.T, adviceURL string) *SessionService {
	t.Helper()
	store := cache.NewMemorySessionStore(time.Hour)
	auth := NewAuthService("test-secret")
	advice := NewAdviceService(testAIConfig(adviceURL))
	return NewSessionService(store, auth, advice, time.Hour)
}

// completeForm answers every required field.
func completeForm() *model.AnswerForm {
	return &model.AnswerForm{
		Location:          "cafe",
		LetMeSpeak:        "8",
		Listened:          "7",
		AskedQuestions:    "6",
		PhoneGlances:      2,
		StaffTreatment:    "polite",
		ValuesAlignment:   "8",
		BoundaryRespect:   "full",
		ExTopic:           "casual",
		PrivacyControl:    "no",
		Jealousy:          "none",
		IsolationPressure: "no",
		SubstancePressure: "no",
		LoveBombing:       "no",
		Inconsistencies:   "no",
	}
}

func TestCreate_StartsOnIntake(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	session, token, err := svc.Create(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.PageIntake, session.Page)
	assert.Empty(t, session.APIKey)
	assert.Nil(t, session.Result)
	assert.False(t, session.Answers.Complete())
}

func TestSubmitCredential_EmptyStaysOnIntake(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.SubmitCredential(ctx, session.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyCredential)

	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PageIntake, got.Page)
}

func TestSubmitCredential_MovesToQuestionnaire(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)

	got, err := svc.SubmitCredential(ctx, session.ID, "  AIzaSy-test  ")
	require.NoError(t, err)
	assert.Equal(t, model.PageQuestionnaire, got.Page)
	assert.Equal(t, "AIzaSy-test", got.APIKey)
	assert.NotEmpty(t, got.MaskedKey())
}

func TestSubmit_IncompleteBlocksAndKeepsAnswers(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitCredential(ctx, session.ID, "key")
	require.NoError(t, err)

	form := completeForm()
	form.Jealousy = "unanswered"
	form.ExTopic = ""

	_, err = svc.Submit(ctx, session.ID, form)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.ElementsMatch(t, []string{"jealousy", "exTopic"}, incomplete.Missing)

	// The transition is blocked but nothing entered is lost.
	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PageQuestionnaire, got.Page)
	assert.Nil(t, got.Result)
	assert.Equal(t, model.Scale(8), got.Answers.LetMeSpeak)
}

func TestSubmit_CompleteComputesVerdict(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitCredential(ctx, session.ID, "key")
	require.NoError(t, err)

	got, err := svc.Submit(ctx, session.ID, completeForm())
	require.NoError(t, err)

	assert.Equal(t, model.PageVerdict, got.Page)
	require.NotNil(t, got.Result)
	assert.GreaterOrEqual(t, got.Result.Score, 0)
	assert.LessOrEqual(t, got.Result.Score, 100)

	// Green flags and notes are optional: submission went through without them.
	verdict, err := svc.Verdict(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Result.Score, verdict.Result.Score)
}

func TestSubmit_WithoutCredential(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, completeForm())
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestNavigate_BackRetainsState(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitCredential(ctx, session.ID, "key")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, session.ID, completeForm())
	require.NoError(t, err)

	// Verdict → questionnaire → intake, everything retained.
	got, err := svc.Navigate(ctx, session.ID, model.PageQuestionnaire)
	require.NoError(t, err)
	assert.Equal(t, model.PageQuestionnaire, got.Page)
	assert.True(t, got.Answers.Complete())
	assert.NotNil(t, got.Result)

	got, err = svc.Navigate(ctx, session.ID, model.PageIntake)
	require.NoError(t, err)
	assert.Equal(t, model.PageIntake, got.Page)
	assert.Equal(t, "key", got.APIKey)

	// Forward to verdict again: allowed because a result exists.
	got, err = svc.Navigate(ctx, session.ID, model.PageVerdict)
	require.NoError(t, err)
	assert.Equal(t, model.PageVerdict, got.Page)
}

func TestNavigate_VerdictWithoutResult(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitCredential(ctx, session.ID, "key")
	require.NoError(t, err)

	_, err = svc.Navigate(ctx, session.ID, model.PageVerdict)
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = svc.Verdict(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestAdvice_FullFlow(t *testing.T) {
	t.Parallel()

	var prompts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		prompts = append(prompts, body.Contents[0].Parts[0].Text)
		w.Write([]byte(geminiText("bestie verdict")))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitCredential(ctx, session.ID, "key")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, session.ID, completeForm())
	require.NoError(t, err)

	msg, err := svc.Advice(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "bestie verdict", msg)
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Score:")

	// A second call is one more attempt, nothing automatic in between.
	_, err = svc.Advice(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, prompts, 2)
}

func TestAdvice_BeforeVerdict(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Advice(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestAdvice_RateLimitSurfacesKind(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	ctx := context.Background()
	session, _, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitCredential(ctx, session.ID, "key")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, session.ID, completeForm())
	require.NoError(t, err)

	_, err = svc.Advice(ctx, session.ID)

	var aerr *AdviceError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, AdviceRateLimited, aerr.Kind)

	// The failed call corrupted nothing: verdict and answers are intact.
	got, gerr := svc.Verdict(ctx, session.ID)
	require.NoError(t, gerr)
	assert.NotNil(t, got.Result)
	assert.True(t, got.Answers.Complete())
}

func TestGet_UnknownSession(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused")
	_, err := svc.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, cache.ErrSessionNotFound))
}
