package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"redflag/internal/config"
)

// AdviceErrorKind classifies an advisory failure for the user.
type AdviceErrorKind string

const (
	AdviceRateLimited AdviceErrorKind = "rate_limited"
	AdviceUnknown     AdviceErrorKind = "unknown"
)

// AdviceError is the only error type the advisory call surfaces. The
// classification happens at this boundary so nothing upstream ever
// string-matches an error message.
type AdviceError struct {
	Kind    AdviceErrorKind
	Message string
}

func (e *AdviceError) Error() string {
	return e.Message
}

// AdviceService calls the generative advisory API. One request per user
// action, no retry, no backoff: the user re-triggers manually.
type AdviceService struct {
	config *config.AIConfig
	client *http.Client
}

// NewAdviceService creates a new advice service.
func NewAdviceService(cfg *config.AIConfig) *AdviceService {
	return &AdviceService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// GetAdvice issues exactly one generateContent request with the session's
// credential and returns the trimmed response text.
func (s *AdviceService) GetAdvice(ctx context.Context, prompt, apiKey string) (string, *AdviceError) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": s.config.Temperature,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &AdviceError{Kind: AdviceUnknown, Message: err.Error()}
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(), apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", &AdviceError{Kind: AdviceUnknown, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[Advice] POST %s model=%s", s.config.BaseURL, s.config.Model)
	resp, err := s.client.Do(req)
	if err != nil {
		return "", &AdviceError{Kind: AdviceUnknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AdviceError{Kind: AdviceUnknown, Message: err.Error()}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		log.Printf("[Advice] rate limited (429)")
		return "", &AdviceError{Kind: AdviceRateLimited, Message: "the oracle is saturated, wait a minute and retry"}
	}
	if resp.StatusCode >= 400 {
		log.Printf("[Advice] API error %d", resp.StatusCode)
		return "", &AdviceError{Kind: AdviceUnknown, Message: fmt.Sprintf("advisory API error %d: %s", resp.StatusCode, string(body))}
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", &AdviceError{Kind: AdviceUnknown, Message: err.Error()}
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", &AdviceError{Kind: AdviceUnknown, Message: "empty response from advisory API"}
	}

	return strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text), nil
}
