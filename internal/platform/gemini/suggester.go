package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/chorely-api/internal/config"
	"github.com/phrazzld/chorely-api/internal/generation"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 2
)

// contentGenerator is the subset of *genai.Models the suggester calls.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Suggester implements generation.Suggester using the Gemini API.
type Suggester struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	models         contentGenerator
	model          string
	// sleep waits between retries; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ generation.Suggester = (*Suggester)(nil)

// NewSuggester creates a Gemini-backed Suggester from LLM configuration.
func NewSuggester(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Suggester, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newSuggester(logger, cfg, client.Models)
}

func newSuggester(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) (*Suggester, error) {
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	tmpl, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Suggester{
		logger:         logger.With(slog.String("component", "gemini_suggester")),
		config:         cfg,
		promptTemplate: tmpl,
		models:         models,
		model:          cfg.ModelName,
		sleep:          sleepContext,
	}, nil
}

// SuggestTasks implements generation.Suggester.
func (s *Suggester) SuggestTasks(
	ctx context.Context,
	req generation.SuggestionRequest,
) ([]generation.Suggestion, error) {
	req.RoomID = strings.TrimSpace(req.RoomID)
	if req.RoomID == "" {
		return nil, generation.ErrEmptyRoom
	}

	prompt, err := renderPrompt(s.promptTemplate, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text, err := s.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	suggestions, err := parseResponse(text, req)
	if err != nil {
		s.logger.WarnContext(ctx, "Gemini response could not be used",
			"room_id", req.RoomID,
			"error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Generated chore suggestions",
		"room_id", req.RoomID,
		"count", len(suggestions))
	return suggestions, nil
}

// callWithRetry calls the model with exponential backoff and jitter.
// Safety blocks, malformed replies and client errors other than 429 are
// returned without retrying.
func (s *Suggester) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := s.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	baseDelaySeconds := s.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = defaultRetryDelaySeconds
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	for attempt := 0; ; attempt++ {
		s.logger.DebugContext(ctx, "Making Gemini API call",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), genConfig)
		if err == nil {
			return extractText(resp)
		}

		s.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctxErr)
		}
		if code, ok := clientErrorCode(err); ok {
			return "", fmt.Errorf("%w: request rejected with status %d: %v",
				generation.ErrGenerationFailed, code, err)
		}
		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		if err := s.sleep(ctx, backoff(baseDelaySeconds, attempt)); err != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}
}

// clientErrorCode returns the status of a Gemini API error in the 4xx range,
// excluding 429. Such errors (bad key, bad request) fail the same way on retry.
func clientErrorCode(err error) (int, bool) {
	var code int
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code = apiErrPtr.Code
	default:
		return 0, false
	}
	if code < 400 || code >= 500 || code == http.StatusTooManyRequests {
		return 0, false
	}
	return code, true
}

// backoff returns baseDelay * 2^attempt scaled by a jitter factor in [0.5, 1.0).
func backoff(baseDelaySeconds, attempt int) time.Duration {
	seconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(seconds * jitter * float64(time.Second))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return b.String(), nil
}
