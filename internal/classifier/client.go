// Package classifier extracts structured vocabulary and grammar items from
// raw note text using the Anthropic API. Transient rate limiting is retried
// internally with a fixed delay up to a small attempt cap; once the budget
// is exhausted the failure is surfaced as ErrRateLimited so the caller can
// defer the whole file to a batch-level retry.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/linguanote/linguanote/internal/config"
	"github.com/linguanote/linguanote/internal/domain"
)

// messageCreator is the slice of the Anthropic SDK the client uses.
type messageCreator interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client classifies raw note text into candidate items.
type Client struct {
	cfg  config.ClassifierConfig
	keys *KeyProvider
	log  *slog.Logger

	// api overrides the real SDK transport in tests.
	api messageCreator
	// sleep overrides the inter-attempt delay in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a classifier client. The underlying SDK client is built
// lazily on first use so a missing credential fails the call, not startup.
func New(cfg config.ClassifierConfig, keys *KeyProvider, log *slog.Logger) *Client {
	return &Client{
		cfg:   cfg,
		keys:  keys,
		log:   log.With(slog.String("service", "classifier")),
		sleep: sleepCtx,
	}
}

// Classify sends the entire note text to the model and returns the ordered
// list of extracted candidate items. Failures are classified:
// ErrAPIKeyMissing, ErrRateLimited (retry budget exhausted), ErrTruncated
// (the model hit its token ceiling), or a generic error with details.
func (c *Client) Classify(ctx context.Context, text string) ([]domain.CandidateItem, error) {
	api := c.api
	if api == nil {
		key, err := c.keys.Key()
		if err != nil {
			if errors.Is(err, ErrAPIKeyMissing) {
				return nil, ErrAPIKeyMissing
			}
			return nil, fmt.Errorf("classifier: load api key: %w", err)
		}
		client := anthropic.NewClient(option.WithAPIKey(key))
		api = &client.Messages
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: c.cfg.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text))),
		},
	}

	var msg *anthropic.Message
	for attempt := 1; ; attempt++ {
		var err error
		msg, err = api.New(ctx, params)
		if err == nil {
			break
		}
		if !isRateLimit(err) {
			return nil, fmt.Errorf("classifier: api call: %w", err)
		}
		if attempt >= c.cfg.MaxAttempts {
			return nil, ErrRateLimited
		}
		c.log.Warn("rate limited, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", c.cfg.RetryDelay),
		)
		if err := c.sleep(ctx, c.cfg.RetryDelay); err != nil {
			return nil, err
		}
	}

	if msg.StopReason == anthropic.StopReasonMaxTokens {
		return nil, ErrTruncated
	}
	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("classifier: empty response")
	}

	return parseResponse(msg.Content[0].Text)
}

// parseResponse extracts and decodes the JSON array from the model output.
func parseResponse(responseText string) ([]domain.CandidateItem, error) {
	jsonStr, err := extractJSONArray(responseText)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	var wire []noteItem
	if err := json.Unmarshal([]byte(jsonStr), &wire); err != nil {
		return nil, fmt.Errorf("classifier: decode response: %w", err)
	}

	items := make([]domain.CandidateItem, 0, len(wire))
	for _, n := range wire {
		items = append(items, n.toDomain())
	}
	return items, nil
}

// extractJSONArray finds the first complete JSON array in a string.
func extractJSONArray(s string) (string, error) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON array found in response")
	}
	out := s[start : end+1]
	if !json.Valid([]byte(out)) {
		return "", fmt.Errorf("response does not contain valid JSON")
	}
	return out, nil
}

// isRateLimit reports whether err is an HTTP 429 (or 529 overloaded)
// response from the API.
func isRateLimit(err error) bool {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests || apierr.StatusCode == 529
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
