package localize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/diewo77/go-wills/internal/willdoc"
)

// Failure taxonomy surfaced to callers. A failed localization never touches
// the stored default-language document; the caller offers that instead.
var (
	ErrOverloaded = errors.New("localize: model overloaded")
	ErrAuthFailed = errors.New("localize: credentials rejected")
	ErrFailed     = errors.New("localize: generation failed")
)

const defaultModel = "gemini-2.5-flash"

// Gemini produces a translated rendition of the will document through the
// Gemini API. One call per invocation; retry policy is the caller's problem.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("localize: API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("localize: create client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Localize returns a complete HTML will in the target language. The model
// output is fence-stripped, shape-checked and sanitized before it is handed
// back; the upstream model remains responsible for translation fidelity.
func (g *Gemini) Localize(ctx context.Context, doc *willdoc.Document, language string) (string, error) {
	prompt, err := BuildPrompt(doc, language)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailed, err)
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}
	html := StripFences(resp.Text())
	if err := CheckHTML(html); err != nil {
		return "", err
	}
	return Sanitize(html), nil
}

// StripFences removes any markdown code fence the model wrapped the document
// in.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```html", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// CheckHTML rejects output that is empty or does not look like a markup
// document. The upstream contract is HTML-only; anything else is a failure,
// not something to render.
func CheckHTML(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty response", ErrFailed)
	}
	if !strings.HasPrefix(s, "<") || !strings.Contains(s, "</") {
		return fmt.Errorf("%w: response is not HTML", ErrFailed)
	}
	return nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 503, 529:
			return fmt.Errorf("%w: %s", ErrOverloaded, apiErr.Message)
		case 401, 403:
			return fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Message)
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "overloaded") || strings.Contains(msg, "503") || strings.Contains(msg, "unavailable"):
		return fmt.Errorf("%w: %v", ErrOverloaded, err)
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "permission"):
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	default:
		return fmt.Errorf("%w: %v", ErrFailed, err)
	}
}
