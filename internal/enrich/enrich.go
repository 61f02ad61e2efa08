package enrich

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/meridian/fund-console/internal/prompts"
)

// Result holds the generated content for one company.
type Result struct {
	Tagline  string   `json:"tagline,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Service generates enrichment content through an LLM client.
type Service struct {
	client Client
}

// NewService wraps an LLM client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// EnrichCompany generates tagline, tags, and keywords concurrently. Any
// single generation failing fails the whole call; the caller retries.
func (s *Service) EnrichCompany(ctx context.Context, name, description string) (*Result, error) {
	if err := validateInput(name, description); err != nil {
		return nil, err
	}

	var result Result
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tagline, err := s.GenerateTagline(gctx, name, description)
		if err != nil {
			return err
		}
		result.Tagline = tagline
		return nil
	})
	g.Go(func() error {
		tags, err := s.GenerateTags(gctx, name, description)
		if err != nil {
			return err
		}
		result.Tags = tags
		return nil
	})
	g.Go(func() error {
		keywords, err := s.GenerateKeywords(gctx, name, description)
		if err != nil {
			return err
		}
		result.Keywords = keywords
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, &GenerationError{Message: "enrichment failed", Cause: err}
	}
	return &result, nil
}

// GenerateTagline produces a one-line tagline.
func (s *Service) GenerateTagline(ctx context.Context, name, description string) (string, error) {
	template := prompts.MustGet("enrichment.json", "generate-tagline")
	prompt := prompts.Format(template, map[string]string{
		"Name":        name,
		"Description": description,
	})
	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Message: "failed to generate tagline", Cause: err}
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"`)), nil
}

// GenerateTags produces category tags.
func (s *Service) GenerateTags(ctx context.Context, name, description string) ([]string, error) {
	return s.generateList(ctx, "generate-tags", name, description)
}

// GenerateKeywords produces search keywords.
func (s *Service) GenerateKeywords(ctx context.Context, name, description string) ([]string, error) {
	return s.generateList(ctx, "generate-keywords", name, description)
}

// GenerateRationale produces an investment rationale from deal notes.
func (s *Service) GenerateRationale(ctx context.Context, name, description, notes string) (string, error) {
	template := prompts.MustGet("enrichment.json", "generate-rationale")
	prompt := prompts.Format(template, map[string]string{
		"Name":        name,
		"Description": description,
		"Notes":       notes,
	})
	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Message: "failed to generate rationale", Cause: err}
	}
	return strings.TrimSpace(text), nil
}

func (s *Service) generateList(ctx context.Context, promptKey, name, description string) ([]string, error) {
	template := prompts.MustGet("enrichment.json", promptKey)
	prompt := prompts.Format(template, map[string]string{
		"Name":        name,
		"Description": description,
	})
	text, err := s.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Message: "failed to generate " + promptKey, Cause: err}
	}

	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, &ParseError{Message: "response was not a JSON string array", Cause: err}
	}

	// Normalize: lowercase, trim, dedupe, keep order.
	seen := make(map[string]bool)
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out, nil
}

func validateInput(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "company name is required"}
	}
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	return nil
}
