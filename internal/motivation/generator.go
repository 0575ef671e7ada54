// Package motivation fetches short encouraging lines from a text generation
// service and falls back to canned text when it cannot.
package motivation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/julianstephens/potato/internal/constants"
)

// Generator produces one motivational line for a completion percentage.
type Generator interface {
	Generate(ctx context.Context, percent int) (string, error)
}

// Prompt is the request sent to the model.
func Prompt(percent int) string {
	return fmt.Sprintf("Give me a very short, cute, one-sentence motivational quote for a habit tracker user "+
		"who has completed %d%% of their tasks today. Act like a supportive potato character.", percent)
}

// GeminiGenerator calls the Gemini API. The client is created on first use.
type GeminiGenerator struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if model == "" {
		model = constants.DefaultModel
	}
	return &GeminiGenerator{apiKey: apiKey, model: model}
}

func (g *GeminiGenerator) Model() string {
	return g.model
}

func (g *GeminiGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text generation client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, percent int) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(Prompt(percent)), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// IsRateLimit reports whether err is a quota rejection from the API.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
