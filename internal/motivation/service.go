package motivation

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/keyring"
	"github.com/julianstephens/potato/internal/logger"
)

// KeySource names where an API key was found.
type KeySource string

const (
	KeyFromEnv     KeySource = "env"
	KeyFromKeyring KeySource = "keyring"
	KeyNone        KeySource = "none"
)

// Environment variables checked for the API key, in order.
var KeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// ResolveAPIKey looks up the key in the environment, then the OS keyring.
// getenv defaults to os.Getenv.
func ResolveAPIKey(getenv func(string) string) (string, KeySource) {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range KeyEnvVars {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v, KeyFromEnv
		}
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		return "", KeyNone
	}
	if key = strings.TrimSpace(key); key != "" {
		return key, KeyFromKeyring
	}
	return "", KeyNone
}

// Service turns generator results into display text. It never fails.
type Service struct {
	gen Generator
}

// NewService wraps gen. A nil generator means no credentials are configured.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// FromEnvironment builds a Gemini-backed service when an API key is available.
func FromEnvironment(model string) *Service {
	key, src := ResolveAPIKey(nil)
	if src == KeyNone {
		logger.Debug("No text generation API key configured")
		return NewService(nil)
	}
	logger.Debug("Using text generation API key", "source", src, "model", model)
	return NewService(NewGeminiGenerator(key, model))
}

// Configured reports whether a generator is present.
func (s *Service) Configured() bool {
	return s != nil && s.gen != nil
}

// Motivate returns a line for the given completion percentage.
func (s *Service) Motivate(ctx context.Context, percent int) string {
	if !s.Configured() {
		return constants.FallbackNoKey
	}
	percent = clamp(percent)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, constants.MotivationTimeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, percent)
	switch {
	case err == nil && strings.TrimSpace(text) == "":
		return constants.FallbackEmpty
	case err == nil:
		return strings.TrimSpace(text)
	case IsRateLimit(err):
		logger.Warn("Text generation quota exceeded, using fallback", "error", err)
		return constants.FallbackRateLimit
	default:
		logger.Error("Text generation failed", "error", err)
		return constants.FallbackError
	}
}

func clamp(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
