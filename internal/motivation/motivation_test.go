package motivation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/keyring"
)

type fakeGenerator struct {
	mu   sync.Mutex
	text string
	err  error
	got  []int
}

func (f *fakeGenerator) Generate(ctx context.Context, percent int) (string, error) {
	f.mu.Lock()
	f.got = append(f.got, percent)
	f.mu.Unlock()
	return f.text, f.err
}

func TestMotivateFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
		want string
	}{
		{"no credentials", nil, constants.FallbackNoKey},
		{"text", &fakeGenerator{text: "  Keep sprouting!  "}, "Keep sprouting!"},
		{"empty", &fakeGenerator{text: "   "}, constants.FallbackEmpty},
		{"rate limit code", &fakeGenerator{err: errors.New("Error 429, Message: quota")}, constants.FallbackRateLimit},
		{"rate limit status", &fakeGenerator{err: errors.New("RESOURCE_EXHAUSTED")}, constants.FallbackRateLimit},
		{"other error", &fakeGenerator{err: errors.New("dial tcp: timeout")}, constants.FallbackError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(tt.gen)
			if got := s.Motivate(context.Background(), 40); got != tt.want {
				t.Errorf("Motivate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMotivateClampsPercent(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	s := NewService(gen)
	for _, p := range []int{-10, 50, 250} {
		s.Motivate(context.Background(), p)
	}
	want := []int{0, 50, 100}
	for i := range want {
		if gen.got[i] != want[i] {
			t.Errorf("call %d percent = %d, want %d", i, gen.got[i], want[i])
		}
	}
}

func TestNilServiceNotConfigured(t *testing.T) {
	var s *Service
	if s.Configured() {
		t.Error("nil service reported configured")
	}
	if got := s.Motivate(context.Background(), 10); got != constants.FallbackNoKey {
		t.Errorf("Motivate() = %q", got)
	}
}

func TestPrompt(t *testing.T) {
	p := Prompt(60)
	if !strings.Contains(p, "completed 60% of their tasks today") {
		t.Errorf("Prompt() = %q", p)
	}
	if !strings.Contains(p, "supportive potato character") {
		t.Errorf("Prompt() missing persona: %q", p)
	}
}

func TestIsRateLimit(t *testing.T) {
	if IsRateLimit(nil) {
		t.Error("nil is not a rate limit")
	}
	if !IsRateLimit(errors.New("googleapi: Error 429: Too Many Requests")) {
		t.Error("429 not detected")
	}
	if IsRateLimit(errors.New("Error 500")) {
		t.Error("500 detected as rate limit")
	}
}

func TestResolveAPIKey(t *testing.T) {
	gokeyring.MockInit()

	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	if _, src := ResolveAPIKey(getenv); src != KeyNone {
		t.Errorf("empty environment source = %s", src)
	}

	if err := keyring.SetAPIKey("from-keyring"); err != nil {
		t.Fatal(err)
	}
	if key, src := ResolveAPIKey(getenv); key != "from-keyring" || src != KeyFromKeyring {
		t.Errorf("keyring lookup = %q, %s", key, src)
	}

	env["API_KEY"] = "fallback-env"
	if key, src := ResolveAPIKey(getenv); key != "fallback-env" || src != KeyFromEnv {
		t.Errorf("API_KEY lookup = %q, %s", key, src)
	}

	env["GEMINI_API_KEY"] = "primary-env"
	if key, _ := ResolveAPIKey(getenv); key != "primary-env" {
		t.Errorf("GEMINI_API_KEY should win, got %q", key)
	}
}

func TestResolveAPIKeyKeyringError(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))
	t.Cleanup(gokeyring.MockInit)

	if _, src := ResolveAPIKey(func(string) string { return "" }); src != KeyNone {
		t.Errorf("source = %s, want none", src)
	}
}

func TestNewGeminiGeneratorDefaultModel(t *testing.T) {
	if got := NewGeminiGenerator("k", "").Model(); got != constants.DefaultModel {
		t.Errorf("Model() = %q", got)
	}
	if got := NewGeminiGenerator("k", "gemini-custom").Model(); got != "gemini-custom" {
		t.Errorf("Model() = %q", got)
	}
}

func TestDebouncerLastWriteWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	results := make(chan string, 4)

	firstCancelled := make(chan struct{})
	d.Trigger(context.Background(), func(ctx context.Context) string {
		<-ctx.Done()
		close(firstCancelled)
		return "first"
	}, func(s string) { results <- s })

	// Let the first job start before superseding it
	time.Sleep(50 * time.Millisecond)
	d.Trigger(context.Background(), func(ctx context.Context) string {
		return "second"
	}, func(s string) { results <- s })

	select {
	case <-firstCancelled:
	case <-time.After(time.Second):
		t.Fatal("first job context was not cancelled")
	}

	select {
	case got := <-results:
		if got != "second" {
			t.Errorf("delivered %q, want second", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case got := <-results:
		t.Errorf("unexpected extra delivery %q", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var mu sync.Mutex
	runs := 0
	results := make(chan string, 10)

	for i := 0; i < 5; i++ {
		d.Trigger(context.Background(), func(ctx context.Context) string {
			mu.Lock()
			runs++
			mu.Unlock()
			return "done"
		}, func(s string) { results <- s })
	}

	select {
	case <-results:
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if runs != 1 {
		t.Errorf("job ran %d times, want 1", runs)
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	results := make(chan string, 1)
	d.Trigger(context.Background(), func(ctx context.Context) string { return "x" }, func(s string) { results <- s })
	d.Stop()

	select {
	case got := <-results:
		t.Errorf("stopped debouncer delivered %q", got)
	case <-time.After(80 * time.Millisecond):
	}
}
