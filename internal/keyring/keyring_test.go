package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("  test-key-1234  "); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}

	got, err := GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey() failed: %v", err)
	}
	if got != "test-key-1234" {
		t.Errorf("GetAPIKey() = %q, want %q", got, "test-key-1234")
	}
}

func TestSetAPIKeyEmpty(t *testing.T) {
	gokeyring.MockInit()

	for _, key := range []string{"", "   "} {
		if err := SetAPIKey(key); err == nil {
			t.Errorf("SetAPIKey(%q) should return an error", key)
		}
	}
}

func TestGetAPIKeyNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteAPIKey()

	_, err := GetAPIKey()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("abc"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() failed: %v", err)
	}
	if _, err := GetAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAPIKey() after delete error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestKeyringUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))
	t.Cleanup(gokeyring.MockInit)

	if _, err := GetAPIKey(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetAPIKey() error = %v, want %v", err, ErrKeyringUnavailable)
	}
	if IsAvailable() {
		t.Error("IsAvailable() = true with a failing keyring")
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"abc":          "***",
		"abcd":         "****",
		"AIzaSy123456": "********3456",
	}
	for in, want := range tests {
		if got := Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}
