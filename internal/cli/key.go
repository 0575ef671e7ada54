package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/potato/internal/keyring"
	"github.com/julianstephens/potato/internal/motivation"
)

type KeyCmd struct {
	Set    KeySetCmd    `cmd:"" help:"Store the text generation API key in the OS keyring."`
	Delete KeyDeleteCmd `cmd:"" help:"Remove the API key from the OS keyring."`
	Status KeyStatusCmd `cmd:"" help:"Show where the API key comes from." default:"1"`
}

// KeySetCmd stores the API key in the OS keyring
type KeySetCmd struct {
	Key string `arg:"" optional:"" help:"API key. Read from standard input when omitted."`
}

func (cmd *KeySetCmd) Run(ctx *Context) error {
	key := cmd.Key
	if key == "" {
		ctx.printf("API key: ")
		line, err := bufio.NewReader(ctx.in()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key = strings.TrimSpace(line)
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	ctx.println("✓ API key stored successfully in OS keyring")
	return nil
}

// KeyDeleteCmd removes the API key from the OS keyring
type KeyDeleteCmd struct{}

func (cmd *KeyDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	ctx.println("✓ API key deleted from OS keyring")
	return nil
}

// KeyStatusCmd reports keyring availability and the active key source
type KeyStatusCmd struct{}

func (cmd *KeyStatusCmd) Run(ctx *Context) error {
	if keyring.IsAvailable() {
		ctx.println("✓ OS keyring is available")
	} else {
		ctx.println("❌ OS keyring is not available on this system")
	}

	key, src := motivation.ResolveAPIKey(nil)
	switch src {
	case motivation.KeyFromEnv:
		ctx.printf("✓ API key from environment (%s)\n", keyring.Mask(key))
	case motivation.KeyFromKeyring:
		ctx.printf("✓ API key from keyring (%s)\n", keyring.Mask(key))
	default:
		ctx.println("ℹ No API key configured, motivational lines use built-in text")
		ctx.printf("  Set %s or run 'potato key set'\n", strings.Join(motivation.KeyEnvVars, " or "))
	}
	return nil
}
