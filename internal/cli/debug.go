package cli

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/julianstephens/potato/internal/storage"
)

type DebugCmd struct {
	Path DebugPathCmd `cmd:"" help:"Show storage location."`
	Keys DebugKeysCmd `cmd:"" help:"List stored record keys."`
	Dump DebugDumpCmd `cmd:"" help:"Dump a stored record as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
		"kind": string(storage.KindOf(ctx.Store)),
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	keys, err := ctx.Store.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		ctx.println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Record key, e.g. potatoHabits or potatoGameStats."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	raw, err := ctx.Store.Get(cmd.Key)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("record not found: %s", cmd.Key)
	}
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		// Not JSON, print as stored
		ctx.println(string(raw))
		return nil
	}
	ctx.println(out.String())
	return nil
}
