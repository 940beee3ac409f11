// Package preset downloads terrain configuration presets.
//
// Sources use go-getter syntax, e.g. a local directory, an https URL or
// "git::https://example.com/presets.git//alpine". A preset is a directory
// holding a config.json, or a single config.json file.
package preset

import (
	"context"
	"fmt"
	"os"

	getter "github.com/hashicorp/go-getter"
)

// Fetch downloads src into dir. dir must not exist yet, or be the result of an
// earlier Fetch of a local source.
func Fetch(ctx context.Context, src, dir string) error {
	if src == "" {
		return fmt.Errorf("preset source required")
	}
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dir,
		Pwd:  pwd,
		Mode: getter.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("fetch preset %s: %w", src, err)
	}
	return nil
}
