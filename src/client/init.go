package main

import (
	"fmt"

	"github.com/apimgr/swapi/src/client/paths"
)

// InitCLI prepares the CLI environment before any command runs.
// Config and log directories are created with owner-only permissions so
// that later file writes never race directory creation.
func InitCLI() error {
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("init directories: %w", err)
	}
	return nil
}
