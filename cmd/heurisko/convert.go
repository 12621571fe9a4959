package main

import (
	"fmt"
	"path/filepath"

	"github.com/mooss/heurisko/config"
	"github.com/mooss/heurisko/ingest"
)

// convertPath ports the source system's command_convert onto the shared
// ingest.ConvertPath, adding progress lines to stdout.
func convertPath(source, destination string, flatten bool, cfg *config.Config) error {
	destRoot := filepath.Join(cfg.DataDir, destination)

	return ingest.ConvertPath(source, destRoot, flatten, func(src, dest string) {
		fmt.Printf("Converting: %s -> %s\n", src, dest)
	})
}
