package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"riskwatch/internal/catalog"
	"riskwatch/internal/storage"
)

// initStore opens the document store at the configured data directory.
func initStore() (*storage.Store, error) {
	return storage.New(expandPath(viper.GetString("data.dir")), catalog.Default())
}

// expandPath expands a leading ~ and $VAR environment references in a path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}
