package config

import (
	"os"
	"strings"
)

// applyEnv layers REFDOC_* environment overrides onto the loaded settings.
// They win over the file so CI pipelines can redirect output or stamp a
// release version without editing the project definition.
func applyEnv(s *Settings) {
	if v := strings.TrimSpace(os.Getenv("REFDOC_OUTPUT")); v != "" {
		s.Output = v
	}
	if v := strings.TrimSpace(os.Getenv("REFDOC_VERSION")); v != "" {
		s.Project.Version = v
	}
	if v := strings.TrimSpace(os.Getenv("REFDOC_SOURCE_ROOT")); v != "" {
		s.Project.SourceRoot = v
	}
	if v := strings.TrimSpace(os.Getenv("REFDOC_THEME_DIR")); v != "" {
		s.Project.ThemeDir = v
	}
}
