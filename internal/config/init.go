package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init writes an example project definition to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := File{
		Name:        "demo-lib",
		Version:     "0.1.0",
		Description: "A short description of the library.",
		SourceURI:   "https://example.com/demo-lib/blob/{version}/{filepath}#L{line}",
		Themes:      []ThemeEntry{{Name: "default"}},
		Documents: []DocumentEntry{
			{
				Name:    "intro",
				Title:   "Introduction",
				Content: "# Introduction\n\nWrite a guided tour of the library here.\n",
			},
		},
		Namespaces: []NamespaceEntry{
			{
				Name: "demo.core",
				Doc:  "Core operations.",
				Vars: []VarEntry{
					{
						Name:       "greet",
						Doc:        "Returns a greeting for the given name.",
						Signatures: []any{[]any{"greet", "name"}},
						Path:       "src/demo/core.go",
						Line:       10,
					},
				},
			},
		},
		Output: "target/doc",
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
