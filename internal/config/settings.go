package config

import (
	"fmt"
	"os"

	"github.com/dgallion1/doctoc/internal/toc"
	"gopkg.in/yaml.v3"
)

// Settings is the site settings file. Only the toc block is read.
type Settings struct {
	TOC TOCSettings `yaml:"toc"`
}

// TOCSettings holds site-wide TOC defaults. Values are strings, as in page
// metadata; unset fields fall back to the built-in defaults.
type TOCSettings struct {
	Run          *string `yaml:"run"`
	IncludeTitle *string `yaml:"include_title"`
	Headers      *string `yaml:"headers"`
}

// LoadSettings reads a YAML settings file. An empty path yields empty settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// Merge layers the site settings over base and returns the result.
func (s Settings) Merge(base toc.Options) toc.Options {
	out := base
	if s.TOC.Run != nil {
		out.Enabled = *s.TOC.Run == "true"
	}
	if s.TOC.IncludeTitle != nil {
		out.IncludeTitle = *s.TOC.IncludeTitle == "true"
	}
	if s.TOC.Headers != nil {
		out.Headers = *s.TOC.Headers
	}
	return out
}
