// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cyberforge-scan/internal/detector"
	"cyberforge-scan/internal/paths"

	"gopkg.in/yaml.v3"
)

// SupportedFormats lists the report formats a config file may name
var SupportedFormats = []string{"text", "json", "yaml"}

// Settings holds the options shared by the defaults block and profiles
type Settings struct {
	Format     string `yaml:"format"`
	OutputFile string `yaml:"output_file"`
	NoColor    bool   `yaml:"no_color"`
	Quiet      bool   `yaml:"quiet"`
	Debug      bool   `yaml:"debug"`

	// Keywords replaces the built-in list when present; an empty list disables alerts
	Keywords []string `yaml:"keywords"`
	// ExtraKeywords is appended to whichever list is in effect
	ExtraKeywords []string `yaml:"extra_keywords"`

	Extensions []string `yaml:"extensions"`
	// MaxLineBytes caps one physical line; 0 leaves lines unbounded
	MaxLineBytes int `yaml:"max_line_bytes"`
}

// Config represents the application configuration
type Config struct {
	Defaults Settings `yaml:"defaults"`

	// Profiles for different scanning scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile is a named set of settings layered over the defaults
type Profile struct {
	Settings    `yaml:",inline"`
	Description string `yaml:"description"`
}

// defaultConfig returns the built-in configuration
func defaultConfig() *Config {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	config.Defaults.Format = "text"
	config.Defaults.OutputFile = "Extraction_Analyse.txt"
	config.Defaults.Extensions = []string{".txt", ".log", ".conf", ".cfg"}

	config.Profiles["ci"] = Profile{
		Settings: Settings{
			Format:     "json",
			OutputFile: "Extraction_Analyse.json",
			NoColor:    true,
			Quiet:      true,
		},
		Description: "Machine-readable report and quiet console for pipelines",
	}

	return config
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// "keywords: []" must stay distinguishable from an absent key
	if containsField(data, "defaults", "keywords") && config.Defaults.Keywords == nil {
		config.Defaults.Keywords = []string{}
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}
	for name, profile := range config.Profiles {
		if containsField(data, "profiles", name, "keywords") && profile.Keywords == nil {
			profile.Keywords = []string{}
			config.Profiles[name] = profile
		}
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	for _, candidate := range []string{"cyberforge.yaml", "cyberforge.yml", ".cyberforge.yaml"} {
		if fileExists(candidate) {
			return candidate
		}
	}

	standardConfig := paths.GetConfigFile()
	if standardConfig != "" && fileExists(standardConfig) {
		return standardConfig
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names, sorted
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// Resolve layers the named profile over the defaults. An empty name returns
// the defaults unchanged.
func (c *Config) Resolve(profileName string) (Settings, error) {
	settings := c.Defaults
	if profileName == "" {
		return settings, nil
	}

	profile := c.GetProfile(profileName)
	if profile == nil {
		return settings, fmt.Errorf("profile '%s' not found (available: %s)",
			profileName, strings.Join(c.ListProfiles(), ", "))
	}

	p := profile.Settings
	if p.Format != "" {
		settings.Format = p.Format
	}
	if p.OutputFile != "" {
		settings.OutputFile = p.OutputFile
	}
	if p.NoColor {
		settings.NoColor = true
	}
	if p.Quiet {
		settings.Quiet = true
	}
	if p.Debug {
		settings.Debug = true
	}
	if p.Keywords != nil {
		settings.Keywords = p.Keywords
	}
	if len(p.ExtraKeywords) > 0 {
		settings.ExtraKeywords = append(append([]string{}, settings.ExtraKeywords...), p.ExtraKeywords...)
	}
	if len(p.Extensions) > 0 {
		settings.Extensions = p.Extensions
	}
	if p.MaxLineBytes > 0 {
		settings.MaxLineBytes = p.MaxLineBytes
	}

	return settings, nil
}

// EffectiveKeywords returns the keyword list a scan should use: Keywords (or
// the built-in list when unset) followed by ExtraKeywords, empty entries dropped
func (s Settings) EffectiveKeywords() []string {
	base := s.Keywords
	if base == nil {
		base = detector.DefaultKeywordList()
	}
	combined := make([]string, 0, len(base)+len(s.ExtraKeywords))
	combined = append(combined, base...)
	combined = append(combined, s.ExtraKeywords...)
	return detector.CompactKeywords(combined)
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			_, exists := current[key]
			return exists
		}
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// ValidateConfig validates the defaults and every profile
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := validateSettings(config.Defaults, true); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	for _, name := range config.ListProfiles() {
		if err := validateSettings(config.Profiles[name].Settings, false); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
	}

	return nil
}

func validateSettings(s Settings, requireFormat bool) error {
	if s.Format != "" || requireFormat {
		if !IsSupportedFormat(s.Format) {
			return fmt.Errorf("unsupported format '%s' (supported: %s)", s.Format, strings.Join(SupportedFormats, ", "))
		}
	}

	for i, ext := range s.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("extension %d is empty", i+1)
		}
	}

	if s.MaxLineBytes < 0 {
		return fmt.Errorf("max_line_bytes must not be negative, got %d", s.MaxLineBytes)
	}

	if err := paths.ValidatePath(s.OutputFile); err != nil {
		return fmt.Errorf("invalid output file: %w", err)
	}

	return nil
}

// IsSupportedFormat reports whether format names a known report format
func IsSupportedFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, onError (when set) receives the
// error and the default configuration is returned.
func LoadConfigOrDefault(configFile string, onError func(error)) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		if onError != nil {
			onError(err)
		}
		cfg = defaultConfig()
	}
	return cfg
}
