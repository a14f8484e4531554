// Package config resolves the release-notes builder configuration from
// flags, environment variables, an optional YAML file and, for the version
// fields, an interactive prompt.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the YAML file consulted when --config is not given.
const DefaultConfigPath = ".relnotes.yaml"

// Config is the fully resolved builder configuration, built once at startup
// and passed down explicitly.
type Config struct {
	ReleaseVersion string
	DevelopVersion string
	ReleaseDate    string // DD.MM.YYYY
	Prefix         string

	JiraURL      string
	JiraToken    string
	ConnectKey   string
	SharedSecret string

	InputPath  string
	OutputPath string
}

// FlagValues mirrors the command-line flags so parsing and resolution stay
// in one place.
type FlagValues struct {
	ReleaseVersion string
	DevelopVersion string
	ReleaseDate    string
	Prefix         string
	ConfigPath     string
	InputPath      string
	OutputPath     string
}

// fileConfig models the optional .relnotes.yaml. Tracker credentials stay in
// the environment; only report fields belong in the file.
type fileConfig struct {
	ReleaseVersion string `yaml:"release_version"`
	DevelopVersion string `yaml:"develop_version"`
	ReleaseDate    string `yaml:"release_date"`
	Prefix         string `yaml:"prefix"`
}

// Resolve builds the configuration. Priority per field: flag, then
// environment variable, then config file, then (for the version fields only)
// an interactive prompt read from in. The release date defaults to today in
// DD.MM.YYYY form. An unresolved issue prefix is a configuration error.
func Resolve(f FlagValues, in io.Reader, out io.Writer) (Config, error) {
	file, err := loadFile(f.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	pick := func(flagVal, envName, fileVal string) string {
		if flagVal != "" {
			return flagVal
		}
		if v := os.Getenv(envName); v != "" {
			return v
		}
		return fileVal
	}

	cfg := Config{
		ReleaseVersion: pick(f.ReleaseVersion, "RELEASE_VERSION", file.ReleaseVersion),
		DevelopVersion: pick(f.DevelopVersion, "DEVELOP_VERSION", file.DevelopVersion),
		ReleaseDate:    pick(f.ReleaseDate, "RELEASE_DATE", file.ReleaseDate),
		Prefix:         pick(f.Prefix, "PREFIX", file.Prefix),
		JiraURL:        os.Getenv("JIRA_URL"),
		JiraToken:      os.Getenv("JIRA_API_TOKEN"),
		ConnectKey:     os.Getenv("JIRA_CONNECT_KEY"),
		SharedSecret:   os.Getenv("JIRA_SHARED_SECRET"),
		InputPath:      f.InputPath,
		OutputPath:     f.OutputPath,
	}

	reader := bufio.NewReader(in)
	if cfg.ReleaseVersion == "" {
		cfg.ReleaseVersion, err = prompt(reader, out, "Release Version: ")
		if err != nil {
			return Config{}, err
		}
	}
	if cfg.DevelopVersion == "" {
		cfg.DevelopVersion, err = prompt(reader, out, "Develop Version: ")
		if err != nil {
			return Config{}, err
		}
	}

	if cfg.ReleaseDate == "" {
		cfg.ReleaseDate = time.Now().Format("02.01.2006")
	}

	if cfg.Prefix == "" {
		return Config{}, errors.New("issue prefix is not configured: use --prefix, the PREFIX environment variable, or the config file")
	}

	if err := validateTracker(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// validateTracker checks the tracker credentials before any work begins.
func validateTracker(cfg Config) error {
	if cfg.JiraURL == "" {
		return errors.New("missing required environment variables: ensure JIRA_URL and JIRA_API_TOKEN are set")
	}
	connectAuth := cfg.ConnectKey != "" && cfg.SharedSecret != ""
	if cfg.JiraToken == "" && !connectAuth {
		return errors.New("missing required environment variables: ensure JIRA_URL and JIRA_API_TOKEN are set")
	}
	return nil
}

// loadFile reads the YAML config file. A missing file at the default path is
// fine; a missing file at an explicitly requested path is an error.
func loadFile(path string) (fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %q from terminal: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(line), nil
}
