// Package config loads the locus configuration.
//
// Precedence, highest first: environment variables, the on-disk YAML
// settings file, built-in defaults. The environment is threaded in as a
// map so the core never reads process state directly.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/locusmd/locus/internal/fs"
)

// Error variables for configuration loading.
var (
	ErrConfigParse   = errors.New("cannot parse config file")
	ErrConfigInvalid = errors.New("invalid configuration")
)

// Config holds all configuration options.
type Config struct {
	TaskDirectory string     `yaml:"task_directory"`
	Git           Git        `yaml:"git"`
	FileNaming    FileNaming `yaml:"file_naming"`
	Defaults      Defaults   `yaml:"defaults"`
	Language      Language   `yaml:"language"`
}

// Git controls repository-aware task placement.
type Git struct {
	// ExtractUsername enables <owner>/<repo> subdirectories under the
	// task directory.
	ExtractUsername bool `yaml:"extract_username"`

	// UsernameFromRemote derives the owner from the origin remote URL.
	UsernameFromRemote bool `yaml:"username_from_remote"`
}

// FileNaming controls generated task file names.
type FileNaming struct {
	Pattern    string `yaml:"pattern"`
	DateFormat string `yaml:"date_format"`
	HashLength int    `yaml:"hash_length"`
}

// Defaults are applied to new tasks unless overridden at the call site.
type Defaults struct {
	Status   string   `yaml:"status"`
	Priority string   `yaml:"priority"`
	Tags     []string `yaml:"tags"`
}

// Language selects the default message language.
type Language struct {
	Default string `yaml:"default"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TaskDirectory: "~/locus",
		Git: Git{
			ExtractUsername:    true,
			UsernameFromRemote: true,
		},
		FileNaming: FileNaming{
			Pattern:    "{date}-{slug}-{hash}.md",
			DateFormat: "YYYY-MM-DD",
			HashLength: 8,
		},
		Defaults: Defaults{
			Status:   "todo",
			Priority: "medium",
		},
		Language: Language{Default: "en"},
	}
}

// Load builds the effective configuration from defaults, the settings
// file at path (skipped when path is empty or the file does not exist),
// and environment overrides, in that precedence order.
func Load(fsys fs.FS, path string, env map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		loadErr := loadFile(fsys, path, &cfg)
		if loadErr != nil {
			return Config{}, loadErr
		}
	}

	applyErr := applyEnv(&cfg, env)
	if applyErr != nil {
		return Config{}, applyErr
	}

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	return cfg, nil
}

// loadFile unmarshals the settings file over cfg. Missing files are not
// an error; unreadable or malformed files are.
func loadFile(fsys fs.FS, path string, cfg *Config) error {
	exists, err := fsys.Exists(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if !exists {
		return nil
	}

	data, readErr := fsys.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParse, path, readErr)
	}

	unmarshalErr := yaml.Unmarshal(data, cfg)
	if unmarshalErr != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParse, path, unmarshalErr)
	}

	return nil
}

// Environment variable names, highest-precedence configuration source.
const (
	EnvTaskDirectory         = "LOCUS_TASK_DIRECTORY"
	EnvGitExtractUsername    = "LOCUS_GIT_EXTRACT_USERNAME"
	EnvGitUsernameFromRemote = "LOCUS_GIT_USERNAME_FROM_REMOTE"
	EnvFileNamingPattern     = "LOCUS_FILE_NAMING_PATTERN"
	EnvFileNamingDateFormat  = "LOCUS_FILE_NAMING_DATE_FORMAT"
	EnvFileNamingHashLength  = "LOCUS_FILE_NAMING_HASH_LENGTH"
	EnvDefaultStatus         = "LOCUS_DEFAULT_STATUS"
	EnvDefaultPriority       = "LOCUS_DEFAULT_PRIORITY"
	EnvDefaultTags           = "LOCUS_DEFAULT_TAGS"
	EnvLanguageDefault       = "LOCUS_LANGUAGE_DEFAULT"
)

func applyEnv(cfg *Config, env map[string]string) error {
	if v, ok := env[EnvTaskDirectory]; ok && v != "" {
		cfg.TaskDirectory = v
	}

	boolErr := applyBool(env, EnvGitExtractUsername, &cfg.Git.ExtractUsername)
	if boolErr != nil {
		return boolErr
	}

	boolErr = applyBool(env, EnvGitUsernameFromRemote, &cfg.Git.UsernameFromRemote)
	if boolErr != nil {
		return boolErr
	}

	if v, ok := env[EnvFileNamingPattern]; ok && v != "" {
		cfg.FileNaming.Pattern = v
	}

	if v, ok := env[EnvFileNamingDateFormat]; ok && v != "" {
		cfg.FileNaming.DateFormat = v
	}

	if v, ok := env[EnvFileNamingHashLength]; ok && v != "" {
		length, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, EnvFileNamingHashLength, err)
		}

		cfg.FileNaming.HashLength = length
	}

	if v, ok := env[EnvDefaultStatus]; ok && v != "" {
		cfg.Defaults.Status = v
	}

	if v, ok := env[EnvDefaultPriority]; ok && v != "" {
		cfg.Defaults.Priority = v
	}

	if v, ok := env[EnvDefaultTags]; ok && v != "" {
		cfg.Defaults.Tags = splitTags(v)
	}

	if v, ok := env[EnvLanguageDefault]; ok && v != "" {
		cfg.Language.Default = v
	}

	return nil
}

func applyBool(env map[string]string, key string, target *bool) error {
	v, ok := env[key]
	if !ok || v == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, key, err)
	}

	*target = parsed

	return nil
}

func splitTags(raw string) []string {
	var tags []string

	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}

func validate(cfg Config) error {
	if cfg.TaskDirectory == "" {
		return fmt.Errorf("%w: task_directory cannot be empty", ErrConfigInvalid)
	}

	if cfg.FileNaming.Pattern == "" {
		return fmt.Errorf("%w: file_naming.pattern cannot be empty", ErrConfigInvalid)
	}

	if cfg.FileNaming.HashLength < 1 || cfg.FileNaming.HashLength > 26 {
		return fmt.Errorf("%w: file_naming.hash_length must be between 1 and 26", ErrConfigInvalid)
	}

	return nil
}
