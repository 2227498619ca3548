package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/matchers"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/runner"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes the environment variables that override the file
const EnvPrefix = "DOTF_"

// Settings tune the handlers. Defaults come from embedded/defaults.toml.
type Settings struct {
	DiffCommand   string   `koanf:"diff_command" yaml:"diff_command"`
	PatternSyntax string   `koanf:"pattern_syntax" yaml:"pattern_syntax"`
	Backup        bool     `koanf:"backup" yaml:"backup"`
	Confirm       bool     `koanf:"confirm" yaml:"confirm"`
	DefaultYes    bool     `koanf:"default_yes" yaml:"default_yes"`
	Workers       int      `koanf:"workers" yaml:"workers"`
	Exclude       []string `koanf:"exclude" yaml:"exclude"`
}

// Config is the loaded configuration file
type Config struct {
	// Path is the file the configuration was read from
	Path string
	// Repository is the absolute path of the dotfiles repository
	Repository string
	// Items are sorted by name
	Items    []types.Item
	Settings Settings

	diffCommand []string
	syntax      matchers.Syntax
}

// DiffCommand returns the configured diff command split into arguments
func (c *Config) DiffCommand() []string {
	return c.diffCommand
}

// PatternSyntax returns the default syntax of --only patterns
func (c *Config) PatternSyntax() matchers.Syntax {
	return c.syntax
}

// rawBytesProvider feeds already-read bytes to a koanf parser
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Load reads the configuration file at path, layered over the built-in
// defaults and under DOTF_ environment variables. The repository must
// exist.
func Load(path string, p *paths.Paths) (*Config, error) {
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loading configuration")

	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	cfg := &Config{Path: path}

	if err := unmarshalSettings(k, &cfg.Settings); err != nil {
		return nil, err
	}
	if err := cfg.validateSettings(); err != nil {
		return nil, err
	}

	cfg.Repository, err = resolveRepository(k.String("repository"), filepath.Dir(path), p)
	if err != nil {
		return nil, err
	}

	cfg.Items, err = decodeItems(k.Get("files"))
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("repository", cfg.Repository).
		Int("items", len(cfg.Items)).
		Msg("Configuration loaded")
	return cfg, nil
}

// New builds a configuration in memory. The repository is used as given.
func New(repository string, items []types.Item, settings Settings) (*Config, error) {
	cfg := &Config{Repository: repository, Items: items, Settings: settings}
	if err := cfg.validateSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultSettings returns the built-in settings
func DefaultSettings() (Settings, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return Settings{}, err
	}
	var s Settings
	err := unmarshalSettings(k, &s)
	return s, err
}

func loadDefaults(k *koanf.Koanf) error {
	defaults, err := toml.Parser().Unmarshal(defaultConfig)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to parse built-in defaults")
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to load built-in defaults")
	}
	return nil
}

func unmarshalSettings(k *koanf.Koanf, s *Settings) error {
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           s,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("settings", s, conf); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid settings")
	}
	return nil
}

func (c *Config) validateSettings() error {
	s := c.Settings

	cmd, err := runner.ParseCommand(s.DiffCommand)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid settings.diff_command")
	}
	c.diffCommand = cmd

	syntax, err := matchers.ParseSyntax(s.PatternSyntax)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid settings.pattern_syntax")
	}
	c.syntax = syntax

	if s.Workers < 0 {
		return errors.Newf(errors.ErrConfigValid, "settings.workers must not be negative, got %d", s.Workers)
	}

	if _, err := matchers.NewSet(s.Exclude, matchers.SyntaxGlob); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid settings.exclude")
	}
	return nil
}

// resolveRepository expands ~, resolves relative paths against the
// configuration file's directory and checks the directory exists.
func resolveRepository(raw, base string, p *paths.Paths) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New(errors.ErrConfigValid, "repository is required")
	}

	repo := p.ExpandHome(raw)
	if !filepath.IsAbs(repo) {
		repo = filepath.Join(base, repo)
	}
	repo = filepath.Clean(repo)

	info, err := os.Stat(repo)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrConfigValid, "invalid repository path: %s", raw).
			WithDetail("resolved", repo)
	}
	return repo, nil
}

// envKey maps DOTF_REPOSITORY and DOTF_SETTINGS_<KEY> to config keys and
// drops every other DOTF_ variable.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	switch {
	case key == "repository":
		return key
	case strings.HasPrefix(key, "settings_"):
		return "settings." + strings.TrimPrefix(key, "settings_")
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	if FormatFromPath(path) == FormatYAML {
		return yaml.Parser()
	}
	return toml.Parser()
}
