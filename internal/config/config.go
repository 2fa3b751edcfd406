package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment variable that overrides a config key,
// e.g. FOLIO_OUTPUTDIR.
const EnvPrefix = "FOLIO"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	SiteTitle  string   `mapstructure:"siteTitle"`
	BaseURL    string   `mapstructure:"baseURL"`
	OutputDir  string   `mapstructure:"outputDir"`
	ContentDir string   `mapstructure:"contentDir"`
	DataDir    string   `mapstructure:"dataDir"`
	StaticDir  string   `mapstructure:"staticDir"`
	LayoutsDir string   `mapstructure:"layoutsDir"`
	Theme      string   `mapstructure:"theme"`
	Language   string   `mapstructure:"language"`
	Drafts     bool     `mapstructure:"drafts"`
	Ignore     []string `mapstructure:"ignore"`
	// FacetOrder is one of "lexical", "count" or "collated".
	FacetOrder string `mapstructure:"facetOrder"`
	// FacetLimit caps the number of facet links a theme shows. -1 keeps the
	// theme's own limit, 0 shows every facet.
	FacetLimit int    `mapstructure:"facetLimit"`
	LogLevel   string `mapstructure:"logLevel"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("siteTitle", "My Portfolio")
	v.SetDefault("baseURL", "")
	v.SetDefault("outputDir", "public")
	v.SetDefault("contentDir", "content")
	v.SetDefault("dataDir", "data")
	v.SetDefault("staticDir", "static")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("theme", "modern")
	v.SetDefault("language", "en")
	v.SetDefault("drafts", false)
	v.SetDefault("ignore", []string{})
	v.SetDefault("facetOrder", "lexical")
	v.SetDefault("facetLimit", -1)
	v.SetDefault("logLevel", "info")
}

// Load reads the configuration from defaults, an optional config file and
// FOLIO_* environment variables, in increasing precedence. When cfgFile is
// empty, config.yaml is looked up in dir. A .env file in dir is loaded into
// the environment first. The returned string is the config file used, or ""
// when none was found.
func Load(cfgFile, dir string) (Config, string, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, "", fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			if cfgFile != "" {
				return Config{}, "", fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
		case cfgFile != "" && errors.Is(err, fs.ErrNotExist):
			return Config{}, "", fmt.Errorf("config file %s not found: %w", cfgFile, err)
		default:
			return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}

// Validate checks the values that do not depend on the filesystem.
func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: outputDir must not be empty", ErrInvalid)
	}
	if filepath.Clean(c.OutputDir) == filepath.Clean(c.ContentDir) {
		return fmt.Errorf("%w: outputDir and contentDir must differ", ErrInvalid)
	}
	switch c.FacetOrder {
	case "", "lexical", "count", "collated":
	default:
		return fmt.Errorf("%w: unknown facetOrder %q", ErrInvalid, c.FacetOrder)
	}
	if c.FacetLimit < -1 {
		return fmt.Errorf("%w: facetLimit must be -1, 0 or positive", ErrInvalid)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("%w: language %q: %v", ErrInvalid, c.Language, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Tag returns the site language, defaulting to English.
func (c Config) Tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}
	return tag
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
