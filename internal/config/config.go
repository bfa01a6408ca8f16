package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-meta/internal/errors"
	"github.com/vango-dev/vango-meta/pkg/assets"
	"github.com/vango-dev/vango-meta/pkg/meta"
	"github.com/vango-dev/vango-meta/pkg/render"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

const (
	// JSONFileName is the JSON configuration file.
	JSONFileName = "meta.json"

	// YAMLFileName is the YAML configuration file.
	YAMLFileName = "meta.yaml"

	// YMLFileName is the alternative YAML configuration file name.
	YMLFileName = "meta.yml"

	// DefaultPort is the default port of the demo server.
	DefaultPort = 8080

	// DefaultHost is the default host of the demo server.
	DefaultHost = "localhost"
)

// FileNames lists the configuration file names Load looks for, in order.
var FileNames = []string{JSONFileName, YAMLFileName, YMLFileName}

// Config represents a meta.json / meta.yaml configuration file.
type Config struct {
	// MultiLanguage allows description and keywords in languages other
	// than the page language (default: true).
	MultiLanguage bool `json:"multiLanguage" yaml:"multiLanguage"`

	// Debug joins rendered tags with newlines.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`

	// Charset is the site encoding used for auto charset tags.
	Charset string `json:"charset,omitempty" yaml:"charset,omitempty"`

	// Favicon is the favicon URL used for auto icon tags.
	Favicon string `json:"favicon,omitempty" yaml:"favicon,omitempty"`

	// BaseURL prefixes full canonical URLs.
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`

	// StripTags removes markup from tag text and content attributes.
	StripTags bool `json:"stripTags,omitempty" yaml:"stripTags,omitempty"`

	// Locale overrides the system locale for auto-detected languages,
	// e.g. "de_DE.UTF-8".
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`

	// Assets points at a fingerprint manifest for icon hrefs.
	Assets AssetsConfig `json:"assets,omitempty" yaml:"assets,omitempty"`

	// Meta is the global meta layer, the lowest-precedence layer on top of
	// the built-in defaults.
	Meta meta.State `json:"meta" yaml:"meta"`

	// Server configures the demo server.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// configPath is the path the config was loaded from.
	configPath string
}

// ServerConfig configures the demo server.
type ServerConfig struct {
	// Host is the interface to bind (default: "localhost").
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to bind (default: 8080).
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
}

// AssetsConfig configures fingerprinted icon URLs.
type AssetsConfig struct {
	// Manifest is the manifest file, relative to the config file.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// Prefix is prepended to fingerprinted names, e.g. "/static/".
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		MultiLanguage: true,
		Charset:       render.DefaultCharset,
		Favicon:       render.DefaultFavicon,
		BaseURL:       routepath.DefaultBaseURL,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for meta.json, meta.yaml and meta.yml, in that order.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("M010").
		WithDetail("No " + strings.Join(FileNames, ", ") + " found in " + dir).
		WithSuggestion("Create meta.json or meta.yaml, or pass --config")
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension: .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M010").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("M011").Wrap(err)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Format is a configuration file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes configuration data on top of the defaults.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := New()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("M011").
			WithDetail(fmt.Sprintf("Failed to parse %s config: %v", format, err)).
			WithSuggestion("Check that the file is valid " + strings.ToUpper(string(format)))
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Charset == "" {
		c.Charset = render.DefaultCharset
	}
	if c.Favicon == "" {
		c.Favicon = render.DefaultFavicon
	}
	if c.BaseURL == "" {
		c.BaseURL = routepath.DefaultBaseURL
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := routepath.NewBuilder(c.BaseURL); err != nil {
		return errors.New("M012").
			WithDetail("baseURL: " + err.Error()).
			WithSuggestion("Use an absolute URL such as https://example.com")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("M012").
			WithDetail("Port must be between 0 and 65535")
	}
	if lang, ok := c.Meta.Language.Get(); ok && lang != meta.Wildcard {
		if _, err := language.Parse(lang); err != nil {
			return errors.New("M012").
				WithDetailf("meta.language %q is not a valid language tag", lang).
				Wrap(err)
		}
	}
	return nil
}

// Address returns the address string for the demo server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ManifestPath returns the absolute asset manifest path, or "" when none
// is configured.
func (c *Config) ManifestPath() string {
	path := c.Assets.Manifest
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Renderer returns a tag renderer for the configured charset and favicon.
// Icon hrefs go through the asset manifest when one is configured.
func (c *Config) Renderer() (*render.Renderer, error) {
	cfg := render.Config{
		Charset:   c.Charset,
		Favicon:   c.Favicon,
		StripTags: c.StripTags,
	}
	if path := c.ManifestPath(); path != "" {
		manifest, err := assets.Load(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New("M010").
					WithDetail("Asset manifest " + path + " not found").
					WithSuggestion("Build the assets or remove assets.manifest")
			}
			return nil, errors.New("M011").
				WithDetail("Failed to read asset manifest " + path).
				Wrap(err)
		}
		cfg.Assets = assets.NewResolver(manifest, c.Assets.Prefix)
	}
	return render.New(cfg), nil
}

// URLBuilder returns a canonical URL builder for the configured base URL.
func (c *Config) URLBuilder() (*routepath.Builder, error) {
	b, err := routepath.NewBuilder(c.BaseURL)
	if err != nil {
		return nil, errors.New("M012").WithDetail("baseURL").Wrap(err)
	}
	return b, nil
}

// Options returns the registry options for this configuration, with the
// global meta layer as the lowest layer.
func (c *Config) Options() []meta.Option {
	opts := []meta.Option{
		meta.WithMultiLanguage(c.MultiLanguage),
		meta.WithDebug(c.Debug),
		meta.WithLayers(c.Meta),
	}
	if c.Locale != "" {
		locale := c.Locale
		opts = append(opts, meta.WithLocale(func() string { return locale }))
	}
	return opts
}

// Factory returns a function creating one registry per request. extra
// options are applied after the configured ones, so additional layers
// take precedence over the global meta layer.
func (c *Config) Factory(extra ...meta.Option) (func(meta.Request) *meta.Registry, error) {
	urls, err := c.URLBuilder()
	if err != nil {
		return nil, err
	}
	html, err := c.Renderer()
	if err != nil {
		return nil, err
	}
	opts := append(c.Options(), extra...)
	return func(req meta.Request) *meta.Registry {
		return meta.New(html, urls, req, opts...)
	}, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("M010").
				WithDetail("No config file found in " + startDir + " or any parent directory").
				WithSuggestion("Create meta.json or meta.yaml at the project root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or its closest parent holding a config file.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
