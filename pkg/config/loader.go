package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment override, e.g. CMDCORRECT_ENGINE_WORKERS
const EnvPrefix = "CMDCORRECT_"

// ProjectConfigNames are looked up in the working directory, first match wins
var ProjectConfigNames = []string{".cmdcorrect.toml", "cmdcorrect.toml", ".cmdcorrect.yaml", "cmdcorrect.yaml"}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// LoadOptions selects the optional configuration layers
type LoadOptions struct {
	// WorkDir is searched for a project config and anchors relative rule
	// file paths. Defaults to the current directory.
	WorkDir string
	// ExplicitPath is a config file given on the command line. It must exist.
	ExplicitPath string
	// Overrides are applied last, keyed by dotted path (e.g. "output.format")
	Overrides map[string]interface{}
}

// Load merges every configuration layer and validates the result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to determine working directory")
		}
		workDir = wd
	}

	k := koanf.New(".")
	var loaded []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User and project config, when present
	for _, path := range []string{UserConfigPath(), ProjectConfigPath(workDir)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		loaded = append(loaded, path)
	}

	// 3. Explicit config file
	if opts.ExplicitPath != "" {
		if _, err := os.Stat(opts.ExplicitPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.ExplicitPath)
		}
		if err := loadFile(k, opts.ExplicitPath); err != nil {
			return nil, err
		}
		loaded = append(loaded, opts.ExplicitPath)
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.LoadedFrom = loaded
	postProcess(cfg, workDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Strs("files", loaded).
		Int("ruleFiles", len(cfg.Rules.Files)).
		Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults without consulting files or environment
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(err)
	}
	postProcess(cfg, ".")
	return cfg
}

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}

// UserConfigPath returns the per-user config file location.
// XDG_CONFIG_HOME is read at call time so it can be overridden after startup.
func UserConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = xdg.ConfigHome
	}
	return filepath.Join(base, logging.AppDirName, "config.toml")
}

// ProjectConfigPath returns the first project config found in dir, or ""
func ProjectConfigPath(dir string) string {
	for _, name := range ProjectConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ParserFor picks the koanf parser matching a file extension
func ParserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), ParserFor(path)); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// envKey maps CMDCORRECT_ENGINE_MATCH_TIMEOUT to engine.match_timeout.
// Only the first underscore separates section from key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// DecoderConfig returns the mapstructure settings shared by every koanf
// unmarshal in the application
func DecoderConfig(result interface{}) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag:           "koanf",
		DecoderConfig: DecoderConfig(&cfg),
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func postProcess(cfg *Config, workDir string) {
	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = runtime.NumCPU()
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = filepath.Join(logging.StateDir(), "journal.toml")
	}
	for i, f := range cfg.Rules.Files {
		if f != "" && !filepath.IsAbs(f) {
			cfg.Rules.Files[i] = filepath.Join(workDir, f)
		}
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
}
