package config

import (
	"io"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/leftmike/algebra/pkg/errs"
	"github.com/leftmike/algebra/pkg/expr"
	"github.com/leftmike/algebra/pkg/number"
)

type Config struct {
	Precision      uint              `yaml:"precision"`
	Tolerance      int               `yaml:"tolerance"`
	Spacing        string            `yaml:"spacing"`
	Delimiter      string            `yaml:"delimiter"`
	OmitCallParens bool              `yaml:"omit_call_parens"`
	Simplify       bool              `yaml:"simplify"`
	Isolate        string            `yaml:"isolate"`
	JSON           bool              `yaml:"json"`
	JSONInput      bool              `yaml:"json_input"`
	LogLevel       string            `yaml:"log_level"`
	Defines        map[string]string `yaml:"defines"`
}

func Default() Config {
	return Config{
		Precision: number.DefaultPrec,
		Tolerance: expr.DefaultFormat.Tolerance,
		Spacing:   expr.DefaultFormat.Spacing,
		Delimiter: expr.DefaultFormat.Delimiter,
		LogLevel:  zerolog.InfoLevel.String(),
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default values.
func Load(fsys billy.Filesystem, path string) (Config, error) {
	cfg := Default()

	f, err := fsys.Open(path)
	if err != nil {
		return cfg, errs.Errorf(errs.UnableToOpenFile, "config: %s: %s", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return cfg, errors.Wrapf(err, "config: %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, cfg.Validate()
}

// LoadIfExists is Load, except that a missing file yields the defaults.
func LoadIfExists(fsys billy.Filesystem, path string) (Config, error) {
	if _, err := fsys.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(fsys, path)
}

func (cfg Config) Validate() error {
	if cfg.Precision < number.MinPrec {
		return errors.Errorf("config: precision must be at least %d bits; got %d",
			number.MinPrec, cfg.Precision)
	}
	if cfg.Tolerance < 0 {
		return errors.Errorf("config: tolerance must not be negative; got %d", cfg.Tolerance)
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	return nil
}

func (cfg Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.NoLevel, errors.Wrap(err, "config: log_level")
	}
	return lvl, nil
}

// DefineNames lists the keys of Defines in sorted order, the order in which
// they are applied.
func (cfg Config) DefineNames() []string {
	names := make([]string, 0, len(cfg.Defines))
	for name := range cfg.Defines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (cfg Config) FormatOptions() expr.FormatOptions {
	return expr.FormatOptions{
		Spacing:        cfg.Spacing,
		Delimiter:      cfg.Delimiter,
		OmitCallParens: cfg.OmitCallParens,
		Tolerance:      cfg.Tolerance,
	}
}
