package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/cmdcorrect/pkg/config"
	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
)

// LegacyExt marks files in the line oriented legacy format
const LegacyExt = ".rules"

// LoadFiles reads every file in order and concatenates their definitions
func LoadFiles(paths []string) ([]Definition, error) {
	var defs []Definition
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}
	return defs, nil
}

// LoadFile reads the definitions of one rule file. The format follows the
// extension: LegacyExt for the legacy format, .yaml/.yml for YAML and TOML
// for anything else.
func LoadFile(path string) ([]Definition, error) {
	logger := logging.GetLogger("rules.loader")

	var (
		defs []Definition
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), LegacyExt) {
		defs, err = loadLegacy(path)
	} else {
		defs, err = loadStructured(path)
	}
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range defs {
		if defs[i].Name == "" {
			defs[i].Name = fmt.Sprintf("%s#%d", base, i+1)
		}
		if defs[i].Origin == "" {
			defs[i].Origin = path
		}
	}

	logger.Debug().
		Str("path", path).
		Int("count", len(defs)).
		Msg("Loaded rule definitions")
	return defs, nil
}

func loadLegacy(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read rule file %s", path).
			WithDetail("path", path)
	}
	defs := ParseLegacy(string(data))
	for i := range defs {
		defs[i].Origin = fmt.Sprintf("%s:%s", path, defs[i].Origin)
	}
	return defs, nil
}

func loadStructured(path string) ([]Definition, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read rule file %s", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), config.ParserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse rule file %s", path).
			WithDetail("path", path)
	}

	var defs []Definition
	err := k.UnmarshalWithConf("rules", &defs, koanf.UnmarshalConf{
		Tag:           "koanf",
		DecoderConfig: config.DecoderConfig(&defs),
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid rules in %s", path).
			WithDetail("path", path)
	}
	return defs, nil
}
