// Package config loads EngineConfig and Clauses bundles from disk, in the
// same logrus-instrumented style the rest of the project uses for
// configuration I/O. Format is selected by file extension: .json, .yaml/
// .yml, or .toml.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/pokebattle-sim/lib/battle"
)

func getCaller() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

// Loader reads engine/clause configuration files rooted at basePath.
type Loader struct {
	basePath string
}

// New creates a Loader rooted at basePath.
func New(basePath string) *Loader {
	logrus.WithFields(logrus.Fields{"caller": getCaller(), "basePath": basePath}).Info("creating configuration loader")
	return &Loader{basePath: basePath}
}

// BattleSettings is the on-disk shape for a battle's tunables: the engine
// constants plus the clause bag, loadable from JSON, YAML, or TOML.
type BattleSettings struct {
	Engine   battle.EngineConfig `json:"engine" yaml:"engine" toml:"engine"`
	Clauses  battle.Clauses      `json:"clauses" yaml:"clauses" toml:"clauses"`
	MaxTurns int                 `json:"max_turns" yaml:"max_turns" toml:"max_turns"`
}

// DefaultBattleSettings returns Gen-1-authentic engine constants with no
// clauses active and a 1000-turn cap (spec §4.6 step 6's practical default).
func DefaultBattleSettings() BattleSettings {
	return BattleSettings{
		Engine:   battle.DefaultEngineConfig(),
		Clauses:  battle.Clauses{},
		MaxTurns: 1000,
	}
}

// Load reads filename under the loader's basePath and unmarshals it into a
// BattleSettings by extension (.json, .yaml/.yml, .toml).
func (l *Loader) Load(filename string) (BattleSettings, error) {
	caller := getCaller()
	fullPath := filepath.Join(l.basePath, filename)
	logrus.WithFields(logrus.Fields{"caller": caller, "fullPath": fullPath}).Info("loading battle settings")

	data, err := os.ReadFile(fullPath)
	if err != nil {
		logrus.WithFields(logrus.Fields{"caller": caller, "fullPath": fullPath, "error": err.Error()}).Error("failed to read settings file")
		return BattleSettings{}, fmt.Errorf("failed to read config file %s: %w", fullPath, err)
	}

	settings := DefaultBattleSettings()
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		err = json.Unmarshal(data, &settings)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &settings)
	case ".toml":
		err = toml.Unmarshal(data, &settings)
	default:
		return BattleSettings{}, fmt.Errorf("unsupported config extension %q", ext)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"caller": caller, "fullPath": fullPath, "error": err.Error()}).Error("failed to parse settings file")
		return BattleSettings{}, fmt.Errorf("failed to parse config %s: %w", fullPath, err)
	}

	logrus.WithFields(logrus.Fields{"caller": caller, "fullPath": fullPath}).Info("battle settings loaded")
	return settings, nil
}

// Save writes settings to filename under basePath, format chosen by
// extension, creating parent directories as needed.
func (l *Loader) Save(filename string, settings BattleSettings) error {
	caller := getCaller()
	fullPath := filepath.Join(l.basePath, filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		logrus.WithFields(logrus.Fields{"caller": caller, "error": err.Error()}).Error("failed to create config directory")
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		data, err = json.MarshalIndent(settings, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(settings)
	case ".toml":
		var buf strings.Builder
		err = toml.NewEncoder(&buf).Encode(settings)
		data = []byte(buf.String())
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"caller": caller, "error": err.Error()}).Error("failed to marshal settings")
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		logrus.WithFields(logrus.Fields{"caller": caller, "fullPath": fullPath, "error": err.Error()}).Error("failed to write settings file")
		return fmt.Errorf("failed to write config file %s: %w", fullPath, err)
	}

	logrus.WithFields(logrus.Fields{"caller": caller, "fullPath": fullPath}).Info("battle settings saved")
	return nil
}

// FileExists reports whether filename exists under basePath.
func (l *Loader) FileExists(filename string) bool {
	_, err := os.Stat(filepath.Join(l.basePath, filename))
	return err == nil
}
