package driver

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is the project file looked up in the working directory
// when no explicit config path is given.
const DefaultConfigFile = "slate.toml"

// Config is the optional slate.toml project file:
//
//	module = "mathlib"
//	entry  = "src/main.lang"
//	output = "mathlib.ir"
type Config struct {
	// Module names the emitted IR module. Defaults to the entry file's base
	// name when empty.
	Module string `toml:"module"`
	// Entry is the source file compilation starts from.
	Entry string `toml:"entry"`
	// Output is the file the IR text is written to; empty means stdout.
	Output string `toml:"output"`
}

// LoadConfig reads and decodes a slate.toml file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Entry == "" {
		return nil, fmt.Errorf("load config %s: missing entry", path)
	}
	return &cfg, nil
}

// LoadConfigIfPresent loads the default project file when it exists.
// A missing file is not an error; it returns (nil, nil).
func LoadConfigIfPresent() (*Config, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return LoadConfig(DefaultConfigFile)
}
