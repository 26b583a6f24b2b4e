package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dhamidi/jclass/classfile"
)

const configFile = ".jclass.toml"

// config holds defaults for the parsing flags, loaded from .jclass.toml
// in the working directory when present. Command line flags win over the
// file.
type config struct {
	Parse parseConfig `toml:"parse"`
}

type parseConfig struct {
	Attributes  bool `toml:"attributes"`
	Signatures  bool `toml:"signatures"`
	SkipUnknown bool `toml:"skip-unknown"`
	Strict      bool `toml:"strict"`
}

// loadConfig reads .jclass.toml if one exists. The second return value
// reports whether a file was found.
func loadConfig() (config, bool, error) {
	var cfg config
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return cfg, false, nil
	}
	if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
		return cfg, false, fmt.Errorf("load %s: %w", configFile, err)
	}
	return cfg, true, nil
}

func (c parseConfig) options() classfile.ParsingOptions {
	return classfile.ParsingOptions{
		ParseAttributes:       c.Attributes,
		ParseSignatures:       c.Signatures,
		SkipUnknownAttributes: c.SkipUnknown,
		Strict:                c.Strict,
	}
}
