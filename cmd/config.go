package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aburry/learning-by-wrote/lisp"
	"github.com/aburry/learning-by-wrote/parser/rdparser"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the name of the configuration file looked up in the
// user's home directory.
const DefaultConfigFile = ".protolisp.yaml"

// Config is the contents of a configuration file.
type Config struct {
	TraceEval   bool   `yaml:"trace-eval"`
	MaxDepth    *int   `yaml:"max-depth"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history-file"`
}

// DefaultConfigPath returns the configuration file used when none is given on
// the command line.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigFile)
}

// LoadConfig reads the configuration file at path.  A missing file is only an
// error if required is true; otherwise an empty Config is returned.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	err = decodeConfig(bytes.NewReader(b), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if err == io.EOF {
		// the file is empty
		return nil
	}
	if err != nil {
		return err
	}
	if cfg.MaxDepth != nil && *cfg.MaxDepth < 0 {
		return fmt.Errorf("max-depth must not be negative: %d", *cfg.MaxDepth)
	}
	return nil
}

// Interpreter returns the options that configure an interpreter as described
// by cfg.
func (cfg *Config) Interpreter(stderr io.Writer) []lisp.Config {
	config := []lisp.Config{
		lisp.WithReader(rdparser.NewReader()),
		lisp.WithStderr(stderr),
		lisp.WithTrace(cfg.TraceEval),
	}
	if cfg.MaxDepth != nil {
		config = append(config, lisp.WithMaximumDepth(*cfg.MaxDepth))
	}
	return config
}
