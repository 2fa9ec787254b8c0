// Package configuration loads the ostree-tar-export CLI's configuration
// from a YAML document, with environment variables able to override any
// field.
package configuration

import (
	"errors"
	"io"
	"reflect"
)

// Configuration is the CLI's versioned configuration, provided by a YAML
// file and optionally overridden by environment variables prefixed
// OSTREE_TAR_.
type Configuration struct {
	// Version is the version which defines the format of the rest of the
	// configuration.
	Version Version `yaml:"version"`

	// Repo is the path to the on-disk OSTree repository the export and
	// reinjection subcommands operate against. OSTREE_TAR_REPO overrides it.
	Repo string `yaml:"repo"`

	// FormatVersion is the default on-wire format version (0 or 1) used
	// when a subcommand's own flag does not override it.
	FormatVersion int `yaml:"formatVersion,omitempty"`

	// Output is the default destination path for a produced tar stream,
	// used when a subcommand's own --out flag does not override it. Empty
	// means stdout.
	Output string `yaml:"output,omitempty"`

	// Log configures the logrus-backed logger every subcommand shares.
	Log Log `yaml:"log,omitempty"`
}

// Log configures the shared logrus-backed logger, trimmed to what a
// single-process CLI needs.
type Log struct {
	Level     string                 `yaml:"level,omitempty"`
	Formatter string                 `yaml:"formatter,omitempty"`
	Fields    map[string]interface{} `yaml:"fields,omitempty"`
}

// Parse parses an input configuration YAML document into a Configuration,
// applying OSTREE_TAR_-prefixed environment overrides on top.
func Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	p := NewParser("ostree_tar", []VersionedParseInfo{
		{
			Version: MajorMinorVersion(0, 1),
			ParseAs: reflect.TypeOf(Configuration{}),
			ConversionFunc: func(c interface{}) (interface{}, error) {
				config, ok := c.(*Configuration)
				if !ok {
					return nil, errors.New("expected *Configuration")
				}
				if config.Repo == "" {
					return nil, errors.New("no repo path configured")
				}
				if config.Log.Level == "" {
					config.Log.Level = "info"
				}
				return config, nil
			},
		},
	})

	config := new(Configuration)
	if err := p.Parse(in, config); err != nil {
		return nil, err
	}
	return config, nil
}
