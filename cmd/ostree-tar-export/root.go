package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ostreetar/ostree-tar/configuration"
	"github.com/ostreetar/ostree-tar/internal/exportlog"
	"github.com/ostreetar/ostree-tar/version"
)

var (
	showVersion   bool
	configPathArg string
)

// RootCmd is the main command for the ostree-tar-export binary.
var RootCmd = &cobra.Command{
	Use:   "ostree-tar-export",
	Short: "export and reinject OSTree commits as deterministic tar streams",
	Long:  "ostree-tar-export serializes an OSTree commit into a deterministic, uncompressed tar stream and can rewrite the detached commit metadata of an already-produced stream.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			version.PrintVersion()
			return nil
		}
		return cmd.Usage()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPathArg, "config", "c", "", "path to the YAML configuration file (OSTREE_TAR_REPO overrides its repo setting)")
	RootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show the version and exit")

	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(reinjectCmd)
}

// resolveConfiguration loads the configuration file named by --config, if
// any; subcommands that need no repo (e.g. reinject operating purely on
// streams) tolerate a missing path.
func resolveConfiguration() (*configuration.Configuration, error) {
	if configPathArg == "" {
		return nil, nil
	}
	fp, err := os.Open(configPathArg)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", configPathArg, err)
	}
	defer fp.Close()

	config, err := configuration.Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPathArg, err)
	}
	return config, nil
}

// configureLogging builds a context carrying a logrus logger configured
// from config's Log section, falling back to logrus's defaults when config
// is nil (no --config given).
func configureLogging(config *configuration.Configuration) context.Context {
	logger := logrus.StandardLogger()

	level := "info"
	if config != nil && config.Log.Level != "" {
		level = config.Log.Level
	}
	if l, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(l)
	} else {
		logger.Warnf("unrecognized log level %q, using info", level)
	}

	if config != nil {
		switch config.Log.Formatter {
		case "json":
			logger.SetFormatter(&logrus.JSONFormatter{})
		case "text", "":
			logger.SetFormatter(&logrus.TextFormatter{})
		default:
			logger.Warnf("unsupported logging formatter %q, using text", config.Log.Formatter)
		}
	}

	entry := logrus.NewEntry(logger)
	if config != nil && len(config.Log.Fields) > 0 {
		entry = entry.WithFields(config.Log.Fields)
	}
	return exportlog.WithLogger(context.Background(), entry)
}

// formatVersionFromConfig resolves the default format version a subcommand
// should use absent an explicit --format-version flag: the config file's
// FormatVersion if one was given and --config was resolved, else
// defaultVersion.
func formatVersionFromConfig(config *configuration.Configuration, flagSet bool, flagValue, defaultVersion int) int {
	if flagSet {
		return flagValue
	}
	if config != nil && config.FormatVersion != 0 {
		return config.FormatVersion
	}
	return defaultVersion
}
