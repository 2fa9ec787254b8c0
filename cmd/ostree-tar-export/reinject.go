package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ostreetar/ostree-tar/internal/exportlog"
	"github.com/ostreetar/ostree-tar/ostreetar"
)

var (
	reinjectIn           string
	reinjectOut          string
	reinjectMetadataFile string
	reinjectRemove       bool
)

var reinjectCmd = &cobra.Command{
	Use:   "reinject",
	Short: "rewrite the detached commit metadata of an already-produced export stream",
	Long: `reinject stream-rewrites a previously produced tar export, replacing or
removing its CommitMeta entry without re-emitting anything else in the
stream. Pass --metadata to replace the detached metadata with the given
file's bytes, or --remove to drop it entirely.`,
	RunE: runReinject,
}

func init() {
	reinjectCmd.Flags().StringVar(&reinjectIn, "in", "", "input tar stream path (default stdin)")
	reinjectCmd.Flags().StringVarP(&reinjectOut, "out", "o", "", "output tar stream path (default stdout)")
	reinjectCmd.Flags().StringVar(&reinjectMetadataFile, "metadata", "", "path to the replacement detached-metadata bytes")
	reinjectCmd.Flags().BoolVar(&reinjectRemove, "remove", false, "remove the detached metadata entry instead of replacing it")
}

func runReinject(cmd *cobra.Command, args []string) error {
	if reinjectMetadataFile != "" && reinjectRemove {
		return fmt.Errorf("--metadata and --remove are mutually exclusive")
	}

	var detached []byte
	if reinjectMetadataFile != "" {
		b, err := os.ReadFile(reinjectMetadataFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", reinjectMetadataFile, err)
		}
		detached = b
	}
	if !reinjectRemove && reinjectMetadataFile == "" {
		return fmt.Errorf("reinject requires --metadata or --remove")
	}

	r := os.Stdin
	if reinjectIn != "" {
		f, err := os.Open(reinjectIn)
		if err != nil {
			return fmt.Errorf("opening %s: %w", reinjectIn, err)
		}
		defer f.Close()
		r = f
	}

	config, err := resolveConfiguration()
	if err != nil {
		return err
	}

	outPath := reinjectOut
	if outPath == "" && config != nil {
		outPath = config.Output
	}
	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	ctx := configureLogging(config)
	exportlog.GetLogger(ctx).Info("rewriting detached commit metadata")

	return ostreetar.UpdateDetachedMetadata(ctx, r, w, detached)
}
