package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ostreetar/ostree-tar/internal/exportlog"
	"github.com/ostreetar/ostree-tar/internal/jsonrepo"
	"github.com/ostreetar/ostree-tar/ostreetar"
)

var (
	exportRepoPath      string
	exportOut           string
	exportFormatVersion int
	exportIgnoreXattrs  bool
	exportChunkPath     string
	exportFinalChunk    string
)

var exportCmd = &cobra.Command{
	Use:   "export <revision>",
	Short: "export a commit, a single chunk, or a final chunk to a tar stream",
	Long: `export writes a deterministic, uncompressed tar stream to --out (or
stdout). Given only a revision it performs a full export of that commit.
Given --chunk <plan.json> it emits the repository scaffold plus the content
chunk the plan file describes, in format version 1, without walking any
dirtree; <revision> is accepted but unused beyond request parity. Given
--final-chunk <plan.json> it additionally emits the commit object and every
metadata object the plan names before the residual content chunk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportRepoPath, "repo", "", "path to the JSON repository manifest (overrides the configured repo)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path for the tar stream (default stdout)")
	exportCmd.Flags().IntVar(&exportFormatVersion, "format-version", 0, "on-wire format version: 0 or 1 (default 0 for a full export, ignored for --chunk/--final-chunk which are always 1)")
	exportCmd.Flags().BoolVar(&exportIgnoreXattrs, "ignore-xattrs", false, "suppress xattr emission entirely for every content object in the run")
	exportCmd.Flags().StringVar(&exportChunkPath, "chunk", "", "emit the scaffold plus the single content chunk described by this JSON file, instead of a full export")
	exportCmd.Flags().StringVar(&exportFinalChunk, "final-chunk", "", "emit the scaffold, commit, metadata inventory and residual chunk described by this JSON chunk-plan file, instead of a full export")
}

func runExport(cmd *cobra.Command, args []string) error {
	config, err := resolveConfiguration()
	if err != nil {
		return err
	}

	repoPath := exportRepoPath
	if repoPath == "" && config != nil {
		repoPath = config.Repo
	}
	if repoPath == "" {
		return fmt.Errorf("no repository manifest configured: pass --repo or --config")
	}

	repo, err := jsonrepo.Load(repoPath)
	if err != nil {
		return err
	}

	outPath := exportOut
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
	logger := exportlog.GetLogger(ctx)

	var revision string
	if len(args) > 0 {
		revision = args[0]
	}

	switch {
	case exportChunkPath != "" && exportFinalChunk != "":
		return fmt.Errorf("--chunk and --final-chunk are mutually exclusive")

	case exportChunkPath != "":
		chunk, err := jsonrepo.LoadChunk(exportChunkPath)
		if err != nil {
			return err
		}
		logger.Infof("exporting chunk %s for commit %q", exportChunkPath, revision)
		return ostreetar.ExportChunk(ctx, repo, revision, chunk, w)

	case exportFinalChunk != "":
		plan, err := jsonrepo.LoadChunkPlan(exportFinalChunk)
		if err != nil {
			return err
		}
		commit := revision
		if commit == "" {
			return fmt.Errorf("export --final-chunk requires a commit checksum argument")
		}
		logger.Infof("exporting final chunk for commit %s from plan %s", commit, exportFinalChunk)
		return ostreetar.ExportFinalChunk(ctx, repo, commit, plan, w)

	default:
		if revision == "" {
			return fmt.Errorf("export requires a revision argument")
		}
		opts := ostreetar.ExportOptions{
			FormatVersion: formatVersionFromConfig(config, cmd.Flags().Changed("format-version"), exportFormatVersion, 0),
			IgnoreXattrs:  exportIgnoreXattrs,
		}
		logger.Infof("exporting revision %q in format version %d", revision, opts.FormatVersion)
		return ostreetar.ExportCommit(ctx, repo, revision, w, opts)
	}
}
