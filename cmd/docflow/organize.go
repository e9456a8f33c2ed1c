package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mjanssen/docflow/internal/advise"
	"github.com/mjanssen/docflow/internal/classify"
	"github.com/mjanssen/docflow/internal/cli"
	"github.com/mjanssen/docflow/internal/common"
	"github.com/mjanssen/docflow/internal/config"
	"github.com/mjanssen/docflow/internal/extract"
	"github.com/mjanssen/docflow/internal/heuristic"
	"github.com/mjanssen/docflow/internal/llm"
	"github.com/mjanssen/docflow/internal/organize"
)

func organizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize <source-dir> <dest-dir>",
		Short: "Classify and file every supported document under source-dir",
		Args:  cobra.ExactArgs(2),
		RunE:  runOrganize,
	}

	cmd.Flags().Bool("recursive", true, "scan subdirectories of the source")
	cmd.Flags().Bool("rename", false, "allow renaming files on move")
	cmd.Flags().Bool("descriptive-names", false, "ask the model for descriptive filenames (implies --rename)")
	cmd.Flags().Bool("ai-folders", false, "ask the model for destination folder paths")
	cmd.Flags().Bool("metadata", false, "write a metadata sidecar next to each moved file")
	cmd.Flags().Bool("yes", false, "accept all suggestions without prompting")
	cmd.Flags().Bool("dry-run", false, "report planned moves without touching any file")

	_ = viper.BindPFlag("organize.recursive", cmd.Flags().Lookup("recursive"))
	_ = viper.BindPFlag("organize.rename", cmd.Flags().Lookup("rename"))
	_ = viper.BindPFlag("organize.descriptive_names", cmd.Flags().Lookup("descriptive-names"))
	_ = viper.BindPFlag("organize.ai_folders", cmd.Flags().Lookup("ai-folders"))
	_ = viper.BindPFlag("organize.metadata", cmd.Flags().Lookup("metadata"))

	return cmd
}

func runOrganize(cmd *cobra.Command, args []string) error {
	sourceDir, destDir := args[0], args[1]

	cfg, err := config.FromViper()
	if err != nil {
		return common.NewUserError("configuration error", err)
	}
	if cfg.DescriptiveNames {
		cfg.RenameFiles = true
	}

	gateway, err := llm.NewGateway(cfg.Gateway, slog.Default())
	if err != nil {
		return err
	}

	matcher, err := heuristic.NewMatcher(heuristic.DefaultRules())
	if err != nil {
		return fmt.Errorf("failed to compile heuristic rules: %w", err)
	}

	classifier := classify.New(gateway, matcher, cfg.Categories, cfg.MaxPromptChars, slog.Default())
	advisor := advise.New(gateway, cfg.MaxPromptChars, cfg.MaxNameChars, slog.Default())
	extractor := extract.NewRegistry(cfg.MinTextLength, slog.Default())

	reporter := cli.NewProgressReporter(cmd.OutOrStdout())

	opts := []organize.Option{
		organize.WithProgress(reporter.Sink()),
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		opts = append(opts, organize.WithDryRun(true))
	}

	autoAccept, _ := cmd.Flags().GetBool("yes")
	if interactive() && !autoAccept && !dryRun {
		confirmer := cli.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
		opts = append(opts,
			organize.WithFilenameConfirmer(confirmer.ConfirmFilename),
			organize.WithFolderConfirmer(confirmer.ConfirmFolderPath),
		)
	} else {
		opts = append(opts,
			organize.WithFilenameConfirmer(cli.AcceptFilename),
			organize.WithFolderConfirmer(cli.AcceptFolderPath),
		)
	}

	organizer := organize.New(cfg, extractor, classifier, advisor, opts...)

	stats, err := organizer.Organize(cmd.Context(), sourceDir, destDir)
	canceled := errors.Is(err, context.Canceled)
	if err != nil && !canceled {
		return err
	}

	reporter.Summary(stats, canceled)
	return nil
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
