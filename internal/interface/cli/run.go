package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/adapter/gateway/agent"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/adapter/gateway/storage"
	appconfig "github.com/brsteele1975/qa-artifact-compression-workflow/internal/app/config"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/application/port/output"
	infraconfig "github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/config"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/repository/prompt"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/usecase/pipeline"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <prd-path>",
		Short: "Run the Intake → Risk → Review pipeline against one PRD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), args[0])
		},
	}
}

func runPipeline(ctx context.Context, prdPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "qraft",
		Output: os.Stderr,
		Level:  hclog.Info,
	})

	// Configuration failures happen here, before any stage runs.
	cfg, err := infraconfig.LoadSettings(".")
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	store, err := newArtifactStore(cfg, fs)
	if err != nil {
		return err
	}

	gateway := agent.NewOpenAIGateway(cfg.APIKey, cfg.Model, cfg.Timeout)
	prompts := prompt.NewRepository(fs, cfg.PromptsDir)

	p := pipeline.New(gateway, store, prompts, fs, cfg.OutputDir, logger)
	result, err := p.Run(ctx, prdPath)
	if err != nil {
		return err
	}

	fmt.Printf("\nPipeline complete. %d requirements, %d test cases.\n", result.Requirements, result.TestCases)
	fmt.Printf("Test plan ready for human review at %s\n", result.ReviewPath)
	return nil
}

func newArtifactStore(cfg *appconfig.Config, fs afero.Fs) (output.ArtifactStore, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return storage.NewLocalArtifactStore(fs), nil
	case "s3":
		return storage.NewS3ArtifactStore(storage.S3Config{
			Bucket: cfg.Storage.Bucket,
			Prefix: cfg.Storage.Prefix,
			Region: cfg.Storage.Region,
		})
	default:
		return nil, &infraconfig.ConfigError{Reason: fmt.Sprintf("unknown storage backend: %s", cfg.Storage.Backend)}
	}
}
