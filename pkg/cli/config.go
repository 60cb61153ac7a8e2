package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/adapter"
	"github.com/m-mizutani/emolens/pkg/repository"
	"github.com/urfave/cli/v3"
)

// config holds configuration values shared across commands
type config struct {
	// Repository
	project  string
	database string

	// Adapters
	geminiProject  string
	geminiLocation string
	authAPIKey     string
	bucket         string

	// Archive
	bqDataset string
	bqTable   string

	// Session file
	sessionPath string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "session",
			Usage:       "Path to the sign-in session file",
			Sources:     cli.EnvVars("EMOLENS_SESSION"),
			Destination: &cfg.sessionPath,
		},
	}
}

// llmFlags returns flags for the generative model configuration
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
	}
}

// authFlags returns flags for the identity provider
func authFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-api-key",
			Usage:       "Identity Toolkit web API key",
			Sources:     cli.EnvVars("EMOLENS_AUTH_API_KEY"),
			Destination: &cfg.authAPIKey,
		},
	}
}

// storageFlags returns flags for the audio archive bucket
func storageFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket for audio archival (optional)",
			Sources:     cli.EnvVars("EMOLENS_BUCKET"),
			Destination: &cfg.bucket,
		},
	}
}

// bigqueryFlags returns flags for the long-term archive destination
func bigqueryFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Usage:       "BigQuery dataset for the analysis archive",
			Value:       "emolens",
			Sources:     cli.EnvVars("EMOLENS_BQ_DATASET"),
			Destination: &cfg.bqDataset,
		},
		&cli.StringFlag{
			Name:        "table",
			Usage:       "BigQuery table for the analysis archive",
			Value:       "history",
			Sources:     cli.EnvVars("EMOLENS_BQ_TABLE"),
			Destination: &cfg.bqTable,
		},
	}
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newGemini creates a new Gemini adapter instance. The Firestore project is
// reused when no dedicated Gemini project is configured.
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	project := cfg.geminiProject
	if project == "" {
		project = cfg.project
	}
	if project == "" {
		return nil, goerr.New("gemini-project is required")
	}
	if cfg.geminiLocation == "" {
		return nil, goerr.New("gemini-location is required")
	}
	return adapter.NewGemini(ctx, project, cfg.geminiLocation)
}

// newAuth creates a new Auth adapter instance
func (cfg *config) newAuth(ctx context.Context) (adapter.Auth, error) {
	if cfg.authAPIKey == "" {
		return nil, goerr.New("auth-api-key is required")
	}
	return adapter.NewAuth(ctx, cfg.authAPIKey)
}

// newBigQuery creates a new BigQuery adapter instance
func (cfg *config) newBigQuery(ctx context.Context) (adapter.BigQuery, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.bqDataset == "" || cfg.bqTable == "" {
		return nil, goerr.New("dataset and table are required")
	}
	return adapter.NewBigQuery(ctx, cfg.project, cfg.bqDataset, cfg.bqTable)
}

// newStorage creates a new Storage adapter instance, nil when no bucket is
// configured since audio archival is optional.
func (cfg *config) newStorage(ctx context.Context) (adapter.Storage, error) {
	if cfg.bucket == "" {
		return nil, nil
	}
	return adapter.NewStorage(ctx, cfg.bucket)
}
