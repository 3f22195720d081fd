package main

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Abraxas-365/peoplehub/internal/config"
	"github.com/Abraxas-365/peoplehub/internal/db"
	"github.com/Abraxas-365/peoplehub/internal/docextract"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore/memstore"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore/pgvectorstore"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/matching"
	"github.com/Abraxas-365/peoplehub/recruitment/matching/matchingsrv"
)

type ingestOptions struct {
	File     string
	Provider string
	TopK     int
	ResumeID string
	DryRun   bool
}

var ingestOpts ingestOptions

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Run the resume pipeline once against a local PDF or DOCX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ingestOpts.File = args[0]
		return runIngest(cmd.Context(), cmd.OutOrStdout(), ingestOpts)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestOpts.Provider, "provider", "", "LLM provider: gemini or chatgpt (default llm.default_provider)")
	ingestCmd.Flags().IntVar(&ingestOpts.TopK, "k", 0, "number of job matches to return (default matching.top_k)")
	ingestCmd.Flags().StringVar(&ingestOpts.ResumeID, "resume-id", "", "id to index the resume under (default a new uuid)")
	ingestCmd.Flags().BoolVar(&ingestOpts.DryRun, "dry-run", false, "use an in-memory vector store instead of Postgres")
}

func runIngest(ctx context.Context, out io.Writer, opts ingestOptions) error {
	var reqs []config.Requirement
	if !opts.DryRun {
		reqs = append(reqs, config.RequireDatabase)
	}
	cfg, err := loadConfig(reqs...)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(opts.File)
	if err != nil {
		return errx.Wrap(err, "invalid file path", errx.TypeValidation)
	}

	var store vectorstore.Store
	if opts.DryRun {
		store = memstore.New()
	} else {
		pool, err := db.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = pgvectorstore.New(pool)
	}

	providers, err := newProviders(ctx, cfg)
	if err != nil {
		return err
	}
	orchestrator := matchingsrv.NewOrchestrator(
		docextract.NewExtractor(fsxlocal.NewLocalFileSystem(filepath.Dir(abs))),
		providers,
		newIndex(cfg, store),
		cfg.Matching.TopK,
	)

	resumeID := opts.ResumeID
	if resumeID == "" {
		resumeID = uuid.NewString()
	}

	result, err := orchestrator.IngestResume(ctx, matching.IngestResumeRequest{
		FilePath: filepath.Base(abs),
		ResumeID: kernel.NewResumeID(resumeID),
		Provider: opts.Provider,
		TopK:     opts.TopK,
		OnStage: func(s matching.Stage) {
			logx.Infof("%s (%d%%)", s, s.Progress())
		},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
