package cli

import (
	"context"
	"fmt"

	"resumelens/internal/ai"
	"resumelens/internal/analysis"
	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file] [job-description-file]",
	Short: "Analyze a resume for ATS compatibility and job fit",
	Long: `Analyze a resume to score its ATS compatibility, extract skills and
produce improvement suggestions. When a job description file is given, the
resume is also scored against it and keyword gaps are reported.

The analysis includes:
- Overall, ATS and job match scoring
- Score breakdown across keyword, structure and content categories
- Skill extraction grouped by category
- Prioritized improvement suggestions
- AI enrichment when configured, with deterministic fallback`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	opts := []analysis.Option{}
	if cfg.AI.Enabled {
		aiService, err := ai.NewService(&cfg.AI, logger, nil)
		if err != nil {
			return fmt.Errorf("failed to create AI service: %w", err)
		}
		opts = append(opts, analysis.WithEnricher(aiService))
	}
	analyzer := analysis.NewAnalyzer(logger, opts...)

	resumeFile := args[0]
	jobFile := ""
	if len(args) == 2 {
		jobFile = args[1]
	}

	operation := func(ctx context.Context, req analysis.Request) (types.AnalysisResult, error) {
		return analyzer.Analyze(ctx, req)
	}

	err := common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		resumeFile,
		jobFile,
		operation,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	return nil
}
