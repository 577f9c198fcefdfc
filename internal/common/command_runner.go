package common

import (
	"context"
	"fmt"

	"resumelens/internal/analysis"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// AnalysisOperationFunc runs one analysis for the already-read inputs.
type AnalysisOperationFunc func(ctx context.Context, req analysis.Request) (types.AnalysisResult, error)

// RunAnalysisCommand encapsulates the common logic for the file-based
// analyze flow: read and validate the input files, run the analysis and
// hand the result to the output handler. jobFile may be empty, in which
// case the analysis runs without a job description.
func RunAnalysisCommand(
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	resumeFile, jobFile string,
	operation AnalysisOperationFunc,
) error {
	// Pass the logger when creating helpers
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	files := []string{resumeFile}
	if jobFile != "" {
		files = append(files, jobFile)
	}

	contents, err := fileProcessor.ValidateAndReadFiles(files...)
	if err != nil {
		return err
	}

	req := analysis.Request{ResumeText: &contents[0]}
	if jobFile != "" {
		req.JobDescription = contents[1]
	}

	logger.Info("Starting resume analysis",
		"resume_chars", len(contents[0]),
		"has_job_description", jobFile != "",
		"output_format", cmdConfig.OutputFormat)

	result, err := operation(ctx, req)
	if err != nil {
		return err
	}

	logger.Info("Resume analysis completed",
		"overall_score", result.OverallScore,
		"ats_score", result.ATSScore,
		"job_match_score", result.JobMatchScore,
		"enrichment", result.Enrichment)

	if err := outputHandler.HandleOutput(result, cmdConfig); err != nil {
		return fmt.Errorf("failed to write analysis output: %w", err)
	}

	return nil
}
