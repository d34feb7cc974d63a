package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/promptlens/promptlens/internal/model"
)

// Analyzer is the interface batch jobs use to segment a prompt
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (*model.Analysis, error)
}

// AnalyzeJob segments and scores one prompt from a batch run
type AnalyzeJob struct {
	Prompt   string
	Analyzer Analyzer
}

// Execute runs the analysis for this job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	analysis, err := j.Analyzer.Analyze(ctx, j.Prompt)
	return &AnalyzeResult{
		Prompt:   j.Prompt,
		Analysis: analysis,
		Error:    err,
	}
}

// AnalyzeResult is the outcome of one batch analysis
type AnalyzeResult struct {
	Prompt   string
	Analysis *model.Analysis
	Error    error
}

// GetError returns the error from the analysis
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple prompts concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPrompts analyzes the given prompts concurrently
func (b *BatchProcessor) ProcessPrompts(ctx context.Context, prompts []string) []*AnalyzeResult {
	if len(prompts) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, prompt := range prompts {
		pool.Submit(&AnalyzeJob{
			Prompt:   prompt,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads prompts from a file (one per line) and analyzes them
// concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	prompts, err := ReadPromptsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}

	return b.ProcessPrompts(ctx, prompts), nil
}

// ReadPromptsFromFile reads prompts from a file, one per line, skipping
// blank lines, comments, and duplicates
func ReadPromptsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var prompts []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			prompts = append(prompts, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return prompts, nil
}
