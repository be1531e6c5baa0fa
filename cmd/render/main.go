package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/flexprice/budgetpdf/internal/api/dto"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/pdf"
	"github.com/flexprice/budgetpdf/internal/service"
	"github.com/sourcegraph/conc/pool"
)

func main() {
	outDir := flag.String("out", ".", "Directory the PDFs are written to")
	paper := flag.String("paper", pdf.LetterSize.Name, "Paper size: letter or a4")
	workers := flag.Int("workers", runtime.NumCPU(), "Maximum number of budgets rendered in parallel")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] budget.json...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	size, ok := pdf.PaperSizeByName(*paper)
	if !ok {
		logger.L.Fatalw("unknown paper size", "paper", *paper)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.L.Fatalw("failed to create output directory", "dir", *outDir, "error", err)
	}

	r := &renderer{
		generator: pdf.NewGeneratorWithConfig(pdf.Config{PaperSize: size, NewMetrics: pdf.NewMetrics}, logger.L),
		outDir:    *outDir,
		logger:    logger.L,
	}
	if err := r.renderAll(context.Background(), flag.Args(), *workers); err != nil {
		logger.L.Errorw("some budgets failed to render", "error", err)
		os.Exit(1)
	}
}

type renderer struct {
	generator pdf.Generator
	outDir    string
	logger    *logger.Logger
}

// renderAll renders every file, continuing past failures. The returned error
// joins all per-file errors.
func (r *renderer) renderAll(ctx context.Context, files []string, workers int) error {
	if workers < 1 {
		workers = 1
	}

	p := pool.New().WithMaxGoroutines(workers).WithErrors()
	for _, file := range files {
		p.Go(func() error {
			out, err := r.renderFile(ctx, file)
			if err != nil {
				r.logger.Errorw("failed to render budget", "file", file, "error", err)
				return ierr.WithError(err).WithMessagef("file %s", file).Error()
			}
			r.logger.Infow("rendered budget", "file", file, "output", out)
			return nil
		})
	}
	return p.Wait()
}

// renderFile renders one JSON budget and returns the path written
func (r *renderer) renderFile(ctx context.Context, file string) (string, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	var req dto.RenderBudgetRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return "", ierr.WithError(err).
			WithHint("Budget file is not valid JSON").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	doc, err := req.ToDocument(r.logger)
	if err != nil {
		return "", err
	}

	data, err := r.generator.RenderBudgetPdf(ctx, doc)
	if err != nil {
		return "", err
	}

	out := filepath.Join(r.outDir, service.BudgetFilename(doc.Number))
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", err
	}
	return out, nil
}
