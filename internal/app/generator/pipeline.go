package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/amenitygen/internal/domain"
	"github.com/heartmarshall/amenitygen/internal/icons"
	"github.com/heartmarshall/amenitygen/internal/render"
	"github.com/heartmarshall/amenitygen/pkg/ctxutil"
)

// Phase names in canonical execution order.
const (
	PhaseGenerate = "generate"
	PhaseIcons    = "icons"
	PhasePublish  = "publish"
)

var allPhases = []string{PhaseGenerate, PhaseIcons, PhasePublish}

// Phases returns the phase names in execution order.
func Phases() []string {
	return append([]string(nil), allPhases...)
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Written  int
	Skipped  int
	Dropped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Deps are the optional collaborators of a Pipeline. A phase whose
// collaborator is nil is skipped with an error.
type Deps struct {
	Repo  CategoryRepo
	Tx    TxManager
	Icons IconDownloader
}

// Pipeline runs the generate, icons and publish phases over one document.
type Pipeline struct {
	log     *slog.Logger
	cfg     Config
	deps    Deps
	doc     *Document
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, cfg Config, deps Deps) *Pipeline {
	return &Pipeline{
		log:     log,
		cfg:     cfg,
		deps:    deps,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Document returns the compiled document, or nil before Run.
func (p *Pipeline) Document() *Document {
	return p.doc
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run. Reading and compiling the document is fatal; phase failures are
// recorded in Results.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	runID := uuid.New()
	ctx = ctxutil.WithRunID(ctx, runID)
	log := p.log.With(slog.String("run_id", runID.String()))

	// Step 1: Read and compile the document.
	doc, err := LoadDocument(p.cfg.DocumentPath)
	if err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	p.doc = doc
	p.logCompile(ctx, log)

	// Step 2: Determine which phases to run.
	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	// Step 3: Execute phases in order.
	for _, phase := range toRun {
		start := time.Now()
		log.InfoContext(ctx, "starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseGenerate:
			result = p.runGenerate()
		case PhaseIcons:
			result = p.runIcons(ctx)
		case PhasePublish:
			result = p.runPublish(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			log.WarnContext(ctx, "phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			log.InfoContext(ctx, "phase completed",
				slog.String("phase", phase),
				slog.Int("written", result.Written),
				slog.Int("skipped", result.Skipped),
				slog.Int("errors", result.Errors),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	log.InfoContext(ctx, "pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func (p *Pipeline) logCompile(ctx context.Context, log *slog.Logger) {
	doc := p.doc
	for _, d := range doc.Report.Dropped {
		level := slog.LevelDebug
		if errors.Is(d, domain.ErrIdentifierCollision) {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "rule dropped",
			slog.String("name_source", d.NameSource),
			slog.String("reason", d.Error()),
		)
	}
	log.InfoContext(ctx, "document compiled",
		slog.String("source", doc.Source),
		slog.Int("rows", doc.Stats.Rows),
		slog.Int("no_tag_rows", doc.Stats.NoTagRows),
		slog.Int("malformed_tokens", doc.Stats.MalformedTokens),
		slog.Int("rules", doc.Report.Rules),
		slog.Int("fields", doc.Report.Fields),
		slog.Int("dropped", len(doc.Report.Dropped)),
	)
}

// runGenerate renders the artifact and replaces the output file.
func (p *Pipeline) runGenerate() PhaseResult {
	dropped := len(p.doc.Report.Dropped)

	r, err := render.New(p.cfg.Format, p.cfg.Render)
	if err != nil {
		return PhaseResult{Dropped: dropped, Err: err}
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, p.doc.Artifact); err != nil {
		return PhaseResult{Dropped: dropped, Err: fmt.Errorf("render %s: %w", r.Name(), err)}
	}

	if p.cfg.DryRun {
		return PhaseResult{Skipped: 1, Dropped: dropped}
	}
	if p.cfg.OutputPath == "" {
		return PhaseResult{Dropped: dropped, Err: errors.New("output path not configured")}
	}
	if err := writeAtomic(p.cfg.OutputPath, buf.Bytes()); err != nil {
		return PhaseResult{Dropped: dropped, Err: fmt.Errorf("write output: %w", err)}
	}
	return PhaseResult{Written: 1, Dropped: dropped}
}

// runIcons collects icon URLs from the document and downloads them.
func (p *Pipeline) runIcons(ctx context.Context) PhaseResult {
	if p.deps.Icons == nil {
		return PhaseResult{Skipped: 1, Err: errors.New("icon downloader not configured")}
	}
	if p.cfg.IconsDir == "" {
		return PhaseResult{Skipped: 1, Err: errors.New("icons output dir not configured")}
	}

	found, err := icons.Collect(p.doc.Raw, p.cfg.BaseURL)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("collect icons: %w", err)}
	}

	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(found)}
	}

	res, err := p.deps.Icons.DownloadAll(ctx, found, p.cfg.IconsDir, p.cfg.Overwrite)
	result := PhaseResult{Written: res.Downloaded, Skipped: res.Skipped, Errors: res.Failed}
	if err != nil {
		result.Err = err
	}
	return result
}

// runPublish stores the categories of this run as a new generation.
func (p *Pipeline) runPublish(ctx context.Context) PhaseResult {
	cats := p.doc.Artifact.Categories
	if p.cfg.DryRun {
		return PhaseResult{Skipped: len(cats)}
	}
	if p.deps.Repo == nil || p.deps.Tx == nil {
		return PhaseResult{Skipped: 1, Err: errors.New("category repository not configured")}
	}

	runID, _ := ctxutil.RunIDFromCtx(ctx)
	gen := domain.NewGeneration(runID, p.doc.Source, p.doc.Artifact)

	var written int
	err := p.deps.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := p.deps.Repo.CreateGeneration(ctx, gen); err != nil {
			return fmt.Errorf("create generation: %w", err)
		}
		n, err := p.deps.Repo.InsertCategories(ctx, gen.ID, cats)
		if err != nil {
			return fmt.Errorf("insert categories: %w", err)
		}
		written = n
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	return PhaseResult{Written: written}
}

// writeAtomic replaces path with data via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
