// Package pipeline orchestrates one full warehouse refresh: extract the
// seven source relations, bind them to the canonical column orders, build
// the star-schema model, and load it into the target store in a single
// transaction.
//
// The phases run strictly in sequence. Each phase either completes for all
// relations or aborts the run; there is no partial progress to resume.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/config"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/extract"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/metrics"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/schema"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/transform"
	"github.com/Sha661nk/B2B-ETL-Pipeline/internal/warehouse"
	"github.com/Sha661nk/B2B-ETL-Pipeline/pkg/records"
)

// SourceReader produces a raw snapshot of all source relations. It is
// satisfied by *extract.Extractor and by test fakes.
type SourceReader interface {
	Snapshot(ctx context.Context) (*extract.Snapshot, error)
}

// Result summarizes a completed refresh.
type Result struct {
	// RunID uniquely identifies this run in logs and metrics.
	RunID string

	// SourceRows counts extracted rows per source relation.
	SourceRows map[schema.Relation]int

	// TableRows counts loaded rows per warehouse table.
	TableRows map[string]int64

	// Fingerprint is a content hash of the built model, useful for
	// verifying that repeated runs over unchanged sources are identical.
	Fingerprint uint64

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration
}

// Pipeline runs warehouse refreshes for one configuration.
type Pipeline struct {
	cfg config.Pipeline
	log *log.Logger
}

// New returns a Pipeline for cfg. logger may be nil, in which case the
// default logger is used.
func New(cfg config.Pipeline, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{cfg: cfg, log: logger}
}

// Run connects to the configured source and target stores and executes one
// refresh. Connections are opened per run and closed before returning.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	pool, err := pgxpool.New(ctx, p.cfg.Source.DSN)
	if err != nil {
		return nil, fmt.Errorf("pipeline: connect source: %w", err)
	}
	defer pool.Close()

	repo, err := storage.New(ctx, storage.Config{
		Kind:   p.cfg.Target.Kind,
		DSN:    p.cfg.Target.DSN,
		Logger: p.log,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: open target: %w", err)
	}
	defer repo.Close()

	if p.cfg.Target.AutoCreateSchema {
		if err := storage.EnsureSchema(ctx, p.cfg.Target.Kind, repo); err != nil {
			return nil, fmt.Errorf("pipeline: ensure schema: %w", err)
		}
	}

	return p.Execute(ctx, extract.New(pool, p.log), repo)
}

// Execute runs the extract, bind, transform, and load phases against already
// open source and target handles. It is the seam used by tests.
func (p *Pipeline) Execute(ctx context.Context, src SourceReader, repo storage.Repository) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:      uuid.NewString(),
		SourceRows: make(map[schema.Relation]int, len(schema.Relations)),
		TableRows:  make(map[string]int64),
	}
	p.log.Printf("pipeline: job=%s run=%s start", p.cfg.Job, res.RunID)

	snap, err := timed(p, "extract", func() (*extract.Snapshot, error) {
		return src.Snapshot(ctx)
	})
	if err != nil {
		return nil, err
	}
	for rel, batch := range snap.Batches {
		res.SourceRows[rel] = len(batch)
	}

	bound, err := timed(p, "bind", func() (*transform.Source, error) {
		return bindSnapshot(snap)
	})
	if err != nil {
		return nil, err
	}

	model, err := timed(p, "transform", func() (*warehouse.Model, error) {
		return transform.Build(*bound)
	})
	if err != nil {
		return nil, err
	}
	res.Fingerprint = Fingerprint(model)

	tables := model.Tables()
	_, err = timed(p, "load", func() (struct{}, error) {
		return struct{}{}, repo.Refresh(ctx, tables)
	})
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		n := int64(len(t.Rows))
		res.TableRows[t.Name] = n
		metrics.RecordTableRows(p.cfg.Job, t.Name, n)
	}

	res.Duration = time.Since(start)
	p.log.Printf("pipeline: job=%s run=%s done in %s fingerprint=%016x",
		p.cfg.Job, res.RunID, res.Duration.Round(time.Millisecond), res.Fingerprint)
	return res, nil
}

// timed runs one phase, logging and recording its outcome and duration.
func timed[T any](p *Pipeline, phase string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	d := time.Since(start)

	metrics.RecordPhase(p.cfg.Job, phase, err, d)
	if err != nil {
		p.log.Printf("pipeline: job=%s phase=%s failed after %s: %v", p.cfg.Job, phase, d.Round(time.Millisecond), err)
		return v, err
	}
	p.log.Printf("pipeline: job=%s phase=%s ok in %s", p.cfg.Job, phase, d.Round(time.Millisecond))
	return v, nil
}

// bindSnapshot converts every raw relation batch into named records using
// the canonical column orders.
func bindSnapshot(snap *extract.Snapshot) (*transform.Source, error) {
	bind := func(rel schema.Relation) ([]records.Record, error) {
		return schema.Bind(rel, snap.Batches[rel])
	}

	var (
		src transform.Source
		err error
	)
	if src.Companies, err = bind(schema.Companies); err != nil {
		return nil, err
	}
	if src.Customers, err = bind(schema.Customers); err != nil {
		return nil, err
	}
	if src.Products, err = bind(schema.Products); err != nil {
		return nil, err
	}
	if src.Orders, err = bind(schema.Orders); err != nil {
		return nil, err
	}
	if src.OrderItems, err = bind(schema.OrderItems); err != nil {
		return nil, err
	}
	if src.Campaigns, err = bind(schema.Marketing); err != nil {
		return nil, err
	}
	if src.Weblog, err = bind(schema.Weblog); err != nil {
		return nil, err
	}
	return &src, nil
}
