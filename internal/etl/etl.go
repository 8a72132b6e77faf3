// Package etl drives a full load run: for each entity, in dependency order,
// it opens the export file, parses it, coerces and validates the rows, and
// hands the survivors to the storage backend in one transactional batch.
//
// A failure while loading one entity does not abort the run. The entity's
// report carries the error and later entities still execute; their foreign
// keys resolve against whatever keys the failed entity managed to validate,
// so downstream data stays consistent with what is actually in the store.
package etl

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"erpload/internal/config"
	"erpload/internal/metrics"
	csvparser "erpload/internal/parser/csv"
	"erpload/internal/rejectlog"
	"erpload/internal/schema"
	"erpload/internal/source/file"
	"erpload/internal/storage"
	"erpload/internal/transformer"
	"erpload/internal/validate"
	"erpload/pkg/records"
)

// EntityReport summarizes one entity's trip through the pipeline.
type EntityReport struct {
	Entity string

	// Parsed is the number of raw rows the parser produced.
	Parsed int
	// ParseSkipped counts rows the parser dropped (malformed or wrong width).
	ParseSkipped int
	// Accepted is the number of rows that passed validation.
	Accepted int
	// Rejected counts validation rejections per reason.
	Rejected map[validate.Reason]int
	// Inserted is the number of rows the backend committed.
	Inserted int64

	// Err is the entity-fatal error, if any. When set, Inserted is 0 and the
	// entity's table is untouched; the run still continues with the next
	// entity.
	Err error
}

// RejectedTotal sums rejections across reasons.
func (r EntityReport) RejectedTotal() int {
	var n int
	for _, c := range r.Rejected {
		n += c
	}
	return n
}

// Summary is the outcome of one run.
type Summary struct {
	// RunID uniquely identifies the run in logs and reject files.
	RunID    string
	Job      string
	Started  time.Time
	Elapsed  time.Duration
	Entities []EntityReport
}

// Failed reports whether any entity ended with an error.
func (s Summary) Failed() bool {
	for _, e := range s.Entities {
		if e.Err != nil {
			return true
		}
	}
	return false
}

// Run executes the pipeline described by cfg. It returns an error only for
// run-fatal conditions (storage unreachable, DDL failed, reject log
// unwritable); per-entity failures are reported in the Summary.
func Run(ctx context.Context, cfg config.Pipeline) (Summary, error) {
	sum := Summary{
		RunID:   uuid.NewString(),
		Job:     cfg.Job,
		Started: time.Now(),
	}
	log.Printf("run: id=%s job=%s storage=%s", sum.RunID, cfg.Job, cfg.Storage.Kind)

	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.Storage.DSN})
	if err != nil {
		return sum, fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	start := time.Now()
	err = storage.EnsureTables(ctx, cfg.Storage.Kind, repo, schema.TableDefs())
	metrics.RecordStep(cfg.Job, "ddl", err, time.Since(start))
	if err != nil {
		return sum, fmt.Errorf("ensure tables: %w", err)
	}

	var rlog *rejectlog.Log
	if cfg.RejectLog != "" {
		rlog, err = rejectlog.New(cfg.RejectLog)
		if err != nil {
			return sum, err
		}
		defer func() {
			if cerr := rlog.Close(); cerr != nil {
				log.Printf("run: close reject log: %v", cerr)
			}
		}()
	}

	upstream := map[string]validate.KeySet{}
	for _, ent := range schema.Entities() {
		rep := loadEntity(ctx, cfg, repo, rlog, ent, upstream)
		sum.Entities = append(sum.Entities, rep)
	}

	sum.Elapsed = time.Since(sum.Started)
	log.Printf("run: id=%s done elapsed=%s failed=%v",
		sum.RunID, sum.Elapsed.Truncate(time.Millisecond), sum.Failed())
	return sum, nil
}

// loadEntity runs one entity through parse, transform, validate and load.
// Whatever happens, it registers the entity's key set so downstream foreign
// keys resolve against exactly the keys that were accepted here.
func loadEntity(
	ctx context.Context,
	cfg config.Pipeline,
	repo storage.Repository,
	rlog *rejectlog.Log,
	ent schema.Entity,
	upstream map[string]validate.KeySet,
) EntityReport {
	rep := EntityReport{Entity: ent.Name, Rejected: map[validate.Reason]int{}}

	// A failed entity still needs an (empty) key set: downstream FK checks
	// must see only keys that are really in the store.
	upstream[ent.Name] = validate.KeySet{}

	src, ok := cfg.Sources[ent.Name]
	if !ok {
		rep.Err = fmt.Errorf("no source configured for %s", ent.Name)
		return rep
	}

	start := time.Now()
	raw, skipped, err := parseSource(src, len(ent.Fields))
	metrics.RecordStep(cfg.Job, "parse", err, time.Since(start))
	if err != nil {
		rep.Err = fmt.Errorf("parse %s: %w", ent.Name, err)
		return rep
	}
	rep.Parsed = len(raw)
	rep.ParseSkipped = skipped
	metrics.RecordRows(cfg.Job, ent.Name, "parsed", int64(len(raw)))
	metrics.RecordRows(cfg.Job, ent.Name, "parse_skipped", int64(skipped))

	start = time.Now()
	recs := toRecords(ent, raw)
	recs = transformer.Chain{
		transformer.Normalize{},
		transformer.Coerce{Entity: ent},
	}.Apply(recs)
	metrics.RecordStep(cfg.Job, "transform", nil, time.Since(start))

	start = time.Now()
	res := validate.Validator{Entity: ent, Upstream: upstream}.Run(recs)
	metrics.RecordStep(cfg.Job, "validate", nil, time.Since(start))
	upstream[ent.Name] = res.Keys

	rep.Accepted = len(res.Accepted)
	for _, rej := range res.Rejected {
		rep.Rejected[rej.Reason]++
		rlog.Add(ent.Name, rej)
	}
	metrics.RecordRows(cfg.Job, ent.Name, "rejected", int64(len(res.Rejected)))
	log.Printf("validate: entity=%s accepted=%d rejected=%d keys=%d",
		ent.Name, len(res.Accepted), len(res.Rejected), res.Keys.Len())

	start = time.Now()
	n, err := storage.LoadEntity(ctx, repo, ent.Name, ent.Columns(), res.Accepted)
	metrics.RecordStep(cfg.Job, "load", err, time.Since(start))
	if err != nil {
		// The batch rolled back; nothing from this entity is in the store.
		// Its key set stays registered so downstream validation matches the
		// validated (even if unpersisted) parents.
		rep.Err = fmt.Errorf("load %s: %w", ent.Name, err)
		return rep
	}
	rep.Inserted = n
	metrics.RecordRows(cfg.Job, ent.Name, "inserted", n)
	if n > 0 {
		metrics.RecordBatches(cfg.Job, 1)
	}
	return rep
}

// parseSource opens and tokenizes one export file.
func parseSource(src config.Source, fields int) ([][]string, int, error) {
	r, closeFn, err := file.Source{Path: src.Path, Encoding: src.Encoding}.Open()
	if err != nil {
		return nil, 0, err
	}
	defer closeFn()

	p := csvparser.NewParser(csvparser.Options{
		HasHeader:      src.HasHeader,
		Comma:          src.Comma(),
		ExpectedFields: fields,
	})
	return p.Parse(r)
}

// toRecords zips raw rows into records keyed by the entity's column names.
// Column meaning comes from position; the export column order is fixed.
func toRecords(ent schema.Entity, rows [][]string) []records.Record {
	cols := ent.Columns()
	out := make([]records.Record, len(rows))
	for i, row := range rows {
		rec := make(records.Record, len(cols))
		for j, c := range cols {
			rec[c] = row[j]
		}
		out[i] = rec
	}
	return out
}
