// This file implements the persistence step for one entity: accepted records
// are flattened into positional rows and handed to the backend as a single
// transactional batch.
//
// Logging: one concise line per entity with totals and rows/sec, in the
// style of the batch loader's progress lines.
package storage

import (
	"context"
	"log"
	"time"

	"erpload/pkg/records"
)

// LoadEntity inserts the accepted records of one entity into table. Columns
// gives the destination column order; each record is projected onto it. The
// backend wraps the whole batch in one transaction, so either every row in
// recs is persisted or none are.
func LoadEntity(
	ctx context.Context,
	repo Repository,
	table string,
	columns []string,
	recs []records.Record,
) (int64, error) {
	if len(recs) == 0 {
		log.Printf("loader: table=%s nothing to insert", table)
		return 0, nil
	}

	rows := make([][]any, len(recs))
	for i, rec := range recs {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = rec[c]
		}
		rows[i] = row
	}

	start := time.Now()
	n, err := repo.InsertBatch(ctx, table, columns, rows)
	if err != nil {
		log.Printf("loader: table=%s insert failed after=%d err=%v", table, n, err)
		return n, err
	}

	elapsed := time.Since(start)
	rps := float64(0)
	if elapsed > 0 {
		rps = float64(n) / elapsed.Seconds()
	}
	log.Printf("loader: table=%s inserted=%d rps=%.0f elapsed=%s",
		table, n, rps, elapsed.Truncate(time.Millisecond))

	return n, nil
}
