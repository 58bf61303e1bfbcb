package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out a single increasing sequence number shared by
// attempts and LLM events, so rows from both tables can be ordered against
// each other. The mutex serializes within the process; the row update
// inside a transaction serializes across processes.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	seed, args := entsql.Dialect(drv.Dialect()).
		Insert(globalSequenceTable.Name).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, seed, args, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{drv: drv}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (seq int64, err error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx, err := sc.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin sequence tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	b := entsql.Dialect(sc.drv.Dialect())
	update, args := b.Update(globalSequenceTable.Name).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Query()
	if err := tx.Exec(ctx, update, args, nil); err != nil {
		return 0, fmt.Errorf("bump sequence: %w", err)
	}

	sel, args := b.Select("next_val").
		From(b.Table(globalSequenceTable.Name)).
		Where(entsql.EQ("id", 1)).
		Query()
	rows := &entsql.Rows{}
	if err := tx.Query(ctx, sel, args, rows); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	if !rows.Next() {
		rows.Close()
		return 0, fmt.Errorf("read sequence: counter row missing")
	}
	if err := rows.Scan(&seq); err != nil {
		rows.Close()
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence: %w", err)
	}
	return seq - 1, nil
}
