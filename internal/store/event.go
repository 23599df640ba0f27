package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Every event table draws its sequence from global_sequence, so LLM calls
// and exports can be ordered against each other.

// eventRepo implements EventRepo on the ent SQL builder.
type eventRepo struct {
	drv *entsql.Driver
	// writeMu serializes appends within the process. PRAGMA busy_timeout
	// only reaches one pooled connection, so concurrent writers would
	// otherwise see SQLITE_BUSY.
	writeMu *sync.Mutex
	// now stamps new events; tests may pin it.
	now func() time.Time
}

// appendEvent allocates the next sequence number and runs insert in the same
// transaction, so a failed insert never burns a number. insert receives the
// sequence and the millisecond timestamp as its first two values.
func (r *eventRepo) appendEvent(ctx context.Context, table string, columns []string, values ...any) (int64, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}
	query, args := sqlite.Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seq, now().UnixMilli()}, values...)...).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return seq, nil
}

// nextSequence reads the counter and bumps it inside tx.
func nextSequence(ctx context.Context, tx dialect.ExecQuerier) (int64, error) {
	query, args := sqlite.Select("next_val").
		From(sqlite.Table("global_sequence")).
		Where(entsql.EQ("id", 1)).
		Query()
	var rows entsql.Rows
	if err := tx.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	var seq int64
	if !rows.Next() {
		rows.Close()
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("global_sequence is empty")
	}
	if err := rows.Scan(&seq); err != nil {
		rows.Close()
		return 0, err
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}

	query, args = sqlite.Update("global_sequence").
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return 0, err
	}
	return seq, nil
}

// window narrows sel to the QueryOpts filters and applies ordering and the
// limit. Events come back newest first.
func (o QueryOpts) window(sel *entsql.Selector) *entsql.Selector {
	var preds []*entsql.Predicate
	if o.After > 0 {
		preds = append(preds, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		preds = append(preds, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", o.From.UnixMilli()))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", o.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if o.Limit > 0 {
		sel.Limit(o.Limit)
	}
	return sel
}

// query runs sel and hands every row to scan.
func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector, scan func(scanner) error) error {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
