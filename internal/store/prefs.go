package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/somdipdey/Learning-Styles/internal/answers"
)

// Persisted keys.
const (
	KeyAnswers = "hm_lsq_answers"
	KeyName    = "hm_lsq_name"
)

// Prefs is a small key-value repository for per-user state.
type Prefs struct {
	drv *entsql.Driver
}

// Get returns the value for key and whether it exists.
func (p *Prefs) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := sqlite.Select("value").
		From(sqlite.Table("kv")).
		Where(entsql.EQ("key", key)).
		Query()
	var rows entsql.Rows
	if err := p.drv.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, fmt.Errorf("get %s: %w", key, err)
		}
		return "", false, nil
	}
	var v string
	if err := rows.Scan(&v); err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (p *Prefs) Set(ctx context.Context, key, value string) error {
	query, args := sqlite.Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, entsql.Expr("CURRENT_TIMESTAMP")).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if err := p.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// LoadAnswers returns the persisted answer map. A missing key yields an
// empty map; an unreadable value yields an error and no answers.
func (p *Prefs) LoadAnswers(ctx context.Context) (map[int]bool, error) {
	raw, ok, err := p.Get(ctx, KeyAnswers)
	if err != nil || !ok {
		return map[int]bool{}, err
	}
	m, err := answers.Decode([]byte(raw))
	if err != nil {
		return map[int]bool{}, fmt.Errorf("decode %s: %w", KeyAnswers, err)
	}
	return m, nil
}

// SaveAnswers persists the current answers of a.
func (p *Prefs) SaveAnswers(ctx context.Context, a *answers.Store) error {
	b, err := a.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return p.Set(ctx, KeyAnswers, string(b))
}

// LoadName returns the persisted display identity, or "" if none.
func (p *Prefs) LoadName(ctx context.Context) (string, error) {
	v, _, err := p.Get(ctx, KeyName)
	return v, err
}

// SaveName persists the display identity.
func (p *Prefs) SaveName(ctx context.Context, name string) error {
	return p.Set(ctx, KeyName, name)
}

// Clear removes the persisted answers and name.
func (p *Prefs) Clear(ctx context.Context) error {
	query, args := sqlite.Delete("kv").
		Where(entsql.In("key", KeyAnswers, KeyName)).
		Query()
	if err := p.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear prefs: %w", err)
	}
	return nil
}
