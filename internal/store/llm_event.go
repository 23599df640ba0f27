package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmColumns = []string{"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body"}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.appendEvent(ctx, "llm_request_events", llmColumns[3:],
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	sel := sqlite.Select(llmColumns...).From(sqlite.Table("llm_request_events"))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}

	var records []LLMRequestRecord
	err := r.query(ctx, opts.window(sel), func(s scanner) error {
		rec, err := scanLLM(s)
		if err != nil {
			return fmt.Errorf("scan LLM event: %w", err)
		}
		records = append(records, *rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestRecord, error) {
	sel := sqlite.Select(llmColumns...).
		From(sqlite.Table("llm_request_events")).
		Where(entsql.EQ("id", id))

	var rec *LLMRequestRecord
	err := r.query(ctx, sel, func(s scanner) (err error) {
		rec, err = scanLLM(s)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return rec, nil
}

// usageColumns aggregates token counts per group.
func usageColumns(group string) []string {
	return []string{
		group,
		entsql.Count("*"),
		"COALESCE(SUM(input_tokens), 0)",
		"COALESCE(SUM(output_tokens), 0)",
	}
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	sel := sqlite.Select(append(usageColumns("purpose"), "CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)")...).
		From(sqlite.Table("llm_request_events")).
		GroupBy("purpose").
		OrderBy("purpose")

	var stats []LLMUsageStats
	err := r.query(ctx, sel, func(sc scanner) error {
		var s LLMUsageStats
		if err := sc.Scan(&s.Purpose, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return fmt.Errorf("scan usage: %w", err)
		}
		stats = append(stats, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	sel := sqlite.Select(usageColumns("model")...).
		From(sqlite.Table("llm_request_events")).
		GroupBy("model").
		OrderBy("model")

	var usage []LLMModelUsage
	err := r.query(ctx, sel, func(sc scanner) error {
		var u LLMModelUsage
		if err := sc.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return fmt.Errorf("scan model usage: %w", err)
		}
		usage = append(usage, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	return usage, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLLM(s scanner) (*LLMRequestRecord, error) {
	var (
		rec LLMRequestRecord
		ts  int64
	)
	err := s.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if err != nil {
		return nil, err
	}
	rec.Timestamp = time.UnixMilli(ts)
	return &rec, nil
}
