package store

import (
	"context"
	"fmt"
	"time"
)

var exportColumns = []string{"id", "sequence", "timestamp", "export_id", "format", "path",
	"name", "bytes", "success", "error_message"}

func (r *eventRepo) AppendExport(ctx context.Context, data ExportEventData) error {
	_, err := r.appendEvent(ctx, "export_events", exportColumns[3:],
		data.ExportID, data.Format, data.Path,
		data.Name, data.Bytes, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save export event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryExports(ctx context.Context, opts QueryOpts) ([]ExportRecord, error) {
	sel := sqlite.Select(exportColumns...).From(sqlite.Table("export_events"))

	var records []ExportRecord
	err := r.query(ctx, opts.window(sel), func(s scanner) error {
		var (
			rec ExportRecord
			ts  int64
		)
		if err := s.Scan(&rec.ID, &rec.Sequence, &ts, &rec.ExportID, &rec.Format, &rec.Path,
			&rec.Name, &rec.Bytes, &rec.Success, &rec.ErrorMessage); err != nil {
			return fmt.Errorf("scan export event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query export events: %w", err)
	}
	return records, nil
}
