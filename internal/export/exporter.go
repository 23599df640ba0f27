package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/somdipdey/Learning-Styles/internal/diagram"
	"github.com/somdipdey/Learning-Styles/internal/report"
	"github.com/somdipdey/Learning-Styles/internal/store"
)

// Format is an export file format.
type Format string

const (
	FormatPNG      Format = "png"
	FormatSVG      Format = "svg"
	FormatMarkdown Format = "md"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatPNG, FormatSVG, FormatMarkdown}
}

// ParseFormats parses a format name, or "all".
func ParseFormats(s string) ([]Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "all":
		return Formats(), nil
	case "markdown":
		return []Format{FormatMarkdown}, nil
	case FormatPNG, FormatSVG, FormatMarkdown:
		return []Format{f}, nil
	}
	return nil, fmt.Errorf("unknown export format %q (want png, svg, md or all)", s)
}

// EventRecorder stores export events.
type EventRecorder interface {
	AppendExport(ctx context.Context, data store.ExportEventData) error
}

// Result describes a completed export.
type Result struct {
	ID     string
	Format Format
	File   string
	Path   string
	Bytes  int
	// Shared is set when the call joined an export already in flight.
	Shared bool
}

// Exporter writes export files into Dir. The zero value is not usable;
// Fonts is required for PNG output. Logger and Events are optional.
type Exporter struct {
	Dir    string
	Fonts  *diagram.Fonts
	Logger *zap.Logger
	Events EventRecorder

	// Fonts faces are not safe for concurrent drawing.
	paintMu sync.Mutex
	group   singleflight.Group
}

// New creates an Exporter.
func New(dir string, fonts *diagram.Fonts, events EventRecorder, logger *zap.Logger) *Exporter {
	return &Exporter{Dir: dir, Fonts: fonts, Events: events, Logger: logger}
}

func (e *Exporter) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Export writes the PNG summary image for req.
func (e *Exporter) Export(ctx context.Context, req Request) (Result, error) {
	return e.ExportFormat(ctx, req, FormatPNG)
}

// ExportSVG writes the diagram as a standalone SVG file.
func (e *Exporter) ExportSVG(ctx context.Context, req Request) (Result, error) {
	return e.ExportFormat(ctx, req, FormatSVG)
}

// ExportMarkdown writes the Markdown report.
func (e *Exporter) ExportMarkdown(ctx context.Context, req Request) (Result, error) {
	return e.ExportFormat(ctx, req, FormatMarkdown)
}

// ExportAll writes every format in formats concurrently. Results are in the
// order of formats; the first error is returned after all writes finish.
func (e *Exporter) ExportAll(ctx context.Context, req Request, formats []Format) ([]Result, error) {
	results := make([]Result, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			res, err := e.ExportFormat(ctx, req, f)
			results[i] = res
			return err
		})
	}
	return results, g.Wait()
}

// ExportFormat renders req as f and writes it. Concurrent calls that target
// the same file share a single write.
func (e *Exporter) ExportFormat(ctx context.Context, req Request, f Format) (Result, error) {
	if req.Generated.IsZero() {
		req.Generated = time.Now()
	}
	file := FileName(req.Name, string(f))
	path := filepath.Join(e.Dir, file)

	v, err, shared := e.group.Do(path, func() (any, error) {
		res := Result{ID: uuid.NewString(), Format: f, File: file, Path: path}
		err := e.write(ctx, req, &res)
		e.record(ctx, req, res, err)
		return res, err
	})
	res, _ := v.(Result)
	res.Shared = shared
	return res, err
}

func (e *Exporter) write(ctx context.Context, req Request, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := e.render(req, res.Format)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeAtomic(res.Path, data); err != nil {
		return &Error{Stage: StageWrite, Err: err}
	}
	res.Bytes = len(data)
	return nil
}

func (e *Exporter) render(req Request, f Format) ([]byte, error) {
	switch f {
	case FormatPNG:
		e.paintMu.Lock()
		img, err := Compose(req, e.Fonts)
		e.paintMu.Unlock()
		if err != nil {
			return nil, err
		}
		return EncodePNG(img)
	case FormatSVG:
		if req.Diagram == nil {
			return nil, &Error{Stage: StageDiagram, Err: diagram.ErrEmpty}
		}
		data, err := diagram.EncodeSVG(req.Diagram)
		if err != nil {
			return nil, stageErr(StageDiagram, err)
		}
		return data, nil
	case FormatMarkdown:
		var buf bytes.Buffer
		err := report.WriteMarkdown(&buf, report.Data{
			Name:      req.Name,
			Snapshot:  req.Snapshot,
			Generated: req.Generated,
		})
		if err != nil {
			return nil, &Error{Stage: StageEncode, Err: err}
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

func (e *Exporter) record(ctx context.Context, req Request, res Result, err error) {
	log := e.logger().With(
		zap.String("export_id", res.ID),
		zap.String("format", string(res.Format)),
		zap.String("path", res.Path),
	)
	data := store.ExportEventData{
		ExportID: res.ID,
		Format:   string(res.Format),
		Path:     res.Path,
		Name:     req.Name,
		Bytes:    res.Bytes,
		Success:  err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		log.Warn("export failed", zap.Error(err))
	} else {
		log.Info("export written", zap.Int("bytes", res.Bytes))
	}

	if e.Events == nil {
		return
	}
	// Record even when the export itself was cancelled.
	if rerr := e.Events.AppendExport(context.WithoutCancel(ctx), data); rerr != nil {
		log.Warn("failed to record export event", zap.Error(rerr))
	}
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// StatusMessage returns the user-facing outcome of an export.
func StatusMessage(res Result, err error) string {
	if err != nil {
		return "Download failed: " + err.Error()
	}
	return "Downloaded: " + res.File
}
