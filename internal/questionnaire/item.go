package questionnaire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Item is a single questionnaire statement.
type Item struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// LoadError reports a missing, unreadable or structurally invalid item source.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load questions: %v", e.Err)
	}
	return fmt.Sprintf("load questions from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrNoItems is returned when the source parses but holds no usable items.
var ErrNoItems = errors.New("questions file must be an array of {id, text} objects")

// itemsSchema is the shape every item source must satisfy before normalisation.
var itemsSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id"},
		"properties": map[string]any{
			"id":   map[string]any{"type": []any{"integer", "number", "string"}},
			"text": map[string]any{"type": []any{"string", "null"}},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func itemsValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go literals.
		raw, err := json.Marshal(itemsSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://questions.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// LoadItems reads and parses the item source at path.
func LoadItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	items, err := ParseItems(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return items, nil
}

// ParseItems shape-checks data and normalises it into a sorted item list.
// Identifiers outside MinItemID..MaxItemID and items with blank text are
// dropped; when an identifier repeats, the last occurrence wins.
func ParseItems(data []byte) ([]Item, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := itemsValidator()
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("%w: %v", ErrNoItems, err)}
	}

	records, _ := doc.([]any)
	byID := make(map[int]Item, len(records))
	for _, rec := range records {
		obj, _ := rec.(map[string]any)
		id, ok := coerceID(obj["id"])
		if !ok || id < MinItemID || id > MaxItemID {
			continue
		}
		text, _ := obj["text"].(string)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		byID[id] = Item{ID: id, Text: text}
	}
	if len(byID) == 0 {
		return nil, &LoadError{Err: ErrNoItems}
	}

	items := make([]Item, 0, len(byID))
	for _, it := range byID {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// coerceID accepts integral JSON numbers and numeric strings.
func coerceID(v any) (int, bool) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = n
	case float64:
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// DisplayName trims raw and falls back to DefaultName when it is empty.
func DisplayName(raw string) string {
	if nm := strings.TrimSpace(raw); nm != "" {
		return nm
	}
	return DefaultName
}

// ResultTitle returns the heading shown above the results.
func ResultTitle(raw string) string {
	nm := DisplayName(raw)
	if nm == DefaultName {
		return "Results"
	}
	return "Results for " + nm
}
