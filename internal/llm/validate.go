package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas by Schema.Name.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler takes decoded JSON, not Go literals.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", s.Name, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", s.Name, err)
	}

	url := "schema://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", s.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}
	actual, _ := compiledSchemas.LoadOrStore(s.Name, compiled)
	return actual.(*jsonschema.Schema), nil
}

// unfence strips a surrounding Markdown code fence, which some models add
// around JSON even when asked for structured output.
func unfence(raw []byte) []byte {
	body := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(body, []byte("```")) {
		return body
	}
	nl := bytes.IndexByte(body, '\n')
	if nl < 0 {
		return body
	}
	body = bytes.TrimSpace(body[nl+1:])
	body = bytes.TrimSuffix(body, []byte("```"))
	return bytes.TrimSpace(body)
}

// checkStructured enforces the structured-output contract on resp. Plain
// text requests pass through. On success resp.Content holds the bare JSON.
func checkStructured(req Request, resp *Response) error {
	if req.Schema == nil {
		return nil
	}
	if resp.StopReason == StopMaxTokens {
		return &ErrMaxTokensExceeded{Content: resp.Content}
	}

	body := unfence(resp.Content)
	if len(body) == 0 {
		return &ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty response")}
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := req.Schema.compile()
	if err != nil {
		return &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("schema %s: %w", req.Schema.Name, err)}
	}

	resp.Content = json.RawMessage(body)
	return nil
}
