package export

import (
	"errors"
	"fmt"
)

// Pipeline stages reported by Error.
const (
	StageDiagram = "diagram"
	StageCompose = "compose"
	StageEncode  = "encode"
	StageWrite   = "write"
)

// ErrEmptyOutput is returned when an encoder produced no bytes.
var ErrEmptyOutput = errors.New("encoder produced no data")

// Error reports the pipeline stage at which an export failed.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	var ee *Error
	if errors.As(err, &ee) {
		return err
	}
	return &Error{Stage: stage, Err: err}
}
