package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/somdipdey/Learning-Styles/internal/clipboard"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

func snapshot(a, r, th, p, ticked int) scoring.Snapshot {
	return scoring.Snapshot{
		Totals: map[questionnaire.Category]int{
			questionnaire.Activist:   a,
			questionnaire.Reflector:  r,
			questionnaire.Theorist:   th,
			questionnaire.Pragmatist: p,
		},
		Ticked: ticked,
		Items:  80,
	}
}

func TestBuild(t *testing.T) {
	got := Build("Sam", snapshot(12, 7, 15, 3, 37))
	lines := strings.Split(got, "\n")

	assert.Len(t, lines, 19)
	assert.Equal(t, preamble[0], lines[0])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "Name: Sam", lines[4])
	assert.Equal(t, "Scores (out of 20 each):", lines[5])
	assert.Equal(t, []string{
		"- Activist: 12",
		"- Reflector: 7",
		"- Theorist: 15",
		"- Pragmatist: 3",
	}, lines[6:10])
	assert.Equal(t, "Items ticked: 37 / 80", lines[11])
	assert.Equal(t, "Please do the following:", lines[13])
	assert.Equal(t, requests, lines[13+1:])
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestBuild_DefaultName(t *testing.T) {
	got := Build("   ", snapshot(0, 0, 0, 0, 0))
	assert.Contains(t, got, "\nName: Anonymous\n")
	assert.Contains(t, got, "Items ticked: 0 / 80")
}

type writerFunc func(ctx context.Context, text string) (clipboard.Method, error)

func (f writerFunc) WriteText(ctx context.Context, text string) (clipboard.Method, error) {
	return f(ctx, text)
}

func TestCopy(t *testing.T) {
	var copied string
	ok := writerFunc(func(_ context.Context, s string) (clipboard.Method, error) {
		copied = s
		return clipboard.MethodSystem, nil
	})
	res := Copy(context.Background(), ok, "prompt text")
	assert.True(t, res.Copied)
	assert.Equal(t, "prompt text", copied)
	assert.True(t, strings.HasPrefix(res.StatusMessage(), "Copied the prompt"))

	osc := writerFunc(func(context.Context, string) (clipboard.Method, error) {
		return clipboard.MethodOSC52, nil
	})
	res = Copy(context.Background(), osc, "x")
	assert.Contains(t, res.StatusMessage(), "terminal clipboard")

	blocked := writerFunc(func(context.Context, string) (clipboard.Method, error) {
		return "", &clipboard.Error{Errs: []error{errors.New("denied")}}
	})
	res = Copy(context.Background(), blocked, "x")
	assert.False(t, res.Copied)
	assert.Error(t, res.Err)
	assert.True(t, strings.HasPrefix(res.StatusMessage(), "Clipboard copy was blocked"))

	res = Copy(context.Background(), nil, "x")
	assert.False(t, res.Copied)
}
