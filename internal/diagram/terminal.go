package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

// Terminal grid: the horizontal arms use one column per point and the
// vertical arms one row per two points, which roughly keeps the cross
// square in a terminal cell grid.
const (
	termArmCols = AxisMax
	termArmRows = AxisMax / 2
	termSide    = 14
)

// TerminalLines draws the cross as plain text. Labels sit in fixed
// columns beside and above/below the grid, so long names or large scores
// never shift the axes.
func TerminalLines(snap scoring.Snapshot) []string {
	gridW := 2*termArmCols + 1
	gridH := 2*termArmRows + 1
	cx, cy := termArmCols, termArmRows

	grid := make([][]rune, gridH)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", gridW))
		grid[y][cx] = '│'
	}
	for x := 0; x < gridW; x++ {
		grid[cy][x] = '─'
		if x != cx && (x-cx)%5 == 0 {
			grid[cy][x] = '┼'
		}
	}
	for y := 0; y < gridH; y++ {
		if y != cy && (y-cy)%5 == 0 {
			grid[y][cx] = '┼'
		}
	}
	grid[cy][cx] = '●'

	mark := func(x, y int) { grid[y][x] = '◆' }
	if v := clampScore(snap.Of(questionnaire.Activist)); v > 0 {
		mark(cx, cy-(v+1)/2)
	}
	if v := clampScore(snap.Of(questionnaire.Theorist)); v > 0 {
		mark(cx, cy+(v+1)/2)
	}
	if v := clampScore(snap.Of(questionnaire.Reflector)); v > 0 {
		mark(cx-v, cy)
	}
	if v := clampScore(snap.Of(questionnaire.Pragmatist)); v > 0 {
		mark(cx+v, cy)
	}

	totalW := termSide + gridW + termSide
	var lines []string
	lines = append(lines, center(labelText(questionnaire.Activist, snap), totalW), "")
	for y, row := range grid {
		left, right := strings.Repeat(" ", termSide), strings.Repeat(" ", termSide)
		switch y {
		case cy - 1:
			left = padRight(questionnaire.Reflector.Label(), termSide)
			right = padLeft(questionnaire.Pragmatist.Label(), termSide)
		case cy + 1:
			left = padRight(fmt.Sprint(snap.Of(questionnaire.Reflector)), termSide)
			right = padLeft(fmt.Sprint(snap.Of(questionnaire.Pragmatist)), termSide)
		}
		lines = append(lines, left+string(row)+right)
	}
	lines = append(lines, "", center(labelText(questionnaire.Theorist, snap), totalW))
	return lines
}

// Terminal joins TerminalLines with newlines.
func Terminal(snap scoring.Snapshot) string {
	return strings.Join(TerminalLines(snap), "\n")
}

func labelText(c questionnaire.Category, snap scoring.Snapshot) string {
	return fmt.Sprintf("%s %d", c.Label(), snap.Of(c))
}

func center(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	left := (w - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-n-left)
}

func padRight(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return string([]rune(s)[:w])
	}
	return s + strings.Repeat(" ", w-n)
}

func padLeft(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return string([]rune(s)[:w])
	}
	return strings.Repeat(" ", w-n) + s
}
