package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// armLen is the length of a horizontal arm in cells. Vertical arms use half
// as many rows so the cross looks square in a terminal grid.
const armLen = 8

const wordmark = `
 ██╗     ███████╗ ██████╗
 ██║     ██╔════╝██╔═══██╗
 ██║     ███████╗██║   ██║
 ██║     ╚════██║██║▄▄ ██║
 ███████╗███████║╚██████╔╝
 ╚══════╝╚══════╝ ╚══▀▀═╝`

const wordmarkWidth = 27

// renderWordmark falls back to spaced letters on narrow terminals.
func renderWordmark(width int) string {
	style := theme.Title
	if width < wordmarkWidth+2 {
		return style.Render("L S Q")
	}
	return style.Render(wordmark)
}

// arm styles one arm of the cross in its category colour, matching the
// orientation of the results diagram.
func arm(c questionnaire.Category, s string) string {
	return lipgloss.NewStyle().Foreground(theme.CategoryColor(c)).Render(s)
}

// renderCross draws the cross with n cells per horizontal arm. Labels
// appear at the arm ends once withLabels is set.
func renderCross(n int, withLabels bool) string {
	n = max(0, min(n, armLen))
	rows := armLen / 2
	visible := (n + 1) / 2
	pad := strings.Repeat(" ", armLen)

	vertical := func(c questionnaire.Category, on bool) string {
		if !on {
			return pad + " " + pad
		}
		return pad + arm(c, "│") + pad
	}

	var lines []string
	if withLabels {
		lines = append(lines, center(questionnaire.Activist))
	}
	for r := rows; r > 0; r-- {
		lines = append(lines, vertical(questionnaire.Activist, r <= visible))
	}

	gap := strings.Repeat(" ", armLen-n)
	mid := gap + arm(questionnaire.Reflector, strings.Repeat("─", n)) +
		theme.Body.Render("●") +
		arm(questionnaire.Pragmatist, strings.Repeat("─", n)) + gap
	if withLabels {
		mid = arm(questionnaire.Reflector, questionnaire.Reflector.Label()) + " " + mid + " " +
			arm(questionnaire.Pragmatist, questionnaire.Pragmatist.Label())
	}
	lines = append(lines, mid)

	for r := 1; r <= rows; r++ {
		lines = append(lines, vertical(questionnaire.Theorist, r <= visible))
	}
	if withLabels {
		lines = append(lines, center(questionnaire.Theorist))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func center(c questionnaire.Category) string {
	return arm(c, c.Label())
}
