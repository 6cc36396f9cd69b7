package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Money renders a dollar amount with thousands separators and cents.
func Money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// MoneyPtr renders an optional amount, or a dash when unset.
func MoneyPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return Money(*v)
}

// ScorePtr renders an optional score with band coloring, or a dash when unset.
func ScorePtr(v *float64) string {
	if v == nil {
		return Dim("-")
	}
	return ScoreColor(*v)
}

func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// OrDash returns s, or a dim dash when s is empty.
func OrDash(s string) string {
	if s == "" {
		return Dim("-")
	}
	return s
}

// Truncate shortens s to n visible runes, ending with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
