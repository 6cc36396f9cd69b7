package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/benchmark"
	"github.com/alexanderramin/contractwatch/internal/service"
)

// RatingColor maps a benchmark rating onto the risk palette.
func RatingColor(r benchmark.Rating) string {
	switch r {
	case benchmark.RatingExcellent, benchmark.RatingGood:
		return StyleGreen.Render(string(r))
	case benchmark.RatingFair:
		return StyleYellow.Render(string(r))
	case benchmark.RatingPoor:
		return StyleOrange.Render(string(r))
	default:
		return StyleRed.Render(string(r))
	}
}

// FormatBenchmarkReport renders the procurement health score with per-category
// and per-KPI detail.
func FormatBenchmarkReport(r *service.BenchmarkReport) string {
	h := r.Health
	var b strings.Builder

	pairs := [][2]string{
		{"Overall", ScoreColor(h.OverallScore)},
		{"Grade", Bold(h.Grade)},
		{"Rating", RatingColor(h.Rating)},
	}
	if pc := h.PeerComparison; pc != nil {
		pairs = append(pairs,
			[2]string{"Peer rank", fmt.Sprintf("%d of %d (%.1f percentile)", pc.Rank, pc.TotalPeers, pc.Percentile)},
			[2]string{"Peer average", fmt.Sprintf("%.1f (%+.1f)", pc.PeerAverage, pc.VsAverage)},
		)
	}
	b.WriteString(RenderBox("Procurement Health", RenderKV(pairs)))
	b.WriteString("\n")

	if len(r.Estimated) > 0 {
		b.WriteString(Dim("Estimated from records: "+strings.Join(r.Estimated, ", ")) + "\n")
	}

	for _, cat := range h.CategoryScores {
		b.WriteString("\n")
		b.WriteString(Header(cat.CategoryName))
		b.WriteString("\n")
		rows := make([][]string, 0, len(cat.KPIScores))
		for _, k := range cat.KPIScores {
			rows = append(rows, []string{
				k.Name,
				fmt.Sprintf("%.1f%s", k.ActualValue, unitSuffix(k.Unit)),
				fmt.Sprintf("%.1f%s", k.BenchmarkValue, unitSuffix(k.Unit)),
				ScoreColor(k.Score),
				RatingColor(k.Rating),
			})
		}
		b.WriteString(RenderTable([]string{"KPI", "ACTUAL", "BENCHMARK", "SCORE", "RATING"}, rows))
		b.WriteString(fmt.Sprintf("Category score %s\n", ScoreColor(cat.Score)))
	}

	if len(h.TopStrengths) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Strengths"))
		b.WriteString("\n")
		for _, s := range h.TopStrengths {
			b.WriteString(StyleGreen.Render("+ ") + s + "\n")
		}
	}
	if len(h.PriorityImprovements) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Priority Improvements"))
		b.WriteString("\n")
		for _, s := range h.PriorityImprovements {
			b.WriteString(StyleOrange.Render("! ") + s + "\n")
		}
	}
	return b.String()
}

// FormatBenchmarkCatalog lists every benchmark KPI by category.
func FormatBenchmarkCatalog(s benchmark.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d KPIs in %d categories\n", s.TotalKPIs, len(s.Categories)))
	for _, cat := range s.Categories {
		b.WriteString("\n")
		b.WriteString(Header(cat.Name))
		b.WriteString("\n")
		rows := make([][]string, 0, len(cat.KPIs))
		for _, k := range cat.KPIs {
			rows = append(rows, []string{
				k.ID,
				k.Name,
				fmt.Sprintf("%.1f%s", k.Benchmark, unitSuffix(k.Unit)),
				string(k.Direction),
				string(k.Importance),
			})
		}
		b.WriteString(RenderTable([]string{"ID", "NAME", "TARGET", "DIRECTION", "IMPORTANCE"}, rows))
	}
	return b.String()
}

func unitSuffix(unit string) string {
	switch unit {
	case "":
		return ""
	case "%":
		return "%"
	default:
		return " " + unit
	}
}
