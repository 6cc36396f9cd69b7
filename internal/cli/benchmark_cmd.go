package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// parseKPIValues turns repeated id=value flags into a map.
func parseKPIValues(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid --kpi format %q, expected id=value", p)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --kpi value %q: %w", p, err)
		}
		out[strings.TrimSpace(parts[0])] = v
	}
	return out, nil
}

func newBenchmarkCmd(app *App) *cobra.Command {
	var kpis []string
	var peers []float64

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Score procurement KPIs against industry benchmarks",
		Long: `Estimates the KPIs that can be derived from stored contracts, payments and
vendors, merges explicit --kpi values over them, and scores the result
against the top-quartile benchmark table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseKPIValues(kpis)
			if err != nil {
				return err
			}
			report, err := app.Benchmarks.Evaluate(cmd.Context(), overrides, peers)
			if err != nil {
				return err
			}
			return render(cmd, report, func() string {
				return formatter.FormatBenchmarkReport(report)
			})
		},
	}

	cmd.Flags().StringArrayVar(&kpis, "kpi", nil, "KPI value as id=value (repeatable)")
	cmd.Flags().Float64SliceVar(&peers, "peer", nil, "Peer overall scores for ranking (repeatable or comma-separated)")

	cmd.AddCommand(newBenchmarkCatalogCmd(app))

	return cmd
}

func newBenchmarkCatalogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List benchmark KPIs by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := app.Benchmarks.Catalog()
			return render(cmd, catalog, func() string {
				return formatter.FormatBenchmarkCatalog(catalog)
			})
		},
	}
}
