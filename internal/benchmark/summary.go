package benchmark

type KPISummary struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Benchmark   float64    `json:"benchmark"`
	Unit        string     `json:"unit"`
	Direction   Direction  `json:"direction"`
	Importance  Importance `json:"importance"`
	Description string     `json:"description"`
}

type CategorySummary struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	KPICount int          `json:"kpi_count"`
	KPIs     []KPISummary `json:"kpis"`
}

type Summary struct {
	TotalKPIs  int               `json:"total_kpis"`
	Categories []CategorySummary `json:"categories"`
}

// Summary lists every benchmark grouped by category, in table order.
func (e *Engine) Summary() Summary {
	out := Summary{TotalKPIs: len(e.tables.KPIs)}
	for _, cat := range e.tables.Categories {
		cs := CategorySummary{ID: cat.ID, Name: cat.Name}
		for _, k := range e.byCategory[cat.ID] {
			imp := k.Importance
			if imp == "" {
				imp = ImportanceMedium
			}
			cs.KPIs = append(cs.KPIs, KPISummary{
				ID:          k.ID,
				Name:        k.Name,
				Benchmark:   k.Benchmark,
				Unit:        k.Unit,
				Direction:   k.Direction,
				Importance:  imp,
				Description: k.Description,
			})
		}
		cs.KPICount = len(cs.KPIs)
		out.Categories = append(out.Categories, cs)
	}
	return out
}
