package benchmark

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnknownKPI indicates a KPI id that is not in the benchmark table.
	ErrUnknownKPI = errors.New("unknown KPI")

	// ErrUnknownCategory indicates a category id that is not in the table.
	ErrUnknownCategory = errors.New("unknown benchmark category")

	// ErrZeroBenchmark indicates a higher-is-better KPI whose benchmark is not
	// positive, so a proportional shortfall cannot be computed.
	ErrZeroBenchmark = errors.New("benchmark value must be positive")
)

// Rating buckets a 0-100 score.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
	RatingCritical  Rating = "Critical"
)

// IsStrength reports whether the rating counts as a strength.
func (r Rating) IsStrength() bool {
	return r == RatingExcellent || r == RatingGood
}

// NeedsImprovement reports whether the rating counts as an improvement area.
func (r Rating) NeedsImprovement() bool {
	return r == RatingPoor || r == RatingCritical
}

func rate(score float64) Rating {
	switch {
	case score >= 90:
		return RatingExcellent
	case score >= 75:
		return RatingGood
	case score >= 60:
		return RatingFair
	case score >= 40:
		return RatingPoor
	default:
		return RatingCritical
	}
}

// exceedBonus scales the bonus for beating a benchmark.
const exceedBonus = 0.1

const maintainRecommendation = "Maintain current performance. Consider documenting best practices."

type KPIScore struct {
	KPIID          string    `json:"kpi_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	ActualValue    float64   `json:"actual_value"`
	BenchmarkValue float64   `json:"benchmark_value"`
	Unit           string    `json:"unit"`
	Direction      Direction `json:"direction"`
	Score          float64   `json:"score"`
	Gap            float64   `json:"gap"`
	GapPercent     float64   `json:"gap_percent"`
	Rating         Rating    `json:"rating"`
	Recommendation string    `json:"recommendation"`
}

type CategoryScore struct {
	CategoryID       string     `json:"category_id"`
	CategoryName     string     `json:"category_name"`
	Score            float64    `json:"score"`
	KPIScores        []KPIScore `json:"kpi_scores"`
	Strengths        []string   `json:"strengths"`
	ImprovementAreas []string   `json:"improvement_areas"`
}

type PeerComparison struct {
	Rank        int     `json:"rank"`
	TotalPeers  int     `json:"total_peers"`
	Percentile  float64 `json:"percentile"`
	PeerAverage float64 `json:"peer_average"`
	PeerMedian  float64 `json:"peer_median"`
	VsAverage   float64 `json:"vs_average"`
}

type HealthScore struct {
	OverallScore         float64         `json:"overall_score"`
	Grade                string          `json:"grade"`
	Rating               Rating          `json:"rating"`
	CategoryScores       []CategoryScore `json:"category_scores"`
	TopStrengths         []string        `json:"top_strengths"`
	PriorityImprovements []string        `json:"priority_improvements"`
	PeerComparison       *PeerComparison `json:"peer_comparison,omitempty"`
	CalculatedAt         time.Time       `json:"calculated_at"`
}

// Engine scores KPI values against a fixed benchmark table. It is immutable
// after construction and safe for concurrent use.
type Engine struct {
	tables       Tables
	kpis         map[string]KPI
	categories   map[string]Category
	byCategory   map[string][]KPI
	importanceWt map[Importance]float64
	now          func() time.Time
}

type Option func(*Engine)

// WithNow overrides the clock used to stamp HealthScore.CalculatedAt.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(tables Tables, opts ...Option) *Engine {
	e := &Engine{
		tables:       tables,
		kpis:         make(map[string]KPI, len(tables.KPIs)),
		categories:   make(map[string]Category, len(tables.Categories)),
		byCategory:   make(map[string][]KPI, len(tables.Categories)),
		importanceWt: make(map[Importance]float64, len(tables.ImportanceWeights)),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, k := range tables.KPIs {
		e.kpis[k.ID] = k
		e.byCategory[k.Category] = append(e.byCategory[k.Category], k)
	}
	for _, c := range tables.Categories {
		e.categories[c.ID] = c
	}
	for imp, w := range tables.ImportanceWeights {
		e.importanceWt[imp] = w
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KPI looks up a benchmark definition.
func (e *Engine) KPI(id string) (KPI, bool) {
	k, ok := e.kpis[id]
	return k, ok
}

// ScoreKPI grades one actual value against its benchmark.
func (e *Engine) ScoreKPI(id string, actual float64) (KPIScore, error) {
	kpi, ok := e.kpis[id]
	if !ok {
		return KPIScore{}, fmt.Errorf("%w: %s", ErrUnknownKPI, id)
	}
	benchmark := kpi.Benchmark

	var gap, gapPct, score float64
	if kpi.Direction == LowerIsBetter {
		gap = benchmark - actual
		if benchmark > 0 {
			gapPct = gap / benchmark * 100
		}
		switch {
		case actual <= benchmark:
			score = math.Min(100, 100+gapPct*exceedBonus)
		case actual > 0:
			score = math.Max(0, benchmark/actual*100)
		}
	} else {
		gap = actual - benchmark
		if benchmark > 0 {
			gapPct = gap / benchmark * 100
		}
		if actual >= benchmark {
			score = math.Min(100, 100+gapPct*exceedBonus)
		} else {
			if benchmark <= 0 {
				return KPIScore{}, fmt.Errorf("%w: %s", ErrZeroBenchmark, id)
			}
			score = math.Max(0, actual/benchmark*100)
		}
	}

	rating := rate(score)
	return KPIScore{
		KPIID:          id,
		Name:           kpi.Name,
		Category:       kpi.Category,
		ActualValue:    actual,
		BenchmarkValue: benchmark,
		Unit:           kpi.Unit,
		Direction:      kpi.Direction,
		Score:          roundTo(score, 1),
		Gap:            roundTo(gap, 2),
		GapPercent:     roundTo(gapPct, 1),
		Rating:         rating,
		Recommendation: recommend(kpi, actual, rating),
	}, nil
}

func recommend(kpi KPI, actual float64, rating Rating) string {
	if rating.IsStrength() {
		return maintainRecommendation
	}
	unit := strings.ReplaceAll(kpi.Unit, "_", " ")
	if kpi.Direction == LowerIsBetter {
		return fmt.Sprintf("Reduce %s by %.1f %s to meet industry best practices.", kpi.Name, actual-kpi.Benchmark, unit)
	}
	gap := kpi.Benchmark - actual
	if strings.Contains(strings.ToLower(kpi.ID), "cycle_time") {
		return fmt.Sprintf("Reduce %s by %.1f %s to meet benchmark.", kpi.Name, gap, unit)
	}
	return fmt.Sprintf("Increase %s by %.1f%% to reach the industry benchmark of %s%%.",
		kpi.Name, gap, benchmarkText(kpi.Benchmark))
}

// benchmarkText prints a benchmark at its own precision with at least one
// decimal, so 76 reads "76.0" and 99.97 stays "99.97".
func benchmarkText(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ScoreCategory is the importance-weighted mean of the category's KPIs that
// appear in values. KPIs missing from values are left out, not defaulted.
func (e *Engine) ScoreCategory(categoryID string, values map[string]float64) (CategoryScore, error) {
	cat, ok := e.categories[categoryID]
	if !ok {
		return CategoryScore{}, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}

	out := CategoryScore{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
	}
	var weighted, total float64
	for _, kpi := range e.byCategory[categoryID] {
		actual, present := values[kpi.ID]
		if !present {
			continue
		}
		s, err := e.ScoreKPI(kpi.ID, actual)
		if err != nil {
			return CategoryScore{}, err
		}
		out.KPIScores = append(out.KPIScores, s)

		w, ok := e.importanceWt[kpi.Importance]
		if !ok {
			w = 1.0
		}
		weighted += s.Score * w
		total += w

		switch {
		case s.Rating.IsStrength():
			out.Strengths = append(out.Strengths, s.Name)
		case s.Rating.NeedsImprovement():
			out.ImprovementAreas = append(out.ImprovementAreas, s.Name)
		}
	}
	if total > 0 {
		out.Score = roundTo(weighted/total, 1)
	}
	return out, nil
}

const listLimit = 5

// HealthScore rolls every category into one graded score. Categories with no
// observed KPIs are excluded from the weighted average. peers, when non-empty,
// adds a peer comparison; the slice is not modified.
func (e *Engine) HealthScore(values map[string]float64, peers []float64) (HealthScore, error) {
	for id := range values {
		if _, ok := e.kpis[id]; !ok {
			return HealthScore{}, fmt.Errorf("%w: %s", ErrUnknownKPI, id)
		}
	}

	var (
		categoryScores []CategoryScore
		all            []KPIScore
		weighted       float64
		total          float64
	)
	for _, cat := range e.tables.Categories {
		cs, err := e.ScoreCategory(cat.ID, values)
		if err != nil {
			return HealthScore{}, err
		}
		categoryScores = append(categoryScores, cs)
		all = append(all, cs.KPIScores...)
		if len(cs.KPIScores) > 0 {
			weighted += cs.Score * cat.Weight
			total += cat.Weight
		}
	}

	var overall float64
	if total > 0 {
		overall = weighted / total
	}
	grade, rating := gradeFor(overall)

	sorted := make([]KPIScore, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	var strengths []string
	for i, s := range sorted {
		if i >= listLimit {
			break
		}
		if s.Rating.IsStrength() {
			strengths = append(strengths, fmt.Sprintf("%s: %.0f/100", s.Name, s.Score))
		}
	}
	var improvements []string
	for _, s := range sorted {
		if len(improvements) >= listLimit {
			break
		}
		if s.Rating.NeedsImprovement() {
			improvements = append(improvements, fmt.Sprintf("%s: %s", s.Name, s.Recommendation))
		}
	}

	return HealthScore{
		OverallScore:         roundTo(overall, 1),
		Grade:                grade,
		Rating:               rating,
		CategoryScores:       categoryScores,
		TopStrengths:         strengths,
		PriorityImprovements: improvements,
		PeerComparison:       ComparePeers(overall, peers),
		CalculatedAt:         e.now(),
	}, nil
}

func gradeFor(score float64) (string, Rating) {
	switch {
	case score >= 90:
		return "A", RatingExcellent
	case score >= 80:
		return "B", RatingGood
	case score >= 70:
		return "C", RatingFair
	case score >= 60:
		return "D", RatingPoor
	default:
		return "F", RatingCritical
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
