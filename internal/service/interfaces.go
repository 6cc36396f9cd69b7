package service

import (
	"context"

	"github.com/alexanderramin/contractwatch/internal/benchmark"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/importer"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/scoring"
)

// ContractDetail is a contract scored against its current records, together
// with the records that back it.
type ContractDetail struct {
	Contract     *domain.Contract     `json:"contract"`
	Milestones   []domain.Milestone   `json:"milestones"`
	Payments     []domain.Payment     `json:"payments"`
	ChangeOrders []domain.ChangeOrder `json:"change_orders"`
	Issues       []domain.Issue       `json:"issues"`
	Alerts       []domain.Alert       `json:"alerts"`

	MilestoneStats domain.MilestoneStats `json:"milestone_stats"`
}

// MilestoneResult is a milestone after an edit together with its owning
// contract, rescored.
type MilestoneResult struct {
	Milestone *domain.Milestone `json:"milestone"`
	Contract  *domain.Contract  `json:"contract"`
}

type ContractService interface {
	List(ctx context.Context, filter repository.ContractFilter) ([]*domain.Contract, error)
	Get(ctx context.Context, id string) (*ContractDetail, error)
	RecordChangeOrder(ctx context.Context, co *domain.ChangeOrder) (*domain.Contract, error)
	UpdateContract(ctx context.Context, id string, ch ContractChanges) (*domain.Contract, error)
	Delete(ctx context.Context, id string) error

	AddMilestone(ctx context.Context, in importer.MilestoneImport) (*MilestoneResult, error)
	UpdateMilestone(ctx context.Context, id int64, ch MilestoneChanges) (*MilestoneResult, error)
	DeleteMilestone(ctx context.Context, id int64) (*MilestoneResult, error)
}

type ScoringService interface {
	RescoreAll(ctx context.Context) ([]*domain.Contract, error)
	RescoreContract(ctx context.Context, id string) (*domain.Contract, error)
}

// VendorScorecard is a vendor with its performance rollup.
type VendorScorecard struct {
	Vendor    *domain.Vendor        `json:"vendor"`
	Score     float64               `json:"score"`
	Metrics   scoring.VendorMetrics `json:"metrics"`
	Contracts []*domain.Contract    `json:"-"`
}

type VendorService interface {
	List(ctx context.Context) ([]VendorScorecard, error)
	Scorecard(ctx context.Context, vendorID string) (*VendorScorecard, error)
	Update(ctx context.Context, vendorID string, ch VendorChanges) (*domain.Vendor, error)
	Delete(ctx context.Context, vendorID string) error
}

// AlertRequest selects which alerts Generate returns and whether they are
// recorded as issues. An empty MinSeverity returns every alert.
type AlertRequest struct {
	Persist     bool
	MinSeverity domain.Severity
}

type AlertResult struct {
	Alerts    []domain.Alert `json:"alerts"`
	Persisted int            `json:"persisted"`
	Skipped   int            `json:"skipped_existing"`
}

type AlertService interface {
	Generate(ctx context.Context, req AlertRequest) (*AlertResult, error)
}

// BenchmarkReport is the health score together with the KPI values it was
// computed from.
type BenchmarkReport struct {
	Values    map[string]float64    `json:"values"`
	Estimated []string              `json:"estimated"`
	Health    benchmark.HealthScore `json:"health"`
}

type BenchmarkService interface {
	Evaluate(ctx context.Context, overrides map[string]float64, peers []float64) (*BenchmarkReport, error)
	Catalog() benchmark.Summary
}

// Overview aggregates portfolio-wide counts and totals.
type Overview struct {
	TotalContracts        int                      `json:"total_contracts"`
	ActiveContracts       int                      `json:"active_contracts"`
	TotalContractValue    float64                  `json:"total_contract_value"`
	TotalPaid             float64                  `json:"total_paid"`
	TotalVendors          int                      `json:"total_vendors"`
	OpenIssues            int                      `json:"open_issues"`
	CriticalIssues        int                      `json:"critical_issues"`
	TotalChangeOrders     int                      `json:"total_change_orders"`
	TotalChangeOrderValue float64                  `json:"total_change_order_value"`
	AvgHealthScore        float64                  `json:"avg_health_score"`
	RiskDistribution      map[domain.RiskLevel]int `json:"risk_distribution"`
}

type StatsService interface {
	Overview(ctx context.Context) (*Overview, error)
}

// ImportResult holds the outcome of a seed import.
type ImportResult struct {
	VendorCount      int `json:"vendors"`
	ContractCount    int `json:"contracts"`
	MilestoneCount   int `json:"milestones"`
	PaymentCount     int `json:"payments"`
	ChangeOrderCount int `json:"change_orders"`
}

type ImportService interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// ExportResult holds the row counts of a written workbook.
type ExportResult struct {
	Path      string `json:"path"`
	Contracts int    `json:"contracts"`
	Vendors   int    `json:"vendors"`
	Alerts    int    `json:"alerts"`
}

type ExportService interface {
	Export(ctx context.Context, path string) (*ExportResult, error)
}
