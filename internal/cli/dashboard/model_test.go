package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/service"
	"github.com/alexanderramin/contractwatch/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	contracts []*domain.Contract
	listErr   error
	gets      []string
}

func (s *stubSource) List(_ context.Context, _ repository.ContractFilter) ([]*domain.Contract, error) {
	return s.contracts, s.listErr
}

func (s *stubSource) Get(_ context.Context, id string) (*service.ContractDetail, error) {
	s.gets = append(s.gets, id)
	for _, c := range s.contracts {
		if c.ContractID == id {
			return &service.ContractDetail{Contract: c}, nil
		}
	}
	return nil, errors.New("not found")
}

func scored(id, title string, health float64, risk domain.RiskLevel) *domain.Contract {
	return &domain.Contract{
		ContractID:         id,
		Title:              title,
		VendorName:         "Acme Paving",
		Status:             domain.ContractActive,
		OverallHealthScore: &health,
		RiskLevel:          risk,
	}
}

func newStub() *stubSource {
	return &stubSource{contracts: []*domain.Contract{
		scored("C1", "Road Resurfacing", 87.5, domain.RiskLow),
		scored("C2", "Bridge Repair", 69.5, domain.RiskMedium),
		scored("C3", "Transit Center", 46.1, domain.RiskHigh),
	}}
}

func TestDashboard_LoadsContracts(t *testing.T) {
	d := teatest.New(t, New(context.Background(), newStub()), teatest.WithSize(120, 40))

	view := d.PlainView()
	assert.Contains(t, view, "3 of 3 · risk: all")
	assert.Contains(t, view, "Road Resurfacing")
	assert.Contains(t, view, "Transit Center")
	assert.Contains(t, view, "46.1")
}

func TestDashboard_RiskFilterCycles(t *testing.T) {
	d := teatest.New(t, New(context.Background(), newStub()), teatest.WithSize(120, 40))

	d.Press("r")
	m := d.Model.(Model)
	assert.Equal(t, domain.RiskCritical, m.RiskFilter())
	assert.Contains(t, d.PlainView(), "No contracts match.")

	d.Press("r")
	m = d.Model.(Model)
	assert.Equal(t, domain.RiskHigh, m.RiskFilter())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "C3", m.Selected().ContractID)
	assert.Contains(t, d.PlainView(), "1 of 3 · risk: High")

	d.Press("r", "r", "r")
	m = d.Model.(Model)
	assert.Equal(t, domain.RiskLevel(""), m.RiskFilter())
	assert.Contains(t, d.PlainView(), "3 of 3")
}

func TestDashboard_OpensDetailAndReturns(t *testing.T) {
	src := newStub()
	d := teatest.New(t, New(context.Background(), src), teatest.WithSize(120, 40))

	d.Press("down")
	require.Equal(t, "C2", d.Model.(Model).Selected().ContractID)

	d.Press("enter")
	assert.Equal(t, []string{"C2"}, src.gets)
	assert.Contains(t, d.PlainView(), "BRIDGE REPAIR")
	assert.Contains(t, d.PlainView(), "ALERTS")

	d.Press("esc")
	assert.Contains(t, d.PlainView(), "3 of 3")
	assert.False(t, d.Quitting)
}

func TestDashboard_Quit(t *testing.T) {
	d := teatest.New(t, New(context.Background(), newStub()))
	d.Press("q")
	assert.True(t, d.Quitting)
}

func TestDashboard_ShowsLoadError(t *testing.T) {
	src := &stubSource{listErr: errors.New("database is locked")}
	d := teatest.New(t, New(context.Background(), src))
	assert.Contains(t, d.PlainView(), "Error: database is locked")
}

func TestDashboard_EnterOnEmptyTableIsNoop(t *testing.T) {
	src := &stubSource{}
	d := teatest.New(t, New(context.Background(), src))
	d.Press("enter")
	assert.Empty(t, src.gets)
	assert.Contains(t, d.PlainView(), "No contracts match.")
}
