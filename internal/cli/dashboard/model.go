package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/cli/formatter"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Source supplies freshly scored contracts. service.ContractService satisfies it.
type Source interface {
	List(ctx context.Context, filter repository.ContractFilter) ([]*domain.Contract, error)
	Get(ctx context.Context, id string) (*service.ContractDetail, error)
}

type contractsLoadedMsg struct {
	contracts []*domain.Contract
	err       error
}

type detailLoadedMsg struct {
	detail *service.ContractDetail
	err    error
}

// riskCycle is the order the risk filter steps through; "" shows everything.
var riskCycle = []domain.RiskLevel{"", domain.RiskCritical, domain.RiskHigh, domain.RiskMedium, domain.RiskLow}

const (
	defaultHeight = 15
	chromeLines   = 6
)

type keyMap struct {
	Open    key.Binding
	Back    key.Binding
	Risk    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Risk:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "risk filter")),
		Refresh: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is an interactive contract table with a per-contract detail pane.
type Model struct {
	ctx  context.Context
	src  Source
	keys keyMap
	help help.Model

	table     table.Model
	contracts []*domain.Contract
	visible   []*domain.Contract
	riskIdx   int

	detail  *service.ContractDetail
	loading bool
	err     error
}

// New builds a dashboard over src. Call Init (or run it in a tea.Program) to load.
func New(ctx context.Context, src Source) Model {
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(defaultHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(formatter.ColorHeader).Bold(true).BorderForeground(formatter.ColorDim)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorDim).Bold(false)
	t.SetStyles(styles)

	return Model{
		ctx:     ctx,
		src:     src,
		keys:    defaultKeys(),
		help:    help.New(),
		table:   t,
		loading: true,
	}
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Contract", Width: 14},
		{Title: "Title", Width: 30},
		{Title: "Vendor", Width: 22},
		{Title: "Status", Width: 10},
		{Title: "Health", Width: 7},
		{Title: "Risk", Width: 9},
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		contracts, err := src.List(ctx, repository.ContractFilter{})
		return contractsLoadedMsg{contracts: contracts, err: err}
	}
}

func (m Model) loadDetail(id string) tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		d, err := src.Get(ctx, id)
		return detailLoadedMsg{detail: d, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(3, msg.Height-chromeLines))
		m.help.Width = msg.Width
		return m, nil

	case contractsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.contracts = msg.contracts
			m.applyFilter()
		}
		return m, nil

	case detailLoadedMsg:
		m.err = msg.err
		m.detail = msg.detail
		return m, nil

	case tea.KeyMsg:
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.detail = nil
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		if c := m.Selected(); c != nil {
			return m, m.loadDetail(c.ContractID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Risk):
		m.riskIdx = (m.riskIdx + 1) % len(riskCycle)
		m.applyFilter()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.load()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) applyFilter() {
	risk := riskCycle[m.riskIdx]
	m.visible = nil
	for _, c := range m.contracts {
		if risk == "" || c.RiskLevel == risk {
			m.visible = append(m.visible, c)
		}
	}
	rows := make([]table.Row, 0, len(m.visible))
	for _, c := range m.visible {
		health := "-"
		if c.OverallHealthScore != nil {
			health = fmt.Sprintf("%.1f", *c.OverallHealthScore)
		}
		rows = append(rows, table.Row{
			c.DisplayID(), c.Title, c.VendorName, string(c.Status), health, string(c.RiskLevel),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Selected returns the contract under the cursor, or nil.
func (m Model) Selected() *domain.Contract {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	return m.visible[i]
}

// RiskFilter returns the active risk filter; empty means all tiers.
func (m Model) RiskFilter() domain.RiskLevel {
	return riskCycle[m.riskIdx]
}

func (m Model) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading contracts...")
	}

	var b strings.Builder
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n\n")
	}

	if m.detail != nil {
		b.WriteString(formatter.FormatContractDetail(m.detail))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Back}))
		return b.String()
	}

	filter := "all"
	if r := m.RiskFilter(); r != "" {
		filter = string(r)
	}
	b.WriteString(formatter.StyleHeader.Render("CONTRACTS"))
	b.WriteString(formatter.Dim(fmt.Sprintf("  %d of %d · risk: %s", len(m.visible), len(m.contracts), filter)))
	b.WriteString("\n\n")
	if len(m.visible) == 0 {
		b.WriteString(formatter.Dim("No contracts match.") + "\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Open, m.keys.Risk, m.keys.Refresh, m.keys.Quit}))
	return b.String()
}

// Run starts the dashboard on the terminal and blocks until the user quits.
func Run(ctx context.Context, src Source) error {
	_, err := tea.NewProgram(New(ctx, src), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
