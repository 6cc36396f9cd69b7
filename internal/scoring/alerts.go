package scoring

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/contractwatch/internal/config"
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// Rule identifiers.
const (
	RuleCostOverrunWarning    = "cost_overrun_warning"
	RuleCostOverrunCritical   = "cost_overrun_critical"
	RuleScheduleDelayWarning  = "schedule_delay_warning"
	RuleScheduleDelayCritical = "schedule_delay_critical"
	RuleExpiringSoon          = "expiring_soon"
	RuleInsuranceNotVerified  = "insurance_expired"
	RuleLowHealthScore        = "low_health_score"
	RuleMultipleChangeOrders  = "multiple_change_orders"
	RuleNoActivity            = "no_activity"
)

// Predicate reports whether a rule fires for the contract at the given instant.
type Predicate func(c *domain.Contract, now time.Time) (bool, error)

// AlertRule is one row of the alert table.
type AlertRule struct {
	ID        string
	Name      string
	Severity  domain.Severity
	Predicate Predicate
}

// DefaultAlertRules returns the built-in rule table in evaluation order.
func DefaultAlertRules(cfg config.Scoring) []AlertRule {
	limits := cfg.Alerts
	return []AlertRule{
		{RuleCostOverrunWarning, "Cost Overrun Warning", domain.SeverityHigh, costOverrun(10, 20)},
		{RuleCostOverrunCritical, "Critical Cost Overrun", domain.SeverityCritical, costOverrunAtLeast(20)},
		{RuleScheduleDelayWarning, "Schedule Delay Warning", domain.SeverityMedium, scheduleDelay(10, 20)},
		{RuleScheduleDelayCritical, "Critical Schedule Delay", domain.SeverityHigh, scheduleDelayAtLeast(20)},
		{RuleExpiringSoon, "Contract Expiring Soon", domain.SeverityMedium, expiringWithin(limits.ExpiringWithinDays)},
		{RuleInsuranceNotVerified, "Insurance Not Verified", domain.SeverityHigh, insuranceNotVerified},
		{RuleLowHealthScore, "Low Health Score", domain.SeverityHigh, healthBelow(limits.LowHealthBelow)},
		{RuleMultipleChangeOrders, "Excessive Change Orders", domain.SeverityMedium, changeOrdersAtLeast(limits.ChangeOrderLimit)},
		{RuleNoActivity, "No Recent Activity", domain.SeverityLow, inactiveFor(limits.InactiveAfterDays)},
	}
}

// costOverrun fires when variance is in [min, max).
func costOverrun(min, max float64) Predicate {
	return func(c *domain.Contract, _ time.Time) (bool, error) {
		pct, ok := CostVariancePct(c)
		return ok && pct >= min && pct < max, nil
	}
}

// costOverrunAtLeast has no upper bound so extreme overruns keep matching.
func costOverrunAtLeast(min float64) Predicate {
	return func(c *domain.Contract, _ time.Time) (bool, error) {
		pct, ok := CostVariancePct(c)
		return ok && pct >= min, nil
	}
}

func scheduleDelay(min, max float64) Predicate {
	return func(c *domain.Contract, _ time.Time) (bool, error) {
		pct, ok := ScheduleExtensionPct(c)
		return ok && pct >= min && pct < max, nil
	}
}

func scheduleDelayAtLeast(min float64) Predicate {
	return func(c *domain.Contract, _ time.Time) (bool, error) {
		pct, ok := ScheduleExtensionPct(c)
		return ok && pct >= min, nil
	}
}

// expiringWithin fires when the effective end date is 1..days whole days away.
// An unparseable end date never fires, like the schedule rules.
func expiringWithin(days int) Predicate {
	return func(c *domain.Contract, now time.Time) (bool, error) {
		end := c.EffectiveEndDate()
		if end == "" {
			return false, nil
		}
		endDay, ok := domain.ParseDay(end)
		if !ok {
			return false, nil
		}
		until := daysBetween(now, endDay)
		return until > 0 && until <= days, nil
	}
}

func insuranceNotVerified(c *domain.Contract, _ time.Time) (bool, error) {
	return c.RequiresInsurance && !c.InsuranceVerified, nil
}

// healthBelow treats a missing health score as healthy.
func healthBelow(threshold float64) Predicate {
	return func(c *domain.Contract, _ time.Time) (bool, error) {
		return c.HealthOr(100) < threshold, nil
	}
}

func changeOrdersAtLeast(n int) Predicate {
	return func(c *domain.Contract, _ time.Time) (bool, error) {
		return c.ChangeOrderCount >= n, nil
	}
}

func inactiveFor(days int) Predicate {
	return func(c *domain.Contract, now time.Time) (bool, error) {
		if c.UpdatedAt == nil {
			return false, nil
		}
		return c.IsActive() && daysBetween(*c.UpdatedAt, now) > days, nil
	}
}

// AlertGenerator evaluates a rule table against contracts.
type AlertGenerator struct {
	rules  []AlertRule
	clock  Clock
	logger *slog.Logger
}

// NewAlertGenerator creates a generator over rules. A nil clock uses the
// system clock and a nil logger discards rule failures.
func NewAlertGenerator(rules []AlertRule, clock Clock, logger *slog.Logger) *AlertGenerator {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AlertGenerator{rules: rules, clock: clock, logger: logger}
}

// Now reads the generator's clock, so callers that report alongside alerts
// share its notion of today.
func (g *AlertGenerator) Now() time.Time {
	return g.clock.Now()
}

// Rules returns the generator's rule table.
func (g *AlertGenerator) Rules() []AlertRule {
	return g.rules
}

// Generate returns one alert per (contract, rule) hit, ordered by severity.
// Alerts of equal severity keep contract order, then rule order. A failing
// predicate is logged and skipped without affecting other rules or contracts.
func (g *AlertGenerator) Generate(contracts []*domain.Contract) []domain.Alert {
	now := g.clock.Now()
	var alerts []domain.Alert

	for _, c := range contracts {
		for _, rule := range g.rules {
			hit, err := evaluate(rule, c, now)
			if err != nil {
				g.logger.Error("alert_rule_failed",
					"rule", rule.ID,
					"contract_id", c.ContractID,
					"error", err.Error(),
				)
				continue
			}
			if !hit {
				continue
			}
			alerts = append(alerts, domain.Alert{
				AlertID:       c.ContractID + "_" + rule.ID,
				ContractID:    c.ContractID,
				ContractTitle: c.Title,
				VendorName:    c.VendorName,
				AlertType:     rule.ID,
				Title:         rule.Name,
				Severity:      rule.Severity,
				GeneratedAt:   now,
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() < alerts[j].Severity.Rank()
	})
	return alerts
}

// evaluate runs one predicate, converting a panic into an error.
func evaluate(rule AlertRule, c *domain.Contract, now time.Time) (hit bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			hit = false
			err = fmt.Errorf("rule %s panicked: %v", rule.ID, p)
		}
	}()
	return rule.Predicate(c, now)
}
