package scoring

import (
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// CostVariancePct returns (current - original) / original * 100. The second
// return is false when there is no positive original amount to compare against.
func CostVariancePct(c *domain.Contract) (float64, bool) {
	original := c.Original()
	if original <= 0 {
		return 0, false
	}
	return (c.Current() - original) / original * 100, true
}

// ScheduleExtensionPct returns the end-date extension as a percentage of the
// original duration. The second return is false when start or original end is
// missing or unparseable, or the original duration is not positive.
func ScheduleExtensionPct(c *domain.Contract) (float64, bool) {
	if c.OriginalEndDate == "" || c.StartDate == "" {
		return 0, false
	}
	originalEnd, ok := domain.ParseDay(c.OriginalEndDate)
	if !ok {
		return 0, false
	}
	currentEnd, ok := domain.ParseDay(c.EffectiveEndDate())
	if !ok {
		return 0, false
	}
	start, ok := domain.ParseDay(c.StartDate)
	if !ok {
		return 0, false
	}

	originalDuration := daysBetween(start, originalEnd)
	if originalDuration <= 0 {
		return 0, false
	}
	extension := daysBetween(originalEnd, currentEnd)
	return float64(extension) / float64(originalDuration) * 100, true
}
