package domain

import (
	"math"
	"time"
)

type Milestone struct {
	MilestoneID     int64           `json:"milestone_id"`
	ContractID      string          `json:"contract_id"`
	MilestoneNumber int             `json:"milestone_number"`
	Title           string          `json:"title"`
	Status          MilestoneStatus `json:"status"`
	DueDate         string          `json:"due_date"`
	CompletedDate   string          `json:"completed_date"`
	PercentComplete float64         `json:"percent_complete"`
	PaymentAmount   float64         `json:"payment_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// MilestoneTiming classifies how a milestone contributes to performance.
type MilestoneTiming int

const (
	TimingNone MilestoneTiming = iota
	TimingOnTime
	TimingLate
	TimingOverdue
)

// Timing classifies the milestone. A completed milestone is late only when both
// dates parse and completion falls after the due date; anything else counts as
// on time.
func (m *Milestone) Timing() MilestoneTiming {
	switch m.Status {
	case MilestoneCompleted:
		if m.DueDate == "" || m.CompletedDate == "" {
			return TimingOnTime
		}
		due, okDue := ParseDay(m.DueDate)
		done, okDone := ParseDay(m.CompletedDate)
		if !okDue || !okDone {
			return TimingOnTime
		}
		if done.After(due) {
			return TimingLate
		}
		return TimingOnTime
	case MilestoneOverdue:
		return TimingOverdue
	default:
		return TimingNone
	}
}

// UpcomingMilestone is the next open milestone by due date.
type UpcomingMilestone struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
}

// MilestoneStats summarizes a contract's milestones as of one day.
type MilestoneStats struct {
	Total       int                `json:"total"`
	Completed   int                `json:"completed"`
	InProgress  int                `json:"in_progress"`
	Pending     int                `json:"pending"`
	Delayed     int                `json:"delayed"`
	Overdue     int                `json:"overdue"`
	AvgProgress float64            `json:"avg_progress"`
	Next        *UpcomingMilestone `json:"next_milestone"`
}

// SummarizeMilestones counts milestones by status and finds the overdue and
// next-due ones relative to today. Overdue means not completed with a due date
// before today, whatever the stored status says. Unparseable due dates are
// neither overdue nor upcoming.
func SummarizeMilestones(milestones []Milestone, today time.Time) MilestoneStats {
	var st MilestoneStats
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	var nextDue time.Time
	var progress float64

	for _, m := range milestones {
		st.Total++
		progress += m.PercentComplete
		switch m.Status {
		case MilestoneCompleted:
			st.Completed++
			continue
		case MilestoneInProgress:
			st.InProgress++
		case MilestonePending:
			st.Pending++
		case MilestoneDelayed:
			st.Delayed++
		}

		due, ok := ParseDay(m.DueDate)
		if !ok {
			continue
		}
		if due.Before(day) {
			st.Overdue++
			continue
		}
		if st.Next == nil || due.Before(nextDue) {
			nextDue = due
			st.Next = &UpcomingMilestone{Title: m.Title, DueDate: m.DueDate}
		}
	}
	if st.Total > 0 {
		st.AvgProgress = math.Round(progress/float64(st.Total)*10) / 10
	}
	return st
}
