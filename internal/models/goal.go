package models

import "time"

// SavingsGoal tracks progress toward a target amount. CurrentAmount is a
// running total that must equal the sum of the contribution ledger at all
// times; every mutation updates both together.
type SavingsGoal struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	TargetAmount  float64            `json:"target_amount"`
	CurrentAmount float64            `json:"current_amount"`
	Deadline      string             `json:"deadline,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Currency      string             `json:"currency"`
	Contributions []GoalContribution `json:"contributions"`
}

// GoalContribution is one ledger entry: positive amounts are deposits,
// negative amounts are withdrawals.
type GoalContribution struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Note   string  `json:"note,omitempty"`
}

// ParsedDeadline returns the deadline as a time.Time, zero when unset or
// unparseable.
func (g *SavingsGoal) ParsedDeadline() time.Time {
	if g.Deadline == "" {
		return time.Time{}
	}
	d, err := time.Parse(DateFormat, g.Deadline)
	if err != nil {
		return time.Time{}
	}
	return d
}

// FindGoal returns the goal with the given id, or nil.
func (d *FinanceDocument) FindGoal(id string) *SavingsGoal {
	for i := range d.SavingsGoals {
		if d.SavingsGoals[i].ID == id {
			return &d.SavingsGoals[i]
		}
	}
	return nil
}
