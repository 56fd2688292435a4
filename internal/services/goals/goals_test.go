package goals

import (
	"testing"
	"time"

	"fintrack/internal/models"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newGoal(t *testing.T, doc *models.FinanceDocument, in CreateInput, created time.Time) *models.SavingsGoal {
	t.Helper()
	g, err := createAt(doc, in, created)
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return g
}

func ledgerSum(g *models.SavingsGoal) float64 {
	var sum float64
	for _, c := range g.Contributions {
		sum += c.Amount
	}
	return sum
}

func TestCreateGoal(t *testing.T) {
	doc := models.NewDocument()
	g := newGoal(t, doc, CreateInput{Name: "Emergency Fund", TargetAmount: 5000}, fixedNow)

	if g.CurrentAmount != 0 || len(g.Contributions) != 0 {
		t.Errorf("new goal = %+v, want zero balance and empty ledger", g)
	}
	if g.Currency != "USD" {
		t.Errorf("currency = %q, want document default USD", g.Currency)
	}
	if !g.CreatedAt.Equal(fixedNow) {
		t.Errorf("createdAt = %v, want %v", g.CreatedAt, fixedNow)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	doc := models.NewDocument()

	if _, err := createAt(doc, CreateInput{Name: "", TargetAmount: 100}, fixedNow); err != models.ErrInvalidInput {
		t.Errorf("blank name: err = %v, want ErrInvalidInput", err)
	}
	if _, err := createAt(doc, CreateInput{Name: "X", TargetAmount: 0}, fixedNow); err != models.ErrInvalidInput {
		t.Errorf("zero target: err = %v, want ErrInvalidInput", err)
	}
	if _, err := createAt(doc, CreateInput{Name: "X", TargetAmount: 100, Deadline: "soon"}, fixedNow); err != models.ErrInvalidInput {
		t.Errorf("bad deadline: err = %v, want ErrInvalidInput", err)
	}
}

// The running total must match the ledger sum after any mutation sequence.
func TestLedgerInvariantHolds(t *testing.T) {
	doc := models.NewDocument()
	g := newGoal(t, doc, CreateInput{Name: "Trip", TargetAmount: 2000}, fixedNow)

	steps := []struct {
		amount   float64
		withdraw bool
	}{
		{500, false}, {250, false}, {100, true}, {75.50, false}, {25.50, true},
	}
	for _, s := range steps {
		var err error
		if s.withdraw {
			_, err = withdrawAt(doc, g.ID, s.amount, "", fixedNow)
		} else {
			_, err = contributeAt(doc, g.ID, s.amount, "", fixedNow)
		}
		if err != nil {
			t.Fatalf("mutation %+v failed: %v", s, err)
		}
		if got, want := g.CurrentAmount, ledgerSum(g); got != want {
			t.Fatalf("after %+v: currentAmount %v != ledger sum %v", s, got, want)
		}
	}
	if g.CurrentAmount != 700 {
		t.Errorf("final balance = %v, want 700", g.CurrentAmount)
	}
}

func TestWithdrawRejectsOverdraw(t *testing.T) {
	doc := models.NewDocument()
	g := newGoal(t, doc, CreateInput{Name: "Trip", TargetAmount: 2000}, fixedNow)
	contributeAt(doc, g.ID, 100, "", fixedNow)

	_, err := withdrawAt(doc, g.ID, 100.01, "", fixedNow)
	if err != models.ErrInsufficientFunds {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if g.CurrentAmount != 100 || len(g.Contributions) != 1 {
		t.Errorf("failed withdrawal mutated the goal: %+v", g)
	}
}

func TestWithdrawDefaultNote(t *testing.T) {
	doc := models.NewDocument()
	g := newGoal(t, doc, CreateInput{Name: "Trip", TargetAmount: 2000}, fixedNow)
	contributeAt(doc, g.ID, 100, "", fixedNow)

	withdrawAt(doc, g.ID, 40, "", fixedNow)

	last := g.Contributions[len(g.Contributions)-1]
	if last.Note != "Withdrawal" {
		t.Errorf("note = %q, want Withdrawal", last.Note)
	}
	if last.Amount != -40 {
		t.Errorf("ledger amount = %v, want -40", last.Amount)
	}
}

func TestContributeUnknownGoal(t *testing.T) {
	doc := models.NewDocument()
	if _, err := contributeAt(doc, "missing", 10, "", fixedNow); err != models.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := withdrawAt(doc, "missing", 10, "", fixedNow); err != models.ErrNotFound {
		t.Errorf("withdraw err = %v, want ErrNotFound", err)
	}
}

func TestProgressNoDeadlineAlwaysOnTrack(t *testing.T) {
	doc := models.NewDocument()
	g := newGoal(t, doc, CreateInput{Name: "Someday", TargetAmount: 1000}, fixedNow.AddDate(0, -6, 0))
	contributeAt(doc, g.ID, 50, "", fixedNow)

	progress := progressAt(doc, fixedNow)
	if len(progress) != 1 {
		t.Fatalf("got %d progress entries, want 1", len(progress))
	}
	p := progress[0]
	if !p.OnTrack {
		t.Error("goal without deadline must be on track")
	}
	if p.ProjectedCompletion != "" {
		t.Errorf("projection = %q, want none", p.ProjectedCompletion)
	}
	if p.PercentComplete != 5 {
		t.Errorf("percentComplete = %v, want 5", p.PercentComplete)
	}
}

func TestProgressProjection(t *testing.T) {
	doc := models.NewDocument()
	// created 4 months ago, 400 saved -> 100/month average
	g := newGoal(t, doc, CreateInput{
		Name: "Laptop", TargetAmount: 1000, Deadline: "2027-06-15",
	}, fixedNow.AddDate(0, -4, 0))
	contributeAt(doc, g.ID, 400, "", fixedNow)

	p := progressAt(doc, fixedNow)[0]

	if p.AvgMonthlyContrib != 100 {
		t.Errorf("avg monthly = %v, want 100", p.AvgMonthlyContrib)
	}
	// 600 remaining at 100/month -> 6 months -> 2026-12-15
	if p.ProjectedCompletion != "2026-12-15" {
		t.Errorf("projected = %q, want 2026-12-15", p.ProjectedCompletion)
	}
	if !p.OnTrack {
		t.Error("projection before deadline must be on track")
	}
	if p.MonthsRemaining != 12 {
		t.Errorf("monthsRemaining = %d, want 12", p.MonthsRemaining)
	}
	if p.MonthlyNeeded != 50 {
		t.Errorf("monthlyNeeded = %v, want 50", p.MonthlyNeeded)
	}
}

func TestProgressBehindSchedule(t *testing.T) {
	doc := models.NewDocument()
	// 10/month average against 990 remaining in 2 months
	g := newGoal(t, doc, CreateInput{
		Name: "Laptop", TargetAmount: 1000, Deadline: "2026-08-15",
	}, fixedNow.AddDate(0, -1, 0))
	contributeAt(doc, g.ID, 10, "", fixedNow)

	p := progressAt(doc, fixedNow)[0]
	if p.OnTrack {
		t.Error("99 months of saving left, must not be on track")
	}
	if p.ProjectedCompletion == "" {
		t.Error("positive average should still produce a projection")
	}
}

func TestProgressZeroContributionsNotOnTrack(t *testing.T) {
	doc := models.NewDocument()
	newGoal(t, doc, CreateInput{
		Name: "Laptop", TargetAmount: 1000, Deadline: "2027-06-15",
	}, fixedNow.AddDate(0, -4, 0))

	p := progressAt(doc, fixedNow)[0]
	if p.OnTrack {
		t.Error("zero average contribution must not be on track")
	}
	if p.ProjectedCompletion != "" {
		t.Errorf("projection = %q, want none", p.ProjectedCompletion)
	}
}

func TestProgressDeadlineUnderOneMonthFloorsToOne(t *testing.T) {
	doc := models.NewDocument()
	g := newGoal(t, doc, CreateInput{
		Name: "Gift", TargetAmount: 300, Deadline: "2026-06-30",
	}, fixedNow.AddDate(0, -1, 0))
	contributeAt(doc, g.ID, 100, "", fixedNow)

	p := progressAt(doc, fixedNow)[0]
	if p.MonthsRemaining != 1 {
		t.Errorf("monthsRemaining = %d, want floor of 1", p.MonthsRemaining)
	}
	if p.MonthlyNeeded != 200 {
		t.Errorf("monthlyNeeded = %v, want 200", p.MonthlyNeeded)
	}
}

func TestSummarize(t *testing.T) {
	doc := models.NewDocument()
	a := newGoal(t, doc, CreateInput{Name: "A", TargetAmount: 1000}, fixedNow)
	b := newGoal(t, doc, CreateInput{Name: "B", TargetAmount: 500}, fixedNow)
	contributeAt(doc, a.ID, 250, "", fixedNow)
	contributeAt(doc, b.ID, 500, "", fixedNow)

	s := Summarize(doc)
	if s.TotalGoals != 2 || s.TotalTarget != 1500 || s.TotalSaved != 750 {
		t.Errorf("summary = %+v", s)
	}
	if s.OverallProgress != 50 {
		t.Errorf("overallProgress = %v, want 50", s.OverallProgress)
	}
	if s.CompletedGoals != 1 {
		t.Errorf("completedGoals = %d, want 1", s.CompletedGoals)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(models.NewDocument())
	if s.OverallProgress != 0 {
		t.Errorf("empty summary progress = %v, want 0", s.OverallProgress)
	}
}

func TestDeleteGoal(t *testing.T) {
	doc := models.NewDocument()
	g := newGoal(t, doc, CreateInput{Name: "Trip", TargetAmount: 2000}, fixedNow)

	if err := Delete(doc, g.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(doc.SavingsGoals) != 0 {
		t.Error("goal not removed")
	}
	if err := Delete(doc, g.ID); err != models.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
