// Package command is the assistant-tool adapter: it maps named commands onto
// the engine layer and renders plain-text responses.
package command

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/services/analytics"
	"fintrack/internal/services/currency"
	"fintrack/internal/services/export"
	"fintrack/internal/services/goals"
	"fintrack/internal/services/ledger"
	"fintrack/internal/services/recurring"
	"fintrack/internal/services/store"
)

// Name identifies one command. The set is closed: Dispatch matches every
// member exhaustively and anything else is ErrUnknownCommand.
type Name string

const (
	AddTransaction    Name = "add_transaction"
	ListTransactions  Name = "list_transactions"
	DeleteTransaction Name = "delete_transaction"
	SetBudget         Name = "set_budget"
	ListBudgets       Name = "list_budgets"
	CreateGoal        Name = "create_goal"
	ContributeToGoal  Name = "contribute_to_goal"
	WithdrawFromGoal  Name = "withdraw_from_goal"
	ListGoals         Name = "list_goals"
	CreateRecurring   Name = "create_recurring"
	ListRecurring     Name = "list_recurring"
	ProcessRecurring  Name = "process_recurring"
	SpendingSummary   Name = "spending_summary"
	GetInsights       Name = "get_insights"
	ConvertCurrency   Name = "convert_currency"
	SetCurrency       Name = "set_currency"
	ExportCSV         Name = "export_csv"
)

// ErrUnknownCommand reports a command name outside the closed set.
var ErrUnknownCommand = fmt.Errorf("unknown command")

// Request is one command invocation with JSON-encoded arguments.
type Request struct {
	Name Name            `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Dispatcher executes commands against the finance document.
type Dispatcher struct {
	gateway *store.Gateway
	rates   *currency.Engine
}

// New creates a dispatcher over the given gateway and currency engine.
func New(g *store.Gateway, e *currency.Engine) *Dispatcher {
	return &Dispatcher{gateway: g, rates: e}
}

// Dispatch runs one command and returns its text response. Domain failures
// come back as errors for the caller to surface as an error turn.
func (d *Dispatcher) Dispatch(req Request) (string, error) {
	switch req.Name {
	case AddTransaction:
		return d.addTransaction(req.Args)
	case ListTransactions:
		return d.listTransactions(req.Args)
	case DeleteTransaction:
		return d.deleteTransaction(req.Args)
	case SetBudget:
		return d.setBudget(req.Args)
	case ListBudgets:
		return d.listBudgets()
	case CreateGoal:
		return d.createGoal(req.Args)
	case ContributeToGoal:
		return d.contributeToGoal(req.Args)
	case WithdrawFromGoal:
		return d.withdrawFromGoal(req.Args)
	case ListGoals:
		return d.listGoals()
	case CreateRecurring:
		return d.createRecurring(req.Args)
	case ListRecurring:
		return d.listRecurring()
	case ProcessRecurring:
		return d.processRecurring()
	case SpendingSummary:
		return d.spendingSummary()
	case GetInsights:
		return d.insights()
	case ConvertCurrency:
		return d.convertCurrency(req.Args)
	case SetCurrency:
		return d.setCurrency(req.Args)
	case ExportCSV:
		return d.exportCSV(req.Args)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, req.Name)
}

func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (d *Dispatcher) addTransaction(raw json.RawMessage) (string, error) {
	var args struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Date        string  `json:"date"`
		Type        string  `json:"type"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	tx, err := ledger.Add(doc, ledger.AddInput{
		Amount:      args.Amount,
		Category:    args.Category,
		Description: args.Description,
		Date:        args.Date,
		Type:        models.TransactionType(args.Type),
	})
	if err != nil {
		return "", err
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}

	return fmt.Sprintf("Added %s of $%.2f in %s (%s)", tx.Type, tx.Amount, tx.Category, tx.Date), nil
}

func (d *Dispatcher) listTransactions(raw json.RawMessage) (string, error) {
	var args struct {
		Category string `json:"category"`
		Month    string `json:"month"`
		Limit    int    `json:"limit"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	doc := d.gateway.Load()
	txs := ledger.List(doc, ledger.Filter{
		Category: args.Category,
		Month:    args.Month,
		Limit:    args.Limit,
	})
	if len(txs) == 0 {
		return "No transactions found", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d transaction(s):\n", len(txs))
	for _, t := range txs {
		sign := "+"
		if t.Type == models.Expense {
			sign = "-"
		}
		fmt.Fprintf(&b, "%s  %s$%.2f  %s  %s  [%s]\n", t.Date, sign, t.Amount, t.Category, t.Description, t.ID)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Dispatcher) deleteTransaction(raw json.RawMessage) (string, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	if err := ledger.Delete(doc, args.ID); err != nil {
		return "", err
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}
	return "Transaction deleted", nil
}

func (d *Dispatcher) setBudget(raw json.RawMessage) (string, error) {
	var args struct {
		Category       string  `json:"category"`
		Limit          float64 `json:"limit"`
		AlertThreshold float64 `json:"alert_threshold"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	budget, err := analytics.SetBudget(doc, args.Category, args.Limit, args.AlertThreshold)
	if err != nil {
		return "", err
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("Budget for %s set to $%.2f/month (alert at %.0f%%)",
		budget.Category, budget.Limit, budget.AlertThreshold), nil
}

func (d *Dispatcher) listBudgets() (string, error) {
	doc := d.gateway.Load()
	statuses := analytics.BudgetStatuses(doc)
	if len(statuses) == 0 {
		return "No budgets set", nil
	}

	var b strings.Builder
	b.WriteString("Budgets this month:\n")
	for _, s := range statuses {
		fmt.Fprintf(&b, "%s: $%.2f of $%.2f (%.0f%% used, $%.2f remaining)\n",
			s.Category, s.Spent, s.Limit, s.PercentUsed, s.Remaining)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Dispatcher) createGoal(raw json.RawMessage) (string, error) {
	var args struct {
		Name         string  `json:"name"`
		TargetAmount float64 `json:"target_amount"`
		Deadline     string  `json:"deadline"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	goal, err := goals.Create(doc, goals.CreateInput{
		Name:         args.Name,
		TargetAmount: args.TargetAmount,
		Deadline:     args.Deadline,
	})
	if err != nil {
		return "", err
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Created goal %q with target $%.2f", goal.Name, goal.TargetAmount)
	if goal.Deadline != "" {
		msg += " by " + goal.Deadline
	}
	return msg, nil
}

func (d *Dispatcher) contributeToGoal(raw json.RawMessage) (string, error) {
	var args struct {
		GoalID string  `json:"goal_id"`
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	goal, err := goals.Contribute(doc, args.GoalID, args.Amount, args.Note)
	if err != nil {
		return "", err
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added $%.2f to %q ($%.2f of $%.2f saved)",
		args.Amount, goal.Name, goal.CurrentAmount, goal.TargetAmount), nil
}

func (d *Dispatcher) withdrawFromGoal(raw json.RawMessage) (string, error) {
	var args struct {
		GoalID string  `json:"goal_id"`
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	goal, err := goals.Withdraw(doc, args.GoalID, args.Amount, args.Note)
	if err != nil {
		return "", err
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("Withdrew $%.2f from %q ($%.2f remaining)",
		args.Amount, goal.Name, goal.CurrentAmount), nil
}

func (d *Dispatcher) listGoals() (string, error) {
	doc := d.gateway.Load()
	progress := goals.WithProgress(doc)
	if len(progress) == 0 {
		return "No savings goals", nil
	}

	var b strings.Builder
	b.WriteString("Savings goals:\n")
	for _, p := range progress {
		fmt.Fprintf(&b, "%q: $%.2f of $%.2f (%.0f%%)", p.Name, p.CurrentAmount, p.TargetAmount, p.PercentComplete)
		if p.Deadline != "" {
			track := "behind schedule"
			if p.OnTrack {
				track = "on track"
			}
			fmt.Fprintf(&b, " due %s, %s", p.Deadline, track)
		}
		fmt.Fprintf(&b, " [%s]\n", p.ID)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Dispatcher) createRecurring(raw json.RawMessage) (string, error) {
	var args struct {
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Frequency   string  `json:"frequency"`
		StartDate   string  `json:"start_date"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	entry, err := recurring.Create(doc, recurring.CreateInput{
		Amount:      args.Amount,
		Type:        models.TransactionType(args.Type),
		Category:    args.Category,
		Description: args.Description,
		Frequency:   models.Frequency(args.Frequency),
		StartDate:   args.StartDate,
	})
	if err != nil {
		return "", err
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created %s recurring %s of $%.2f, next due %s",
		entry.Frequency, entry.Type, entry.Amount, entry.NextDue), nil
}

func (d *Dispatcher) listRecurring() (string, error) {
	doc := d.gateway.Load()
	if len(doc.RecurringTransactions) == 0 {
		return "No recurring transactions", nil
	}

	var b strings.Builder
	b.WriteString("Recurring transactions:\n")
	for _, r := range doc.RecurringTransactions {
		state := "active"
		if !r.Active {
			state = "paused"
		}
		fmt.Fprintf(&b, "%s $%.2f %s (%s), next due %s, %s [%s]\n",
			r.Frequency, r.Amount, r.Description, r.Category, r.NextDue, state, r.ID)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Dispatcher) processRecurring() (string, error) {
	doc := d.gateway.Load()
	result := recurring.Process(doc)
	if result.Count == 0 {
		return "No recurring transactions were due", nil
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("Processed %d recurring transaction(s)", result.Count), nil
}

func (d *Dispatcher) spendingSummary() (string, error) {
	doc := d.gateway.Load()
	analysis := analytics.AnalyzeSpending(doc)

	var b strings.Builder
	fmt.Fprintf(&b, "Spending for %s:\n", analysis.Month)
	fmt.Fprintf(&b, "Income: $%.2f, Expenses: $%.2f, Net: $%.2f\n",
		analysis.TotalIncome, analysis.TotalExpenses, analysis.NetSavings)
	if len(analysis.TopCategories) > 0 {
		b.WriteString("Top categories:\n")
		for _, c := range analysis.TopCategories {
			fmt.Fprintf(&b, "  %s: $%.2f\n", c.Category, c.Amount)
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Dispatcher) insights() (string, error) {
	doc := d.gateway.Load()
	insights := analytics.GenerateInsights(doc)
	if len(insights) == 0 {
		return "No insights for this month yet", nil
	}

	var b strings.Builder
	for _, in := range insights {
		fmt.Fprintf(&b, "[%s] %s\n", in.Type, renderMessage(in))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// renderMessage fills {n} placeholders with "$"-formatted amounts. This
// dollar formatting is presentation local to the command adapter.
func renderMessage(in models.Insight) string {
	msg := in.Message
	for i, amount := range in.Amounts {
		placeholder := fmt.Sprintf("{%d}", i)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("$%.2f", amount))
	}
	return msg
}

func (d *Dispatcher) convertCurrency(raw json.RawMessage) (string, error) {
	var args struct {
		Amount float64 `json:"amount"`
		From   string  `json:"from"`
		To     string  `json:"to"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}
	if args.From == "" || args.To == "" {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	table, refreshed := d.rates.RatesIfStale(doc)
	if refreshed {
		if err := d.gateway.Save(doc); err != nil {
			return "", err
		}
	}

	conv := currency.Convert(args.Amount, args.From, args.To, table)
	return fmt.Sprintf("%s = %s (rate %.4f)",
		currency.Format(args.Amount, args.From),
		currency.Format(conv.Amount, args.To),
		conv.Rate), nil
}

func (d *Dispatcher) setCurrency(raw json.RawMessage) (string, error) {
	var args struct {
		Currency string `json:"currency"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}

	doc := d.gateway.Load()
	if err := currency.SetDefaultCurrency(doc, args.Currency); err != nil {
		return "", err
	}
	if err := d.gateway.Save(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("Default currency set to %s", doc.DefaultCurrency), nil
}

func (d *Dispatcher) exportCSV(raw json.RawMessage) (string, error) {
	var args struct {
		View string `json:"view"`
		Year int    `json:"year"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", models.ErrInvalidInput
	}
	if args.Year == 0 {
		args.Year = time.Now().Year()
	}

	doc := d.gateway.Load()
	switch args.View {
	case "", "transactions":
		return export.Transactions(doc)
	case "monthly":
		return export.MonthlySummary(doc, args.Year)
	case "categories":
		return export.CategoryBreakdown(doc)
	case "tax":
		return export.TaxSummary(doc, args.Year)
	}
	return "", models.ErrInvalidInput
}
