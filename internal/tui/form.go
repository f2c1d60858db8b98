package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/tax"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// addForm is the modal add-record form for one tab. Field values are
// mirrored into the container's formState on every keystroke, so the form's
// transient state is inspectable (and cleared) like any other state.
type addForm struct {
	id     string
	title  string
	fields []formField
	focus  int
}

type formField struct {
	name  string
	label string
	input textinput.Model
}

func newFormInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 32
	return ti
}

// newAddForm returns the form for a tab, or false for tabs without one.
func newAddForm(tab model.Tab) (*addForm, bool) {
	mk := func(id, title string, fields ...formField) *addForm {
		f := &addForm{id: id, title: title, fields: fields}
		f.fields[0].input.Focus()
		return f
	}
	field := func(name, label, placeholder string) formField {
		return formField{name: name, label: label, input: newFormInput(placeholder)}
	}

	switch tab {
	case model.TabIncome:
		return mk("add-income", "Record income",
			field("client", "Client", "Acme Corp"),
			field("service", "Service", "consulting"),
			field("amount", "Amount", "$2,500.00"),
			field("date", "Date", "YYYY-MM-DD"),
		), true
	case model.TabExpenses:
		return mk("add-expense", "Record expense",
			field("category", "Category", "software"),
			field("description", "Description", "invoicing tool"),
			field("amount", "Amount", "$29.00"),
			field("date", "Date", "YYYY-MM-DD"),
			field("purpose", "Purpose", "client billing"),
		), true
	case model.TabMileage:
		return mk("add-trip", "Record trip",
			field("from", "From", "home office"),
			field("to", "To", "client site"),
			field("miles", "Miles", "12.5"),
			field("purpose", "Purpose", "project kickoff"),
			field("date", "Date", "YYYY-MM-DD"),
		), true
	case model.TabDeductions:
		return mk("add-utility", "Track utility",
			field("type", "Utility", "internet"),
			field("monthly", "Monthly bill", "$80.00"),
			field("percent", "Business %", "40"),
		), true
	case model.TabTaxes:
		return mk("add-payment", "Record payment",
			field("quarter", "Quarter", "Q1"),
			field("amount", "Amount", "$1,500.00"),
			field("date", "Date", "YYYY-MM-DD"),
			field("method", "Method", "EFTPS"),
		), true
	}
	return nil, false
}

func (f *addForm) value(name string) string {
	for i := range f.fields {
		if f.fields[i].name == name {
			return strings.TrimSpace(f.fields[i].input.Value())
		}
	}
	return ""
}

func (f *addForm) setFocus(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = (i + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

// updateForm routes a key to the open form. Submission and cancellation
// close the modal and clear the form's slice of formState.
func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.actions.CloseModal(f.id)
		m.actions.ClearForm(f.id)
		m.form = nil
		return m, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case "enter":
		if f.focus < len(f.fields)-1 {
			f.setFocus(f.focus + 1)
			return m, nil
		}
		if m.submitForm(f) {
			m.actions.CloseModal(f.id)
			m.actions.ClearForm(f.id)
			m.form = nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	m.actions.SetFormField(f.id, f.fields[f.focus].name, f.fields[f.focus].input.Value())
	return m, cmd
}

// submitForm validates and persists; returns false (with an error toast)
// when the input doesn't parse, keeping the form open for correction.
func (m appModel) submitForm(f *addForm) bool {
	ctx := context.Background()
	var err error

	switch f.id {
	case "add-income":
		err = m.submitIncome(ctx, f)
	case "add-expense":
		err = m.submitExpense(ctx, f)
	case "add-trip":
		err = m.submitTrip(ctx, f)
	case "add-utility":
		err = m.submitUtility(ctx, f)
	case "add-payment":
		err = m.submitPayment(ctx, f)
	}
	if err != nil {
		m.actions.Notify(model.NotifyError, err.Error())
		return false
	}
	m.reload()
	m.actions.Notify(model.NotifySuccess, "record added")
	return true
}

func (m appModel) submitIncome(ctx context.Context, f *addForm) error {
	cents, err := format.ParseMoney(f.value("amount"))
	if err != nil {
		return err
	}
	date, err := format.ParseDate(f.value("date"))
	if err != nil {
		return err
	}
	_, err = m.store.AddIncome(ctx, model.Income{
		Client:      f.value("client"),
		ServiceType: f.value("service"),
		AmountCents: cents,
		Date:        date,
	})
	return err
}

func (m appModel) submitExpense(ctx context.Context, f *addForm) error {
	cents, err := format.ParseMoney(f.value("amount"))
	if err != nil {
		return err
	}
	date, err := format.ParseDate(f.value("date"))
	if err != nil {
		return err
	}
	_, err = m.store.AddExpense(ctx, model.Expense{
		Category:        f.value("category"),
		Description:     f.value("description"),
		AmountCents:     cents,
		Date:            date,
		BusinessPurpose: f.value("purpose"),
	})
	return err
}

func (m appModel) submitTrip(ctx context.Context, f *addForm) error {
	miles, err := strconv.ParseFloat(f.value("miles"), 64)
	if err != nil || miles <= 0 {
		return fmt.Errorf("invalid miles %q", f.value("miles"))
	}
	date, err := format.ParseDate(f.value("date"))
	if err != nil {
		return err
	}
	_, err = m.store.AddTrip(ctx, model.Trip{
		StartLocation:   f.value("from"),
		Destination:     f.value("to"),
		Miles:           miles,
		BusinessPurpose: f.value("purpose"),
		Date:            date,
		DeductionCents:  tax.MileageDeduction(miles),
	})
	return err
}

func (m appModel) submitUtility(ctx context.Context, f *addForm) error {
	cents, err := format.ParseMoney(f.value("monthly"))
	if err != nil {
		return err
	}
	pct, err := format.ParsePercent(f.value("percent"))
	if err != nil {
		return err
	}
	monthly, annual := tax.UtilityDeduction(cents, pct)
	_, err = m.store.AddUtility(ctx, model.Utility{
		UtilityType:           f.value("type"),
		MonthlyAmountCents:    cents,
		BusinessPercent:       pct,
		MonthlyDeductionCents: monthly,
		AnnualDeductionCents:  annual,
	})
	return err
}

func (m appModel) submitPayment(ctx context.Context, f *addForm) error {
	q := strings.ToUpper(f.value("quarter"))
	switch q {
	case "Q1", "Q2", "Q3", "Q4":
	default:
		return fmt.Errorf("invalid quarter %q (expected Q1..Q4)", f.value("quarter"))
	}
	cents, err := format.ParseMoney(f.value("amount"))
	if err != nil {
		return err
	}
	date, err := format.ParseDate(f.value("date"))
	if err != nil {
		return err
	}
	_, err = m.store.AddTaxPayment(ctx, model.TaxPayment{
		Quarter:       q,
		AmountCents:   cents,
		PaymentDate:   date,
		PaymentMethod: f.value("method"),
	})
	return err
}

func (m appModel) viewForm() string {
	f := m.form
	var b strings.Builder
	b.WriteString(f.title + "\n\n")
	for i := range f.fields {
		fmt.Fprintf(&b, "%-12s %s\n", f.fields[i].label, f.fields[i].input.View())
	}
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("enter next/save · esc cancel"))

	box := styleModal().Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
