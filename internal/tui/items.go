package tui

import (
	"fmt"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type incomeItem struct {
	rec model.Income
}

func (i incomeItem) FilterValue() string { return i.rec.Client }
func (i incomeItem) Title() string {
	return fmt.Sprintf("%s  %s", i.rec.Client, format.Money(i.rec.AmountCents))
}
func (i incomeItem) Description() string {
	d := i.rec.Date
	if i.rec.ServiceType != "" {
		d += "  " + i.rec.ServiceType
	}
	if i.rec.Expects1099 {
		d += "  1099"
	}
	return d
}

type expenseItem struct {
	rec model.Expense
}

func (i expenseItem) FilterValue() string { return i.rec.Description }
func (i expenseItem) Title() string {
	return fmt.Sprintf("%s  %s", i.rec.Description, format.Money(i.rec.AmountCents))
}
func (i expenseItem) Description() string {
	return fmt.Sprintf("%s  %s", i.rec.Date, i.rec.Category)
}

type tripItem struct {
	rec model.Trip
}

func (i tripItem) FilterValue() string { return i.rec.Destination }
func (i tripItem) Title() string {
	return fmt.Sprintf("%s → %s  %s", i.rec.StartLocation, i.rec.Destination, format.Miles(i.rec.Miles))
}
func (i tripItem) Description() string {
	return fmt.Sprintf("%s  deducts %s", i.rec.Date, format.Money(i.rec.DeductionCents))
}

type utilityItem struct {
	rec model.Utility
}

func (i utilityItem) FilterValue() string { return i.rec.UtilityType }
func (i utilityItem) Title() string {
	return fmt.Sprintf("%s  %s/mo at %s", i.rec.UtilityType, format.Money(i.rec.MonthlyAmountCents), format.Percent(i.rec.BusinessPercent))
}
func (i utilityItem) Description() string {
	return fmt.Sprintf("deducts %s/mo, %s/yr", format.Money(i.rec.MonthlyDeductionCents), format.Money(i.rec.AnnualDeductionCents))
}

type paymentItem struct {
	rec model.TaxPayment
}

func (i paymentItem) FilterValue() string { return i.rec.Quarter }
func (i paymentItem) Title() string {
	return fmt.Sprintf("%s  %s", i.rec.Quarter, format.Money(i.rec.AmountCents))
}
func (i paymentItem) Description() string {
	d := i.rec.PaymentDate
	if i.rec.PaymentMethod != "" {
		d += "  " + i.rec.PaymentMethod
	}
	return d
}

func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	// We render our own tab bar + status line, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; here ESC is "cancel".
	l.KeyMap.Quit.SetKeys("ctrl+c")
	return l
}
