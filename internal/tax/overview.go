package tax

import (
	"sort"
	"time"

	"ledgerdesk/internal/model"
)

// Books is everything on record for the tax year, as loaded from the store.
type Books struct {
	Income     []model.Income
	Expenses   []model.Expense
	Trips      []model.Trip
	Utilities  []model.Utility
	HomeOffice *model.HomeOffice
	Settings   *model.TaxSettings
	Payments   []model.TaxPayment
	Goals      []model.SavingsGoal
}

// Transaction is one row of the overview's recent-activity feed.
type Transaction struct {
	Kind        string `json:"kind"` // "income" | "expense"
	Label       string `json:"label"`
	AmountCents int64  `json:"amountCents"`
	Date        string `json:"date"`
}

// Overview aggregates the books into the dashboard's headline numbers.
type Overview struct {
	TotalIncomeCents         int64         `json:"totalIncomeCents"`
	TotalExpensesCents       int64         `json:"totalExpensesCents"`
	MileageDeductionCents    int64         `json:"mileageDeductionCents"`
	HomeOfficeDeductionCents int64         `json:"homeOfficeDeductionCents"`
	UtilityDeductionCents    int64         `json:"utilityDeductionCents"`
	TotalDeductionsCents     int64         `json:"totalDeductionsCents"`
	NetProfitCents           int64         `json:"netProfitCents"`
	SelfEmploymentTaxCents   int64         `json:"selfEmploymentTaxCents"`
	IncomeTaxCents           int64         `json:"incomeTaxCents"`
	TotalTaxCents            int64         `json:"totalTaxCents"`
	PaidToDateCents          int64         `json:"paidToDateCents"`
	RecentTransactions       []Transaction `json:"recentTransactions"`
	Reminders                []Reminder    `json:"reminders"`
}

const recentTransactionLimit = 10

// BuildOverview computes the overview for the given books as of today.
func BuildOverview(b Books, today time.Time) Overview {
	var o Overview

	for _, in := range b.Income {
		o.TotalIncomeCents += in.AmountCents
	}
	for _, e := range b.Expenses {
		o.TotalExpensesCents += e.AmountCents
	}
	for _, t := range b.Trips {
		o.MileageDeductionCents += t.DeductionCents
	}
	for _, u := range b.Utilities {
		o.UtilityDeductionCents += u.AnnualDeductionCents
	}
	if b.HomeOffice != nil {
		o.HomeOfficeDeductionCents = b.HomeOffice.AnnualDeductionCents
	}

	o.TotalDeductionsCents = o.TotalExpensesCents + o.MileageDeductionCents +
		o.HomeOfficeDeductionCents + o.UtilityDeductionCents
	o.NetProfitCents = o.TotalIncomeCents - o.TotalDeductionsCents

	o.SelfEmploymentTaxCents = SelfEmploymentTax(o.NetProfitCents)
	if b.Settings != nil {
		o.IncomeTaxCents = EstimatedIncomeTax(o.NetProfitCents, b.Settings.OtherIncomeCents)
	}
	o.TotalTaxCents = o.SelfEmploymentTaxCents + o.IncomeTaxCents

	for _, p := range b.Payments {
		o.PaidToDateCents += p.AmountCents
	}

	o.RecentTransactions = recentTransactions(b)
	o.Reminders = Reminders(today)
	return o
}

// recentTransactions merges income and expenses, newest date first, capped.
func recentTransactions(b Books) []Transaction {
	all := make([]Transaction, 0, len(b.Income)+len(b.Expenses))
	for _, in := range b.Income {
		all = append(all, Transaction{Kind: "income", Label: in.Client, AmountCents: in.AmountCents, Date: in.Date})
	}
	for _, e := range b.Expenses {
		all = append(all, Transaction{Kind: "expense", Label: e.Description, AmountCents: e.AmountCents, Date: e.Date})
	}

	// Dates are YYYY-MM-DD, so string order is date order. Stable keeps the
	// income-before-expense ordering for same-day entries.
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date > all[j].Date })

	if len(all) > recentTransactionLimit {
		all = all[:recentTransactionLimit]
	}
	return all
}
