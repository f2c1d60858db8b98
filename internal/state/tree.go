package state

import "ledgerdesk/internal/model"

// Top-level keys of the state tree. Every key is always present in the tree
// (never partially initialized); use these constants instead of raw strings.
const (
	KeyActiveTab          = "activeTab"
	KeyLoading            = "loading"
	KeySelectedRecordID   = "selectedRecordId"
	KeySelectedRecordType = "selectedRecordType"
	KeyHomeOfficeMethod   = "homeOfficeMethod"
	KeyFormState          = "formState"
	KeyModals             = "modals"
	KeyNotifications      = "notifications"
	KeyData               = "data"
)

// Sub-keys of the "data" tree, one per business entity. Collections default
// to empty slices, never to a missing key.
const (
	DataIncome       = "income"
	DataExpenses     = "expenses"
	DataMileage      = "mileage"
	DataUtilities    = "utilities"
	DataHomeOffice   = "homeOffice"
	DataTaxSettings  = "taxSettings"
	DataTaxPayments  = "taxPayments"
	DataSavingsGoals = "savingsGoals"
)

// DataPath returns the dot path addressing one entity collection,
// e.g. DataPath(DataIncome) == "data.income".
func DataPath(sub string) string { return KeyData + "." + sub }

// DefaultState builds the initial snapshot the dashboard starts from.
// The manager deep-clones it at construction and again on every Reset,
// so the returned tree is never aliased by live state.
func DefaultState() map[string]any {
	return map[string]any{
		KeyActiveTab:          string(model.TabOverview),
		KeyLoading:            false,
		KeySelectedRecordID:   nil,
		KeySelectedRecordType: nil,
		KeyHomeOfficeMethod:   nil,
		KeyFormState:          map[string]any{},
		KeyModals:             map[string]any{},
		KeyNotifications:      []model.Notification{},
		KeyData: map[string]any{
			DataIncome:       []model.Income{},
			DataExpenses:     []model.Expense{},
			DataMileage:      []model.Trip{},
			DataUtilities:    []model.Utility{},
			DataHomeOffice:   nil,
			DataTaxSettings:  nil,
			DataTaxPayments:  []model.TaxPayment{},
			DataSavingsGoals: []model.SavingsGoal{},
		},
	}
}

// defaultValidators gates writes to the enumerated top-level keys.
// Keys without a validator are unconditionally writable.
func defaultValidators() map[string]Validator {
	return map[string]Validator{
		KeyActiveTab: func(v any) bool {
			s, ok := v.(string)
			return ok && model.ValidTab(s)
		},
		KeySelectedRecordType: func(v any) bool {
			if v == nil {
				return true
			}
			s, ok := v.(string)
			return ok && model.ValidRecordType(s)
		},
		KeyHomeOfficeMethod: func(v any) bool {
			if v == nil {
				return true
			}
			s, ok := v.(string)
			return ok && (model.HomeOfficeMethod(s) == model.HomeOfficeSimplified ||
				model.HomeOfficeMethod(s) == model.HomeOfficeActual)
		},
		KeySelectedRecordID: func(v any) bool {
			if v == nil {
				return true
			}
			n, ok := v.(int64)
			return ok && n > 0
		},
	}
}
