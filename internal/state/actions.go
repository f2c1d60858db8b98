package state

import (
	"sort"
	"strings"

	"ledgerdesk/internal/model"
)

// Actions is the typed facade the UI talks to. Every method translates a
// domain intent into Manager calls; it adds no invariants of its own and
// holds no state beyond the manager reference and a toast id counter.
type Actions struct {
	m           *Manager
	nextToastID int64
}

// NewActions wraps a manager. One Actions instance per manager is expected.
func NewActions(m *Manager) *Actions {
	return &Actions{m: m}
}

// Manager exposes the underlying manager for subscriptions and raw reads.
func (a *Actions) Manager() *Manager { return a.m }

// SwitchTab activates a dashboard tab. Invalid tabs are dropped by the
// activeTab validator.
func (a *Actions) SwitchTab(tab model.Tab) {
	a.m.Set(KeyActiveTab, string(tab))
}

// ActiveTab returns the current tab.
func (a *Actions) ActiveTab() model.Tab {
	s, _ := a.m.Get(KeyActiveTab).(string)
	return model.Tab(s)
}

// SetLoading flips the global loading flag.
func (a *Actions) SetLoading(loading bool) {
	a.m.Set(KeyLoading, loading)
}

// Loading returns the global loading flag.
func (a *Actions) Loading() bool {
	b, _ := a.m.Get(KeyLoading).(bool)
	return b
}

// SelectRecord marks a record as the current selection.
func (a *Actions) SelectRecord(id int64, typ model.RecordType) {
	a.m.Set(KeySelectedRecordType, string(typ))
	a.m.Set(KeySelectedRecordID, id)
}

// ClearSelection drops the current selection.
func (a *Actions) ClearSelection() {
	a.m.Set(KeySelectedRecordID, nil)
	a.m.Set(KeySelectedRecordType, nil)
}

// Selection returns the selected record id and type; ok is false when
// nothing is selected.
func (a *Actions) Selection() (id int64, typ model.RecordType, ok bool) {
	id, idOK := a.m.Get(KeySelectedRecordID).(int64)
	s, typOK := a.m.Get(KeySelectedRecordType).(string)
	if !idOK || !typOK {
		return 0, "", false
	}
	return id, model.RecordType(s), true
}

// SetHomeOfficeMethod records the chosen deduction method (or nil to unset).
func (a *Actions) SetHomeOfficeMethod(method model.HomeOfficeMethod) {
	a.m.Set(KeyHomeOfficeMethod, string(method))
}

// ClearHomeOfficeMethod unsets the deduction method.
func (a *Actions) ClearHomeOfficeMethod() {
	a.m.Set(KeyHomeOfficeMethod, nil)
}

// OpenModal marks a modal as open. Modal flags live under the "modals" map
// and are written through the nested API so per-modal listeners fire.
func (a *Actions) OpenModal(id string) {
	a.m.SetNested(KeyModals+"."+id, true)
}

// CloseModal marks a modal as closed.
func (a *Actions) CloseModal(id string) {
	a.m.SetNested(KeyModals+"."+id, false)
}

// ModalOpen reports whether a modal is currently open.
func (a *Actions) ModalOpen(id string) bool {
	b, _ := a.m.GetNested(KeyModals + "." + id).(bool)
	return b
}

// SetFormField stores one field of a form's transient state
// (auto-vivifying the per-form map on first write).
func (a *Actions) SetFormField(formID, field string, value any) {
	a.m.SetNested(KeyFormState+"."+formID+"."+field, value)
}

// FormField reads one field of a form's transient state.
func (a *Actions) FormField(formID, field string) any {
	return a.m.GetNested(KeyFormState + "." + formID + "." + field)
}

// ClearForm drops all transient state for one form.
func (a *Actions) ClearForm(formID string) {
	a.m.SetNested(KeyFormState+"."+formID, map[string]any{})
}

// Notify appends a toast and returns its id.
func (a *Actions) Notify(kind model.NotificationKind, message string) int64 {
	a.nextToastID++
	cur, _ := a.m.Get(KeyNotifications).([]model.Notification)
	next := make([]model.Notification, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, model.Notification{ID: a.nextToastID, Kind: kind, Message: message})
	a.m.Set(KeyNotifications, next)
	return a.nextToastID
}

// DismissNotification removes one toast by id.
func (a *Actions) DismissNotification(id int64) {
	cur, _ := a.m.Get(KeyNotifications).([]model.Notification)
	next := make([]model.Notification, 0, len(cur))
	for _, n := range cur {
		if n.ID != id {
			next = append(next, n)
		}
	}
	a.m.Set(KeyNotifications, next)
}

// Notifications returns the pending toasts.
func (a *Actions) Notifications() []model.Notification {
	ns, _ := a.m.Get(KeyNotifications).([]model.Notification)
	return ns
}

// ClearNotifications drops all pending toasts.
func (a *Actions) ClearNotifications() {
	a.m.Set(KeyNotifications, []model.Notification{})
}

// Entity data setters. Collections are replaced wholesale through the nested
// API so "data refreshed" listeners always fire, even for identical data.

func (a *Actions) SetIncome(xs []model.Income)            { a.m.SetNested(DataPath(DataIncome), xs) }
func (a *Actions) SetExpenses(xs []model.Expense)         { a.m.SetNested(DataPath(DataExpenses), xs) }
func (a *Actions) SetMileage(xs []model.Trip)             { a.m.SetNested(DataPath(DataMileage), xs) }
func (a *Actions) SetUtilities(xs []model.Utility)        { a.m.SetNested(DataPath(DataUtilities), xs) }
func (a *Actions) SetTaxPayments(xs []model.TaxPayment)   { a.m.SetNested(DataPath(DataTaxPayments), xs) }
func (a *Actions) SetSavingsGoals(xs []model.SavingsGoal) { a.m.SetNested(DataPath(DataSavingsGoals), xs) }

// SetHomeOffice stores the single home-office config (nil clears it).
func (a *Actions) SetHomeOffice(ho *model.HomeOffice) {
	if ho == nil {
		a.m.SetNested(DataPath(DataHomeOffice), nil)
		return
	}
	a.m.SetNested(DataPath(DataHomeOffice), *ho)
}

// SetTaxSettings stores the single tax profile (nil clears it).
func (a *Actions) SetTaxSettings(ts *model.TaxSettings) {
	if ts == nil {
		a.m.SetNested(DataPath(DataTaxSettings), nil)
		return
	}
	a.m.SetNested(DataPath(DataTaxSettings), *ts)
}

// Typed entity data getters.

func (a *Actions) Income() []model.Income {
	xs, _ := a.m.GetNested(DataPath(DataIncome)).([]model.Income)
	return xs
}

func (a *Actions) Expenses() []model.Expense {
	xs, _ := a.m.GetNested(DataPath(DataExpenses)).([]model.Expense)
	return xs
}

func (a *Actions) Mileage() []model.Trip {
	xs, _ := a.m.GetNested(DataPath(DataMileage)).([]model.Trip)
	return xs
}

func (a *Actions) Utilities() []model.Utility {
	xs, _ := a.m.GetNested(DataPath(DataUtilities)).([]model.Utility)
	return xs
}

func (a *Actions) TaxPayments() []model.TaxPayment {
	xs, _ := a.m.GetNested(DataPath(DataTaxPayments)).([]model.TaxPayment)
	return xs
}

func (a *Actions) SavingsGoals() []model.SavingsGoal {
	xs, _ := a.m.GetNested(DataPath(DataSavingsGoals)).([]model.SavingsGoal)
	return xs
}

func (a *Actions) HomeOffice() (model.HomeOffice, bool) {
	ho, ok := a.m.GetNested(DataPath(DataHomeOffice)).(model.HomeOffice)
	return ho, ok
}

func (a *Actions) TaxSettings() (model.TaxSettings, bool) {
	ts, ok := a.m.GetNested(DataPath(DataTaxSettings)).(model.TaxSettings)
	return ts, ok
}

// TabHasData reports whether a tab has anything to show, for badge/empty
// states. Overview counts any data at all.
func (a *Actions) TabHasData(tab model.Tab) bool {
	switch tab {
	case model.TabIncome:
		return len(a.Income()) > 0
	case model.TabExpenses:
		return len(a.Expenses()) > 0
	case model.TabMileage:
		return len(a.Mileage()) > 0
	case model.TabDeductions:
		if _, ok := a.HomeOffice(); ok {
			return true
		}
		return len(a.Utilities()) > 0
	case model.TabTaxes:
		if _, ok := a.TaxSettings(); ok {
			return true
		}
		return len(a.TaxPayments()) > 0
	case model.TabOverview:
		for _, t := range model.Tabs() {
			if t != model.TabOverview && a.TabHasData(t) {
				return true
			}
		}
		return len(a.SavingsGoals()) > 0
	}
	return false
}

// BatchUpdate applies a map of writes, dispatching each entry to Set or
// SetNested depending on whether the key contains a path separator.
// Keys are applied in sorted order so batches behave deterministically.
func (a *Actions) BatchUpdate(updates map[string]any) {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, ".") {
			a.m.SetNested(k, updates[k])
		} else {
			a.m.Set(k, updates[k])
		}
	}
}
