package tui

import (
	"context"
	"strings"
	"testing"

	"ledgerdesk/internal/model"
	"ledgerdesk/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am
}

func seededApp(t *testing.T) (appModel, store.Store) {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	ctx := context.Background()
	if _, err := s.AddIncome(ctx, model.Income{Client: "Acme", AmountCents: 100000, Date: "2024-03-10"}); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	snap, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	m := newAppModel(s, snap)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, s
}

func TestSnapshotFillsLists(t *testing.T) {
	m, _ := seededApp(t)

	if got := len(m.lists[model.TabIncome].Items()); got != 1 {
		t.Fatalf("expected 1 income item, got %d", got)
	}
	if got := len(m.lists[model.TabExpenses].Items()); got != 0 {
		t.Fatalf("expected empty expenses list, got %d", got)
	}
	if m.actions.Loading() {
		t.Fatalf("loading flag must be cleared after snapshot apply")
	}
}

func TestTabKeys(t *testing.T) {
	m, _ := seededApp(t)

	m = update(t, m, keyPress('2'))
	if got := m.actions.ActiveTab(); got != model.TabIncome {
		t.Fatalf("expected income tab, got %s", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.actions.ActiveTab(); got != model.TabExpenses {
		t.Fatalf("expected expenses tab after cycle, got %s", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.actions.ActiveTab(); got != model.TabIncome {
		t.Fatalf("expected income tab after reverse cycle, got %s", got)
	}
}

func TestDeleteFlowCancel(t *testing.T) {
	m, _ := seededApp(t)

	m = update(t, m, keyPress('2')) // income tab
	m = update(t, m, keyPress('d'))
	if !m.actions.ModalOpen(confirmDeleteModal) {
		t.Fatalf("expected confirm modal to open")
	}
	if _, _, ok := m.actions.Selection(); !ok {
		t.Fatalf("expected a selection while confirming")
	}

	m = update(t, m, keyPress('n'))
	if m.actions.ModalOpen(confirmDeleteModal) {
		t.Fatalf("expected modal to close on cancel")
	}
	if _, _, ok := m.actions.Selection(); ok {
		t.Fatalf("expected selection cleared on cancel")
	}
	if got := len(m.lists[model.TabIncome].Items()); got != 1 {
		t.Fatalf("cancel must not delete; got %d items", got)
	}
}

func TestDeleteFlowConfirm(t *testing.T) {
	m, s := seededApp(t)

	m = update(t, m, keyPress('2'))
	m = update(t, m, keyPress('d'))
	m = update(t, m, keyPress('y'))

	if got := len(m.lists[model.TabIncome].Items()); got != 0 {
		t.Fatalf("expected empty list after delete, got %d items", got)
	}
	left, err := s.ListIncome(context.Background())
	if err != nil {
		t.Fatalf("ListIncome: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected record removed from store, got %d", len(left))
	}

	ns := m.actions.Notifications()
	if len(ns) != 1 || ns[0].Kind != model.NotifySuccess {
		t.Fatalf("expected a success toast, got %+v", ns)
	}

	m = update(t, m, keyPress('x'))
	if got := m.actions.Notifications(); len(got) != 0 {
		t.Fatalf("expected toast dismissed, got %+v", got)
	}
}

func TestDeleteOnEmptyTabIsNoop(t *testing.T) {
	m, _ := seededApp(t)

	m = update(t, m, keyPress('3')) // expenses tab, empty
	m = update(t, m, keyPress('d'))
	if m.actions.ModalOpen(confirmDeleteModal) {
		t.Fatalf("expected no modal on empty tab")
	}
}

func typeString(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m = update(t, m, keyPress(r))
	}
	return m
}

func TestAddFormFlow(t *testing.T) {
	m, s := seededApp(t)

	m = update(t, m, keyPress('2')) // income tab
	m = update(t, m, keyPress('a'))
	if m.form == nil || !m.actions.ModalOpen("add-income") {
		t.Fatalf("expected add-income form to open")
	}

	m = typeString(t, m, "Globex")
	if got := m.actions.FormField("add-income", "client"); got != "Globex" {
		t.Fatalf("expected form state mirror, got %v", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // -> service
	m = typeString(t, m, "design")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // -> amount
	m = typeString(t, m, "1500")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // -> date
	m = typeString(t, m, "2024-05-01")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // submit

	if m.form != nil || m.actions.ModalOpen("add-income") {
		t.Fatalf("expected form to close after submit")
	}
	if got := m.actions.FormField("add-income", "client"); got != nil {
		t.Fatalf("expected form state cleared, got %v", got)
	}
	if got := len(m.lists[model.TabIncome].Items()); got != 2 {
		t.Fatalf("expected 2 income items after add, got %d", got)
	}
	recs, err := s.ListIncome(context.Background())
	if err != nil {
		t.Fatalf("ListIncome: %v", err)
	}
	if len(recs) != 2 || recs[0].Client != "Globex" || recs[0].AmountCents != 150000 {
		t.Fatalf("unexpected store contents: %+v", recs)
	}
}

func TestAddFormRejectsBadAmount(t *testing.T) {
	m, _ := seededApp(t)

	m = update(t, m, keyPress('2'))
	m = update(t, m, keyPress('a'))
	m = typeString(t, m, "Bob")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // skip service -> amount
	m = typeString(t, m, "abc")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // -> date
	m = typeString(t, m, "2024-05-01")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // submit fails

	if m.form == nil {
		t.Fatalf("expected form to stay open on parse error")
	}
	ns := m.actions.Notifications()
	if len(ns) != 1 || ns[0].Kind != model.NotifyError {
		t.Fatalf("expected error toast, got %+v", ns)
	}
}

func TestAddFormCancel(t *testing.T) {
	m, _ := seededApp(t)

	m = update(t, m, keyPress('2'))
	m = update(t, m, keyPress('a'))
	m = typeString(t, m, "Bob")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.form != nil || m.actions.ModalOpen("add-income") {
		t.Fatalf("expected form closed on cancel")
	}
	if got := m.actions.FormField("add-income", "client"); got != nil {
		t.Fatalf("expected form state cleared on cancel, got %v", got)
	}
	if got := len(m.lists[model.TabIncome].Items()); got != 1 {
		t.Fatalf("cancel must not add; got %d items", got)
	}
}

func TestViewRendersTabsAndOverview(t *testing.T) {
	m, _ := seededApp(t)

	out := m.View()
	if out == "" {
		t.Fatalf("expected non-empty view")
	}
	for _, want := range []string{"overview", "income", "Recent activity", "$1,000.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected view to contain %q\n%s", want, out)
		}
	}
}
