package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/state"
	"ledgerdesk/internal/store"
	"ledgerdesk/internal/tax"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const confirmDeleteModal = "confirm-delete"

// recordTabs maps each tab to the record type its list holds. Overview has
// no list; deductions and taxes carry extra chrome above theirs.
var recordTabs = map[model.Tab]model.RecordType{
	model.TabIncome:     model.RecordIncome,
	model.TabExpenses:   model.RecordExpense,
	model.TabMileage:    model.RecordMileage,
	model.TabDeductions: model.RecordUtility,
	model.TabTaxes:      model.RecordTaxPayment,
}

type appModel struct {
	store   store.Store
	mgr     *state.Manager
	actions *state.Actions

	width  int
	height int

	// Shared across model copies; rebuilt by state subscriptions.
	lists map[model.Tab]*list.Model

	// Open add-record form, nil when none.
	form *addForm
}

func newAppModel(s store.Store, snap *store.DB) appModel {
	mgr := state.NewManager(state.DefaultState(), state.WithLogf(func(f string, args ...any) {
		fmt.Fprintf(os.Stderr, f+"\n", args...)
	}))
	actions := state.NewActions(mgr)

	m := appModel{
		store:   s,
		mgr:     mgr,
		actions: actions,
		lists:   map[model.Tab]*list.Model{},
	}
	for tab := range recordTabs {
		l := newList(nil)
		m.lists[tab] = &l
	}

	// Rebuild a tab's list whenever its slice of the state tree changes.
	// Writes always go through the container, so the lists never go stale.
	rebuilds := map[string]func(){
		state.DataPath(state.DataIncome):      m.rebuildIncome,
		state.DataPath(state.DataExpenses):    m.rebuildExpenses,
		state.DataPath(state.DataMileage):     m.rebuildMileage,
		state.DataPath(state.DataUtilities):   m.rebuildUtilities,
		state.DataPath(state.DataTaxPayments): m.rebuildPayments,
	}
	for path, fn := range rebuilds {
		mgr.Subscribe(path, func(newValue, oldValue any, key string) { fn() })
	}

	m.applySnapshot(snap)
	return m
}

// applySnapshot pushes a store snapshot through the action layer, which
// fans out to the list subscriptions above.
func (m appModel) applySnapshot(snap *store.DB) {
	m.actions.SetLoading(true)
	m.actions.SetIncome(snap.Income)
	m.actions.SetExpenses(snap.Expenses)
	m.actions.SetMileage(snap.Trips)
	m.actions.SetUtilities(snap.Utilities)
	m.actions.SetTaxPayments(snap.TaxPayments)
	m.actions.SetSavingsGoals(snap.SavingsGoals)
	m.actions.SetHomeOffice(snap.HomeOffice)
	m.actions.SetTaxSettings(snap.TaxSettings)
	m.actions.SetLoading(false)
}

func (m appModel) rebuildIncome() {
	items := []list.Item{}
	for _, r := range m.actions.Income() {
		items = append(items, incomeItem{rec: r})
	}
	m.lists[model.TabIncome].SetItems(items)
}

func (m appModel) rebuildExpenses() {
	items := []list.Item{}
	for _, r := range m.actions.Expenses() {
		items = append(items, expenseItem{rec: r})
	}
	m.lists[model.TabExpenses].SetItems(items)
}

func (m appModel) rebuildMileage() {
	items := []list.Item{}
	for _, r := range m.actions.Mileage() {
		items = append(items, tripItem{rec: r})
	}
	m.lists[model.TabMileage].SetItems(items)
}

func (m appModel) rebuildUtilities() {
	items := []list.Item{}
	for _, r := range m.actions.Utilities() {
		items = append(items, utilityItem{rec: r})
	}
	m.lists[model.TabDeductions].SetItems(items)
}

func (m appModel) rebuildPayments() {
	items := []list.Item{}
	for _, r := range m.actions.TaxPayments() {
		items = append(items, paymentItem{rec: r})
	}
	m.lists[model.TabTaxes].SetItems(items)
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.actions.ModalOpen(confirmDeleteModal) {
			return m.updateModal(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.cycleTab(1)
			return m, nil
		case "shift+tab":
			m.cycleTab(-1)
			return m, nil
		case "1", "2", "3", "4", "5", "6":
			tabs := model.Tabs()
			m.actions.SwitchTab(tabs[int(msg.String()[0]-'1')])
			return m, nil
		case "r":
			// Reload from disk (so CLI commands run in another terminal
			// are reflected).
			m.reload()
			return m, nil
		case "x":
			if ns := m.actions.Notifications(); len(ns) > 0 {
				m.actions.DismissNotification(ns[len(ns)-1].ID)
			}
			return m, nil
		case "a":
			if f, ok := newAddForm(m.actions.ActiveTab()); ok {
				m.form = f
				m.actions.OpenModal(f.id)
				return m, nil
			}
		case "d", "delete":
			if m.beginDelete() {
				return m, nil
			}
		}

		return m.updateActiveList(msg)
	}

	return m, nil
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.confirmDelete()
	case "n", "esc":
		m.actions.CloseModal(confirmDeleteModal)
		m.actions.ClearSelection()
	}
	return m, nil
}

func (m appModel) updateActiveList(msg tea.Msg) (tea.Model, tea.Cmd) {
	tab := m.actions.ActiveTab()
	l, ok := m.lists[tab]
	if !ok {
		return m, nil
	}
	nl, cmd := l.Update(msg)
	*l = nl
	return m, cmd
}

func (m appModel) cycleTab(delta int) {
	tabs := model.Tabs()
	cur := m.actions.ActiveTab()
	for i, t := range tabs {
		if t == cur {
			m.actions.SwitchTab(tabs[(i+delta+len(tabs))%len(tabs)])
			return
		}
	}
}

// beginDelete selects the highlighted record and opens the confirm modal.
// Returns false when the active tab has nothing to delete.
func (m appModel) beginDelete() bool {
	tab := m.actions.ActiveTab()
	rt, ok := recordTabs[tab]
	if !ok {
		return false
	}
	l := m.lists[tab]
	id := selectedRecordID(l.SelectedItem())
	if id == 0 {
		return false
	}
	m.actions.SelectRecord(id, rt)
	m.actions.OpenModal(confirmDeleteModal)
	return true
}

func selectedRecordID(it list.Item) int64 {
	switch v := it.(type) {
	case incomeItem:
		return v.rec.ID
	case expenseItem:
		return v.rec.ID
	case tripItem:
		return v.rec.ID
	case utilityItem:
		return v.rec.ID
	case paymentItem:
		return v.rec.ID
	}
	return 0
}

func (m appModel) confirmDelete() {
	id, rt, ok := m.actions.Selection()
	m.actions.CloseModal(confirmDeleteModal)
	m.actions.ClearSelection()
	if !ok {
		return
	}

	ctx := context.Background()
	var err error
	switch rt {
	case model.RecordIncome:
		err = m.store.DeleteIncome(ctx, id)
	case model.RecordExpense:
		err = m.store.DeleteExpense(ctx, id)
	case model.RecordMileage:
		err = m.store.DeleteTrip(ctx, id)
	case model.RecordUtility:
		err = m.store.DeleteUtility(ctx, id)
	case model.RecordTaxPayment:
		err = m.store.DeleteTaxPayment(ctx, id)
	default:
		return
	}
	if err != nil {
		m.actions.Notify(model.NotifyError, fmt.Sprintf("delete failed: %v", err))
		return
	}
	m.reload()
	m.actions.Notify(model.NotifySuccess, "record deleted")
}

func (m appModel) reload() {
	snap, err := m.store.LoadAll(context.Background())
	if err != nil {
		m.actions.Notify(model.NotifyError, fmt.Sprintf("reload failed: %v", err))
		return
	}
	m.applySnapshot(snap)
}

func (m appModel) resizeLists() {
	// Tab bar + blank + status line; deductions/taxes also carry a header.
	for tab, l := range m.lists {
		chrome := 3
		if tab == model.TabDeductions || tab == model.TabTaxes {
			chrome += headerHeight
		}
		h := m.height - chrome
		if h < 0 {
			h = 0
		}
		l.SetSize(m.width, h)
	}
}

const headerHeight = 3

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.viewTabBar())
	b.WriteString("\n")

	tab := m.actions.ActiveTab()
	switch tab {
	case model.TabOverview:
		b.WriteString(m.viewOverview())
	case model.TabDeductions:
		b.WriteString(m.viewDeductionsHeader())
		b.WriteString(m.lists[tab].View())
	case model.TabTaxes:
		b.WriteString(m.viewTaxesHeader())
		b.WriteString(m.lists[tab].View())
	default:
		b.WriteString(m.lists[tab].View())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatusLine())

	out := b.String()
	if m.form != nil {
		return m.viewForm()
	}
	if m.actions.ModalOpen(confirmDeleteModal) {
		return m.viewConfirmModal()
	}
	return out
}

func (m appModel) viewTabBar() string {
	parts := make([]string, 0, len(model.Tabs()))
	active := m.actions.ActiveTab()
	for i, t := range model.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == active {
			parts = append(parts, styleActiveTab().Render(label))
		} else {
			parts = append(parts, styleInactiveTab().Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// booksFromState assembles the aggregate inputs from the container.
func (m appModel) booksFromState() tax.Books {
	b := tax.Books{
		Income:    m.actions.Income(),
		Expenses:  m.actions.Expenses(),
		Trips:     m.actions.Mileage(),
		Utilities: m.actions.Utilities(),
		Payments:  m.actions.TaxPayments(),
		Goals:     m.actions.SavingsGoals(),
	}
	if ho, ok := m.actions.HomeOffice(); ok {
		b.HomeOffice = &ho
	}
	if ts, ok := m.actions.TaxSettings(); ok {
		b.Settings = &ts
	}
	return b
}

func (m appModel) viewOverview() string {
	o := tax.BuildOverview(m.booksFromState(), time.Now())

	money := func(cents int64) string {
		if cents < 0 {
			return styleMoneyNegative().Render(format.Money(cents))
		}
		return styleMoneyPositive().Render(format.Money(cents))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  Income        %s\n", money(o.TotalIncomeCents))
	fmt.Fprintf(&b, "  Deductions    %s\n", format.Money(o.TotalDeductionsCents))
	fmt.Fprintf(&b, "  Net profit    %s\n", money(o.NetProfitCents))
	fmt.Fprintf(&b, "  Est. tax      %s (SE %s + income %s)\n",
		format.Money(o.TotalTaxCents), format.Money(o.SelfEmploymentTaxCents), format.Money(o.IncomeTaxCents))
	fmt.Fprintf(&b, "  Paid to date  %s\n\n", format.Money(o.PaidToDateCents))

	if goals := m.actions.SavingsGoals(); len(goals) > 0 {
		b.WriteString("  Savings goals\n")
		for _, g := range goals {
			fmt.Fprintf(&b, "    %s  %s of %s\n", g.Name, format.Money(g.CurrentCents), format.Money(g.TargetCents))
		}
		b.WriteString("\n")
	}

	b.WriteString("  Recent activity\n")
	if len(o.RecentTransactions) == 0 {
		b.WriteString(styleMuted().Render("    nothing recorded yet") + "\n")
	}
	for _, tr := range o.RecentTransactions {
		amount := format.Money(tr.AmountCents)
		if tr.Kind == "expense" {
			amount = "-" + amount
		}
		fmt.Fprintf(&b, "    %s  %-24s %s\n", tr.Date, tr.Label, amount)
	}
	return b.String()
}

func (m appModel) viewDeductionsHeader() string {
	var b strings.Builder
	if ho, ok := m.actions.HomeOffice(); ok {
		switch ho.Method {
		case model.HomeOfficeSimplified:
			fmt.Fprintf(&b, "  Home office: simplified, %d sqft, %s/yr\n",
				ho.OfficeSquareFeet, format.Money(ho.AnnualDeductionCents))
		case model.HomeOfficeActual:
			fmt.Fprintf(&b, "  Home office: actual, %s business use\n",
				format.Percent(ho.BusinessPercent))
		}
	} else {
		b.WriteString(styleMuted().Render("  Home office: not configured") + "\n")
	}
	b.WriteString("  Utilities\n\n")
	return b.String()
}

func (m appModel) viewTaxesHeader() string {
	var b strings.Builder
	line := "  Deadlines:"
	for _, r := range tax.Reminders(time.Now()) {
		seg := fmt.Sprintf(" %s %s", r.Quarter, r.DueDate)
		switch r.Status {
		case tax.StatusOverdue:
			seg = styleMoneyNegative().Render(seg)
		case tax.StatusDueSoon:
			seg = lipgloss.NewStyle().Foreground(colorWarning).Render(seg)
		default:
			seg = styleMuted().Render(seg)
		}
		line += seg
	}
	b.WriteString(line + "\n")
	b.WriteString("  Payments\n\n")
	return b.String()
}

func (m appModel) viewStatusLine() string {
	help := "tab/1-6 switch · a add · d delete · r reload · q quit"
	if ns := m.actions.Notifications(); len(ns) > 0 {
		latest := ns[len(ns)-1]
		prefix := ""
		switch latest.Kind {
		case model.NotifyError:
			prefix = styleMoneyNegative().Render("✗ ")
		case model.NotifySuccess:
			prefix = styleMoneyPositive().Render("✓ ")
		}
		help = prefix + latest.Message + "  (x to dismiss)"
	}
	line := styleMuted().Render(help)
	if m.width > 0 {
		line = xansi.Truncate(line, m.width, "…")
	}
	return line
}

func (m appModel) viewConfirmModal() string {
	id, rt, _ := m.actions.Selection()
	body := fmt.Sprintf("Delete %s record #%d?\n\n[y] delete   [n] cancel", rt, id)
	box := styleModal().Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
