package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ledgerdesk/internal/model"
	"ledgerdesk/internal/tax"
)

// runCmd executes one CLI invocation against a fixture dir and returns stdout.
func runCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("ledgerdesk %s: %v\nstderr: %s", strings.Join(args, " "), err, errOut.String())
	}
	return out.String()
}

func decodeData[T any](t *testing.T, raw string) T {
	t.Helper()
	var wrapper struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return wrapper.Data
}

func TestIncomeAddListRm(t *testing.T) {
	dir := t.TempDir()

	out := runCmd(t, dir, "income", "add",
		"--client", "Acme Corp",
		"--service", "consulting",
		"--amount", "$2,500.00",
		"--date", "2024-03-10",
		"--expects-1099")
	added := decodeData[model.Income](t, out)
	if added.ID == 0 || added.AmountCents != 250000 || !added.Expects1099 {
		t.Fatalf("unexpected add result: %+v", added)
	}

	out = runCmd(t, dir, "income", "list")
	list := decodeData[[]model.Income](t, out)
	if len(list) != 1 || list[0].Client != "Acme Corp" {
		t.Fatalf("unexpected list: %+v", list)
	}

	runCmd(t, dir, "income", "rm", "1")
	out = runCmd(t, dir, "income", "list")
	if list = decodeData[[]model.Income](t, out); len(list) != 0 {
		t.Fatalf("expected empty list after rm, got %+v", list)
	}
}

func TestIncomeEditKeepsOmittedFields(t *testing.T) {
	dir := t.TempDir()

	runCmd(t, dir, "income", "add",
		"--client", "Acme Corp",
		"--service", "consulting",
		"--amount", "1000",
		"--date", "2024-03-10")

	out := runCmd(t, dir, "income", "edit", "1", "--amount", "$1,750.00")
	edited := decodeData[model.Income](t, out)
	if edited.AmountCents != 175000 {
		t.Fatalf("expected updated amount, got %+v", edited)
	}
	if edited.Client != "Acme Corp" || edited.ServiceType != "consulting" || edited.Date != "2024-03-10" {
		t.Fatalf("omitted fields must survive the edit: %+v", edited)
	}

	out = runCmd(t, dir, "income", "list")
	list := decodeData[[]model.Income](t, out)
	if len(list) != 1 || list[0].AmountCents != 175000 {
		t.Fatalf("edit did not persist: %+v", list)
	}
}

func TestEditMissingRecordFails(t *testing.T) {
	dir := t.TempDir()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--dir", dir, "income", "edit", "42", "--amount", "100"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error editing a missing record")
	}
}

func TestMileageEditRepricesDeduction(t *testing.T) {
	dir := t.TempDir()

	runCmd(t, dir, "mileage", "add",
		"--from", "home", "--to", "client site",
		"--miles", "100", "--date", "2024-02-20")

	out := runCmd(t, dir, "mileage", "edit", "1", "--miles", "50")
	trip := decodeData[model.Trip](t, out)
	if trip.Miles != 50 || trip.DeductionCents != 3350 {
		t.Fatalf("expected repriced deduction for 50 miles, got %+v", trip)
	}
	if trip.StartLocation != "home" || trip.Destination != "client site" {
		t.Fatalf("omitted fields must survive the edit: %+v", trip)
	}
}

func TestUtilitiesEditReprorates(t *testing.T) {
	dir := t.TempDir()

	runCmd(t, dir, "utilities", "add",
		"--type", "internet", "--monthly", "100", "--percent", "40")

	out := runCmd(t, dir, "utilities", "edit", "1", "--percent", "50")
	u := decodeData[model.Utility](t, out)
	if u.MonthlyDeductionCents != 5000 || u.AnnualDeductionCents != 60000 {
		t.Fatalf("expected recomputed proration, got %+v", u)
	}
}

func TestMileageAddComputesDeduction(t *testing.T) {
	dir := t.TempDir()

	out := runCmd(t, dir, "mileage", "add",
		"--from", "home", "--to", "client site",
		"--miles", "100",
		"--purpose", "kickoff meeting",
		"--date", "2024-02-20")
	trip := decodeData[model.Trip](t, out)
	if trip.DeductionCents != 6700 {
		t.Fatalf("expected 6700 cents for 100 miles, got %d", trip.DeductionCents)
	}
}

func TestUtilitiesAddProrates(t *testing.T) {
	dir := t.TempDir()

	out := runCmd(t, dir, "utilities", "add",
		"--type", "internet", "--monthly", "100", "--percent", "40")
	u := decodeData[model.Utility](t, out)
	if u.MonthlyDeductionCents != 4000 || u.AnnualDeductionCents != 48000 {
		t.Fatalf("unexpected proration: %+v", u)
	}
}

func TestHomeOfficeSetShow(t *testing.T) {
	dir := t.TempDir()

	runCmd(t, dir, "homeoffice", "set", "--method", "simplified", "--office-sqft", "400")
	out := runCmd(t, dir, "homeoffice", "show")
	ho := decodeData[*model.HomeOffice](t, out)
	if ho == nil || ho.AnnualDeductionCents != 150000 {
		t.Fatalf("expected capped simplified deduction, got %+v", ho)
	}

	runCmd(t, dir, "homeoffice", "set", "--method", "actual", "--office-sqft", "150", "--home-sqft", "1800")
	out = runCmd(t, dir, "homeoffice", "show")
	ho = decodeData[*model.HomeOffice](t, out)
	if ho == nil || ho.Method != model.HomeOfficeActual || ho.BusinessPercent != 8.33 {
		t.Fatalf("expected actual method replacement, got %+v", ho)
	}
}

func TestOverviewAggregates(t *testing.T) {
	dir := t.TempDir()

	runCmd(t, dir, "income", "add", "--client", "Acme", "--amount", "8000", "--date", "2024-03-10")
	runCmd(t, dir, "expenses", "add", "--category", "equipment", "--description", "Laptop", "--amount", "1200", "--date", "2024-04-01")
	runCmd(t, dir, "taxes", "pay", "--quarter", "q1", "--amount", "500", "--date", "2024-04-10")

	out := runCmd(t, dir, "overview")
	o := decodeData[tax.Overview](t, out)
	if o.TotalIncomeCents != 800000 {
		t.Fatalf("total income: got %d", o.TotalIncomeCents)
	}
	if o.NetProfitCents != 680000 {
		t.Fatalf("net profit: got %d", o.NetProfitCents)
	}
	if o.PaidToDateCents != 50000 {
		t.Fatalf("paid to date: got %d", o.PaidToDateCents)
	}
	if len(o.Reminders) != 4 {
		t.Fatalf("expected 4 reminders, got %d", len(o.Reminders))
	}
}

func TestTaxesPayRejectsBadQuarter(t *testing.T) {
	dir := t.TempDir()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--dir", dir, "taxes", "pay", "--quarter", "Q5", "--amount", "100", "--date", "2024-04-01"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected invalid quarter error")
	}
}

func TestReportRawMarkdown(t *testing.T) {
	dir := t.TempDir()

	runCmd(t, dir, "income", "add", "--client", "Acme", "--amount", "1000", "--date", "2024-03-10")
	out := runCmd(t, dir, "report", "--raw")
	if !strings.Contains(out, "# Schedule C Summary") {
		t.Fatalf("expected report title, got:\n%s", out)
	}
	if !strings.Contains(out, "$1,000.00") {
		t.Fatalf("expected formatted gross receipts, got:\n%s", out)
	}
}
