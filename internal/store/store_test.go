package store

import (
	"context"
	"errors"
	"testing"

	"ledgerdesk/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	return Store{Dir: t.TempDir()}
}

func TestIncomeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in, err := s.AddIncome(ctx, model.Income{
		Client:      "Acme Corp",
		ServiceType: "consulting",
		AmountCents: 250000,
		Date:        "2024-03-10",
		Expects1099: true,
		Notes:       "retainer",
	})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if in.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := s.ListIncome(ctx)
	if err != nil {
		t.Fatalf("ListIncome: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0] != in {
		t.Fatalf("round trip mismatch: %+v vs %+v", got[0], in)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2024-01-05", "2024-06-01", "2024-03-15"} {
		if _, err := s.AddExpense(ctx, model.Expense{Category: "software", Description: d, AmountCents: 1000, Date: d}); err != nil {
			t.Fatalf("AddExpense: %v", err)
		}
	}

	got, err := s.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	want := []string{"2024-06-01", "2024-03-15", "2024-01-05"}
	for i, w := range want {
		if got[i].Date != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, got[i].Date)
		}
	}
}

func TestDeleteMissingRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.DeleteIncome(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	in, err := s.AddIncome(ctx, model.Income{Client: "x", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if err := s.DeleteIncome(ctx, in.ID); err != nil {
		t.Fatalf("DeleteIncome: %v", err)
	}
	got, err := s.ListIncome(ctx)
	if err != nil {
		t.Fatalf("ListIncome: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %d", len(got))
	}
}

func TestUpdateReplacesRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in, err := s.AddIncome(ctx, model.Income{Client: "Acme", ServiceType: "consulting", AmountCents: 100000, Date: "2024-03-10"})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}

	in.Client = "Acme Corp"
	in.AmountCents = 175000
	if err := s.UpdateIncome(ctx, in); err != nil {
		t.Fatalf("UpdateIncome: %v", err)
	}

	got, err := s.ListIncome(ctx)
	if err != nil {
		t.Fatalf("ListIncome: %v", err)
	}
	if len(got) != 1 || got[0] != in {
		t.Fatalf("update did not stick: %+v", got)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpdateIncome(ctx, model.Income{ID: 42, Client: "ghost", Date: "2024-01-01"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateTaxPayment(ctx, model.TaxPayment{ID: 7, Quarter: "Q1", PaymentDate: "2024-04-01"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTouchesOnlyItsRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddExpense(ctx, model.Expense{Category: "software", Description: "editor", AmountCents: 2000, Date: "2024-01-10"})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	second, err := s.AddExpense(ctx, model.Expense{Category: "travel", Description: "train", AmountCents: 4500, Date: "2024-02-05"})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	second.AmountCents = 5000
	if err := s.UpdateExpense(ctx, second); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}

	got, err := s.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	for _, e := range got {
		switch e.ID {
		case first.ID:
			if e != first {
				t.Fatalf("untouched row changed: %+v", e)
			}
		case second.ID:
			if e.AmountCents != 5000 {
				t.Fatalf("updated row lost the change: %+v", e)
			}
		}
	}
}

func TestHomeOfficeSingleton(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ho, err := s.GetHomeOffice(ctx)
	if err != nil {
		t.Fatalf("GetHomeOffice: %v", err)
	}
	if ho != nil {
		t.Fatalf("expected nil before configuration, got %+v", ho)
	}

	first := model.HomeOffice{Method: model.HomeOfficeSimplified, OfficeSquareFeet: 200, AnnualDeductionCents: 100000}
	if err := s.SetHomeOffice(ctx, first); err != nil {
		t.Fatalf("SetHomeOffice: %v", err)
	}
	second := model.HomeOffice{Method: model.HomeOfficeActual, OfficeSquareFeet: 150, HomeSquareFeet: 1800, BusinessPercent: 8.33}
	if err := s.SetHomeOffice(ctx, second); err != nil {
		t.Fatalf("SetHomeOffice (replace): %v", err)
	}

	ho, err = s.GetHomeOffice(ctx)
	if err != nil {
		t.Fatalf("GetHomeOffice: %v", err)
	}
	if ho == nil || *ho != second {
		t.Fatalf("expected replacement to win: %+v", ho)
	}
}

func TestTaxSettingsSingleton(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ts, err := s.GetTaxSettings(ctx)
	if err != nil {
		t.Fatalf("GetTaxSettings: %v", err)
	}
	if ts != nil {
		t.Fatalf("expected nil before configuration")
	}

	want := model.TaxSettings{BusinessName: "Freelance LLC", TaxYear: 2024, FilingStatus: "single", OtherIncomeCents: 500000}
	if err := s.SetTaxSettings(ctx, want); err != nil {
		t.Fatalf("SetTaxSettings: %v", err)
	}
	ts, err = s.GetTaxSettings(ctx)
	if err != nil {
		t.Fatalf("GetTaxSettings: %v", err)
	}
	if ts == nil || *ts != want {
		t.Fatalf("round trip mismatch: %+v", ts)
	}
}

func TestLoadAllSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddIncome(ctx, model.Income{Client: "Acme", AmountCents: 100000, Date: "2024-02-01"}); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if _, err := s.AddTrip(ctx, model.Trip{StartLocation: "home", Destination: "client", Miles: 12, Date: "2024-02-02", DeductionCents: 804}); err != nil {
		t.Fatalf("AddTrip: %v", err)
	}
	if _, err := s.AddTaxPayment(ctx, model.TaxPayment{Quarter: "Q1", AmountCents: 50000, PaymentDate: "2024-04-10"}); err != nil {
		t.Fatalf("AddTaxPayment: %v", err)
	}
	if _, err := s.AddSavingsGoal(ctx, model.SavingsGoal{Name: "tax reserve", TargetCents: 1000000, GoalType: "taxes"}); err != nil {
		t.Fatalf("AddSavingsGoal: %v", err)
	}

	snap, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(snap.Income) != 1 || len(snap.Trips) != 1 || len(snap.TaxPayments) != 1 || len(snap.SavingsGoals) != 1 {
		t.Fatalf("unexpected snapshot sizes: %+v", snap)
	}
	if snap.HomeOffice != nil || snap.TaxSettings != nil {
		t.Fatalf("expected unset singletons to be nil")
	}
	if len(snap.Expenses) != 0 || len(snap.Utilities) != 0 {
		t.Fatalf("expected empty (non-nil) slices for untouched tables")
	}
}

func TestDefaultDirEnvOverride(t *testing.T) {
	t.Setenv("LEDGERDESK_DIR", "/tmp/ledgerdesk-test")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir: %v", err)
	}
	if dir != "/tmp/ledgerdesk-test" {
		t.Fatalf("expected env override, got %s", dir)
	}
}
