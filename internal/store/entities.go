package store

import (
	"context"
	"database/sql"
	"time"

	"ledgerdesk/internal/model"
)

// DB is a full snapshot of the books, as loaded in one pass for the
// dashboard or the overview command.
type DB struct {
	Income       []model.Income
	Expenses     []model.Expense
	Trips        []model.Trip
	Utilities    []model.Utility
	HomeOffice   *model.HomeOffice
	TaxSettings  *model.TaxSettings
	TaxPayments  []model.TaxPayment
	SavingsGoals []model.SavingsGoal
}

func nowUnixMS() int64 { return time.Now().UnixMilli() }

// LoadAll reads every table into one snapshot.
func (s Store) LoadAll(ctx context.Context) (*DB, error) {
	var snap DB
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		if snap.Income, err = loadIncome(ctx, db); err != nil {
			return err
		}
		if snap.Expenses, err = loadExpenses(ctx, db); err != nil {
			return err
		}
		if snap.Trips, err = loadTrips(ctx, db); err != nil {
			return err
		}
		if snap.Utilities, err = loadUtilities(ctx, db); err != nil {
			return err
		}
		if snap.HomeOffice, err = loadHomeOffice(ctx, db); err != nil {
			return err
		}
		if snap.TaxSettings, err = loadTaxSettings(ctx, db); err != nil {
			return err
		}
		if snap.TaxPayments, err = loadTaxPayments(ctx, db); err != nil {
			return err
		}
		snap.SavingsGoals, err = loadSavingsGoals(ctx, db)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// --- income ---

func (s Store) AddIncome(ctx context.Context, in model.Income) (model.Income, error) {
	err := s.withDB(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`INSERT INTO income(client, service_type, amount_cents, date, expects_1099, notes, created_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?, ?)`,
			in.Client, in.ServiceType, in.AmountCents, in.Date, boolToInt(in.Expects1099), in.Notes, nowUnixMS())
		if err != nil {
			return err
		}
		in.ID, err = res.LastInsertId()
		return err
	})
	return in, err
}

func (s Store) ListIncome(ctx context.Context) ([]model.Income, error) {
	var out []model.Income
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		out, err = loadIncome(ctx, db)
		return err
	})
	return out, err
}

// UpdateIncome replaces the record with in.ID wholesale.
func (s Store) UpdateIncome(ctx context.Context, in model.Income) error {
	return s.execOne(ctx,
		`UPDATE income SET client = ?, service_type = ?, amount_cents = ?, date = ?, expects_1099 = ?, notes = ?
		 WHERE id = ?`,
		in.Client, in.ServiceType, in.AmountCents, in.Date, boolToInt(in.Expects1099), in.Notes, in.ID)
}

func (s Store) DeleteIncome(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "income", id)
}

func loadIncome(ctx context.Context, db *sql.DB) ([]model.Income, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, client, service_type, amount_cents, date, expects_1099, notes
		 FROM income ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Income{}
	for rows.Next() {
		var in model.Income
		var flag int
		if err := rows.Scan(&in.ID, &in.Client, &in.ServiceType, &in.AmountCents, &in.Date, &flag, &in.Notes); err != nil {
			return nil, err
		}
		in.Expects1099 = flag != 0
		out = append(out, in)
	}
	return out, rows.Err()
}

// --- expenses ---

func (s Store) AddExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	err := s.withDB(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`INSERT INTO expenses(category, description, amount_cents, date, business_purpose, created_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			e.Category, e.Description, e.AmountCents, e.Date, e.BusinessPurpose, nowUnixMS())
		if err != nil {
			return err
		}
		e.ID, err = res.LastInsertId()
		return err
	})
	return e, err
}

func (s Store) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	var out []model.Expense
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		out, err = loadExpenses(ctx, db)
		return err
	})
	return out, err
}

func (s Store) UpdateExpense(ctx context.Context, e model.Expense) error {
	return s.execOne(ctx,
		`UPDATE expenses SET category = ?, description = ?, amount_cents = ?, date = ?, business_purpose = ?
		 WHERE id = ?`,
		e.Category, e.Description, e.AmountCents, e.Date, e.BusinessPurpose, e.ID)
}

func (s Store) DeleteExpense(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "expenses", id)
}

func loadExpenses(ctx context.Context, db *sql.DB) ([]model.Expense, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, category, description, amount_cents, date, business_purpose
		 FROM expenses ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.AmountCents, &e.Date, &e.BusinessPurpose); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// --- mileage ---

func (s Store) AddTrip(ctx context.Context, t model.Trip) (model.Trip, error) {
	err := s.withDB(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`INSERT INTO mileage(start_location, destination, miles, business_purpose, date, deduction_cents, created_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?, ?)`,
			t.StartLocation, t.Destination, t.Miles, t.BusinessPurpose, t.Date, t.DeductionCents, nowUnixMS())
		if err != nil {
			return err
		}
		t.ID, err = res.LastInsertId()
		return err
	})
	return t, err
}

func (s Store) ListTrips(ctx context.Context) ([]model.Trip, error) {
	var out []model.Trip
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		out, err = loadTrips(ctx, db)
		return err
	})
	return out, err
}

func (s Store) UpdateTrip(ctx context.Context, t model.Trip) error {
	return s.execOne(ctx,
		`UPDATE mileage SET start_location = ?, destination = ?, miles = ?, business_purpose = ?, date = ?, deduction_cents = ?
		 WHERE id = ?`,
		t.StartLocation, t.Destination, t.Miles, t.BusinessPurpose, t.Date, t.DeductionCents, t.ID)
}

func (s Store) DeleteTrip(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "mileage", id)
}

func loadTrips(ctx context.Context, db *sql.DB) ([]model.Trip, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, start_location, destination, miles, business_purpose, date, deduction_cents
		 FROM mileage ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Trip{}
	for rows.Next() {
		var t model.Trip
		if err := rows.Scan(&t.ID, &t.StartLocation, &t.Destination, &t.Miles, &t.BusinessPurpose, &t.Date, &t.DeductionCents); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// --- utilities ---

func (s Store) AddUtility(ctx context.Context, u model.Utility) (model.Utility, error) {
	err := s.withDB(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`INSERT INTO utilities(utility_type, monthly_amount_cents, business_percent, monthly_deduction_cents, annual_deduction_cents, created_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			u.UtilityType, u.MonthlyAmountCents, u.BusinessPercent, u.MonthlyDeductionCents, u.AnnualDeductionCents, nowUnixMS())
		if err != nil {
			return err
		}
		u.ID, err = res.LastInsertId()
		return err
	})
	return u, err
}

func (s Store) ListUtilities(ctx context.Context) ([]model.Utility, error) {
	var out []model.Utility
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		out, err = loadUtilities(ctx, db)
		return err
	})
	return out, err
}

func (s Store) UpdateUtility(ctx context.Context, u model.Utility) error {
	return s.execOne(ctx,
		`UPDATE utilities SET utility_type = ?, monthly_amount_cents = ?, business_percent = ?, monthly_deduction_cents = ?, annual_deduction_cents = ?
		 WHERE id = ?`,
		u.UtilityType, u.MonthlyAmountCents, u.BusinessPercent, u.MonthlyDeductionCents, u.AnnualDeductionCents, u.ID)
}

func (s Store) DeleteUtility(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "utilities", id)
}

func loadUtilities(ctx context.Context, db *sql.DB) ([]model.Utility, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, utility_type, monthly_amount_cents, business_percent, monthly_deduction_cents, annual_deduction_cents
		 FROM utilities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Utility{}
	for rows.Next() {
		var u model.Utility
		if err := rows.Scan(&u.ID, &u.UtilityType, &u.MonthlyAmountCents, &u.BusinessPercent, &u.MonthlyDeductionCents, &u.AnnualDeductionCents); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// --- home office (singleton row) ---

// SetHomeOffice replaces the home-office configuration. Replace-all keeps
// the singleton invariant without an upsert.
func (s Store) SetHomeOffice(ctx context.Context, ho model.HomeOffice) error {
	return s.withDB(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, `DELETE FROM home_office`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO home_office(method, office_square_feet, home_square_feet, business_percent, annual_deduction_cents, created_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			string(ho.Method), ho.OfficeSquareFeet, ho.HomeSquareFeet, ho.BusinessPercent, ho.AnnualDeductionCents, nowUnixMS()); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// GetHomeOffice returns nil when no configuration has been saved.
func (s Store) GetHomeOffice(ctx context.Context) (*model.HomeOffice, error) {
	var ho *model.HomeOffice
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		ho, err = loadHomeOffice(ctx, db)
		return err
	})
	return ho, err
}

func loadHomeOffice(ctx context.Context, db *sql.DB) (*model.HomeOffice, error) {
	row := db.QueryRowContext(ctx,
		`SELECT method, office_square_feet, home_square_feet, business_percent, annual_deduction_cents
		 FROM home_office ORDER BY id DESC LIMIT 1`)
	var ho model.HomeOffice
	var method string
	err := row.Scan(&method, &ho.OfficeSquareFeet, &ho.HomeSquareFeet, &ho.BusinessPercent, &ho.AnnualDeductionCents)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ho.Method = model.HomeOfficeMethod(method)
	return &ho, nil
}

// --- tax settings (singleton row) ---

func (s Store) SetTaxSettings(ctx context.Context, ts model.TaxSettings) error {
	return s.withDB(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, `DELETE FROM tax_settings`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tax_settings(business_name, tax_year, filing_status, other_income_cents, prior_year_tax_cents, created_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			ts.BusinessName, ts.TaxYear, ts.FilingStatus, ts.OtherIncomeCents, ts.PriorYearTaxCents, nowUnixMS()); err != nil {
			return err
		}
		return tx.Commit()
	})
}

func (s Store) GetTaxSettings(ctx context.Context) (*model.TaxSettings, error) {
	var ts *model.TaxSettings
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		ts, err = loadTaxSettings(ctx, db)
		return err
	})
	return ts, err
}

func loadTaxSettings(ctx context.Context, db *sql.DB) (*model.TaxSettings, error) {
	row := db.QueryRowContext(ctx,
		`SELECT business_name, tax_year, filing_status, other_income_cents, prior_year_tax_cents
		 FROM tax_settings ORDER BY id DESC LIMIT 1`)
	var ts model.TaxSettings
	err := row.Scan(&ts.BusinessName, &ts.TaxYear, &ts.FilingStatus, &ts.OtherIncomeCents, &ts.PriorYearTaxCents)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// --- tax payments ---

func (s Store) AddTaxPayment(ctx context.Context, p model.TaxPayment) (model.TaxPayment, error) {
	err := s.withDB(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`INSERT INTO tax_payments(quarter, amount_cents, payment_date, payment_method, confirmation_number, created_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			p.Quarter, p.AmountCents, p.PaymentDate, p.PaymentMethod, p.ConfirmationNumber, nowUnixMS())
		if err != nil {
			return err
		}
		p.ID, err = res.LastInsertId()
		return err
	})
	return p, err
}

func (s Store) ListTaxPayments(ctx context.Context) ([]model.TaxPayment, error) {
	var out []model.TaxPayment
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		out, err = loadTaxPayments(ctx, db)
		return err
	})
	return out, err
}

func (s Store) UpdateTaxPayment(ctx context.Context, p model.TaxPayment) error {
	return s.execOne(ctx,
		`UPDATE tax_payments SET quarter = ?, amount_cents = ?, payment_date = ?, payment_method = ?, confirmation_number = ?
		 WHERE id = ?`,
		p.Quarter, p.AmountCents, p.PaymentDate, p.PaymentMethod, p.ConfirmationNumber, p.ID)
}

func (s Store) DeleteTaxPayment(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "tax_payments", id)
}

func loadTaxPayments(ctx context.Context, db *sql.DB) ([]model.TaxPayment, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, quarter, amount_cents, payment_date, payment_method, confirmation_number
		 FROM tax_payments ORDER BY payment_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TaxPayment{}
	for rows.Next() {
		var p model.TaxPayment
		if err := rows.Scan(&p.ID, &p.Quarter, &p.AmountCents, &p.PaymentDate, &p.PaymentMethod, &p.ConfirmationNumber); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// --- savings goals ---

func (s Store) AddSavingsGoal(ctx context.Context, g model.SavingsGoal) (model.SavingsGoal, error) {
	err := s.withDB(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`INSERT INTO savings_goals(name, target_cents, current_cents, target_date, goal_type, created_at_unixms)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			g.Name, g.TargetCents, g.CurrentCents, g.TargetDate, g.GoalType, nowUnixMS())
		if err != nil {
			return err
		}
		g.ID, err = res.LastInsertId()
		return err
	})
	return g, err
}

func (s Store) ListSavingsGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	var out []model.SavingsGoal
	err := s.withDB(ctx, func(db *sql.DB) error {
		var err error
		out, err = loadSavingsGoals(ctx, db)
		return err
	})
	return out, err
}

func (s Store) UpdateSavingsGoal(ctx context.Context, g model.SavingsGoal) error {
	return s.execOne(ctx,
		`UPDATE savings_goals SET name = ?, target_cents = ?, current_cents = ?, target_date = ?, goal_type = ?
		 WHERE id = ?`,
		g.Name, g.TargetCents, g.CurrentCents, g.TargetDate, g.GoalType, g.ID)
}

func (s Store) DeleteSavingsGoal(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "savings_goals", id)
}

func loadSavingsGoals(ctx context.Context, db *sql.DB) ([]model.SavingsGoal, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, target_cents, current_cents, target_date, goal_type
		 FROM savings_goals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SavingsGoal{}
	for rows.Next() {
		var g model.SavingsGoal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetCents, &g.CurrentCents, &g.TargetDate, &g.GoalType); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// --- shared ---

// deleteByID removes one row, ErrNotFound when the id does not exist.
// table is always one of this package's fixed table names.
func (s Store) deleteByID(ctx context.Context, table string, id int64) error {
	return s.execOne(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
}

// execOne runs a statement that must touch exactly one row; ErrNotFound
// when it touches none.
func (s Store) execOne(ctx context.Context, query string, args ...any) error {
	return s.withDB(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
