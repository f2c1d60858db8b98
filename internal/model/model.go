package model

// Tab identifies one of the dashboard's fixed tabs.
type Tab string

const (
	TabOverview   Tab = "overview"
	TabIncome     Tab = "income"
	TabExpenses   Tab = "expenses"
	TabMileage    Tab = "mileage"
	TabDeductions Tab = "deductions"
	TabTaxes      Tab = "taxes"
)

// Tabs lists every tab in display order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabIncome, TabExpenses, TabMileage, TabDeductions, TabTaxes}
}

// ValidTab reports whether s names a known tab.
func ValidTab(s string) bool {
	for _, t := range Tabs() {
		if string(t) == s {
			return true
		}
	}
	return false
}

// RecordType identifies the kind of record currently selected in the UI.
type RecordType string

const (
	RecordIncome      RecordType = "income"
	RecordExpense     RecordType = "expense"
	RecordMileage     RecordType = "mileage"
	RecordUtility     RecordType = "utility"
	RecordTaxPayment  RecordType = "tax-payment"
	RecordSavingsGoal RecordType = "savings-goal"
)

// ValidRecordType reports whether s names a known record type.
func ValidRecordType(s string) bool {
	switch RecordType(s) {
	case RecordIncome, RecordExpense, RecordMileage, RecordUtility, RecordTaxPayment, RecordSavingsGoal:
		return true
	}
	return false
}

// HomeOfficeMethod selects how the home-office deduction is computed.
type HomeOfficeMethod string

const (
	HomeOfficeSimplified HomeOfficeMethod = "simplified"
	HomeOfficeActual     HomeOfficeMethod = "actual"
)

// Income is one payment received from a client.
// Amounts are cents; dates are YYYY-MM-DD strings (validated at the edges).
type Income struct {
	ID          int64  `json:"id"`
	Client      string `json:"client"`
	ServiceType string `json:"serviceType"`
	AmountCents int64  `json:"amountCents"`
	Date        string `json:"date"`
	Expects1099 bool   `json:"expects1099"`
	Notes       string `json:"notes,omitempty"`
}

// Expense is one deductible business expense.
type Expense struct {
	ID              int64  `json:"id"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	AmountCents     int64  `json:"amountCents"`
	Date            string `json:"date"`
	BusinessPurpose string `json:"businessPurpose"`
}

// Trip is one business mileage entry. DeductionCents is derived from Miles
// at the IRS standard rate when the trip is recorded.
type Trip struct {
	ID              int64   `json:"id"`
	StartLocation   string  `json:"startLocation"`
	Destination     string  `json:"destination"`
	Miles           float64 `json:"miles"`
	BusinessPurpose string  `json:"businessPurpose"`
	Date            string  `json:"date"`
	DeductionCents  int64   `json:"deductionCents"`
}

// Utility is a recurring home utility prorated by business-use percentage.
type Utility struct {
	ID                    int64   `json:"id"`
	UtilityType           string  `json:"utilityType"`
	MonthlyAmountCents    int64   `json:"monthlyAmountCents"`
	BusinessPercent       float64 `json:"businessPercent"`
	MonthlyDeductionCents int64   `json:"monthlyDeductionCents"`
	AnnualDeductionCents  int64   `json:"annualDeductionCents"`
}

// HomeOffice is the single home-office configuration (at most one row).
type HomeOffice struct {
	Method               HomeOfficeMethod `json:"method"`
	OfficeSquareFeet     int              `json:"officeSquareFeet,omitempty"`
	HomeSquareFeet       int              `json:"homeSquareFeet,omitempty"`
	BusinessPercent      float64          `json:"businessPercent,omitempty"`
	AnnualDeductionCents int64            `json:"annualDeductionCents"`
}

// TaxSettings is the single tax profile (at most one row).
type TaxSettings struct {
	BusinessName      string `json:"businessName"`
	TaxYear           int    `json:"taxYear"`
	FilingStatus      string `json:"filingStatus"`
	OtherIncomeCents  int64  `json:"otherIncomeCents"`
	PriorYearTaxCents int64  `json:"priorYearTaxCents"`
}

// TaxPayment is one estimated quarterly tax payment.
type TaxPayment struct {
	ID                 int64  `json:"id"`
	Quarter            string `json:"quarter"` // "Q1".."Q4"
	AmountCents        int64  `json:"amountCents"`
	PaymentDate        string `json:"paymentDate"`
	PaymentMethod      string `json:"paymentMethod,omitempty"`
	ConfirmationNumber string `json:"confirmationNumber,omitempty"`
}

// SavingsGoal tracks money set aside toward a target.
type SavingsGoal struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TargetCents  int64  `json:"targetCents"`
	CurrentCents int64  `json:"currentCents"`
	TargetDate   string `json:"targetDate,omitempty"`
	GoalType     string `json:"goalType,omitempty"` // e.g. "taxes", "equipment", "general"
}

// NotificationKind classifies a toast.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is a transient UI toast held in the state tree until dismissed.
type Notification struct {
	ID      int64            `json:"id"`
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}
