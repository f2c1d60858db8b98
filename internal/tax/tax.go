// Package tax implements the Schedule C arithmetic behind the dashboard:
// self-employment tax, the estimated income tax bracket, and the standard
// mileage / home-office / utility deductions. All money is cents.
package tax

import "math"

const (
	// IRS standard mileage rate, 2024: $0.67 per business mile.
	MileageRateCents = 67

	// Simplified home-office method: $5 per square foot, capped at $1,500.
	simplifiedRateCentsPerSqFt = 500
	simplifiedCapCents         = 150000

	// SE tax applies to 92.35% of net profit at 15.3%.
	seIncomeFactor = 0.9235
	seTaxRate      = 0.153

	// Flat estimate for federal income tax (22% bracket assumption).
	incomeTaxRate = 0.22
)

// SelfEmploymentTax returns the SE tax owed on a net profit, zero when the
// business ran at a loss.
func SelfEmploymentTax(netProfitCents int64) int64 {
	if netProfitCents <= 0 {
		return 0
	}
	seIncome := float64(netProfitCents) * seIncomeFactor
	return int64(math.Round(seIncome * seTaxRate))
}

// EstimatedIncomeTax returns the flat-bracket income tax estimate over net
// profit plus other household income. Zero when profit is non-positive.
func EstimatedIncomeTax(netProfitCents, otherIncomeCents int64) int64 {
	if netProfitCents <= 0 {
		return 0
	}
	total := float64(netProfitCents + otherIncomeCents)
	return int64(math.Round(total * incomeTaxRate))
}

// MileageDeduction converts business miles to a deduction at the standard rate.
func MileageDeduction(miles float64) int64 {
	if miles <= 0 {
		return 0
	}
	return int64(math.Round(miles * MileageRateCents))
}

// SimplifiedHomeOffice returns the simplified-method deduction for an office
// of the given size.
func SimplifiedHomeOffice(officeSquareFeet int) int64 {
	if officeSquareFeet <= 0 {
		return 0
	}
	d := int64(officeSquareFeet) * simplifiedRateCentsPerSqFt
	if d > simplifiedCapCents {
		return simplifiedCapCents
	}
	return d
}

// ActualHomeOfficePercent returns the business-use percentage for the actual
// method, rounded to two decimals. Zero when the home size is unknown.
func ActualHomeOfficePercent(officeSquareFeet, homeSquareFeet int) float64 {
	if officeSquareFeet <= 0 || homeSquareFeet <= 0 {
		return 0
	}
	pct := float64(officeSquareFeet) / float64(homeSquareFeet) * 100
	return math.Round(pct*100) / 100
}

// UtilityDeduction prorates a monthly utility bill by business-use percentage,
// returning the monthly and annual deductible amounts.
func UtilityDeduction(monthlyAmountCents int64, businessPercent float64) (monthlyCents, annualCents int64) {
	if monthlyAmountCents <= 0 || businessPercent <= 0 {
		return 0, 0
	}
	monthly := int64(math.Round(float64(monthlyAmountCents) * businessPercent / 100))
	return monthly, monthly * 12
}
