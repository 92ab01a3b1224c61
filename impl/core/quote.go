package core

import (
	"DriveLine/entity"
	"math"
)

const (
	defaultDpPercent = 0.20
	defaultLoanYears = 5

	// Flat annual interest applied to the full loan amount per year.
	annualRate = 0.05
)

// BuildQuotation computes the flat-rate financing breakdown for a car.
func BuildQuotation(car entity.CarModel, dpPercent float64, years int) entity.Quotation {
	downpayment := car.Price * dpPercent
	loanAmount := car.Price - downpayment
	interest := loanAmount * annualRate * float64(years)
	monthly := (loanAmount + interest) / float64(years*12)

	return entity.Quotation{
		Car:         car,
		DpPercent:   dpPercent,
		Years:       years,
		Downpayment: round2(downpayment),
		LoanAmount:  round2(loanAmount),
		Interest:    round2(interest),
		Monthly:     round2(monthly),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
