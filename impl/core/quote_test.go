package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"DriveLine/entity"
)

func TestBuildQuotation(t *testing.T) {
	car := entity.CarModel{
		ID:    "car_xpander_gls",
		Name:  "Mitsubishi Xpander GLS",
		Price: 1266000,
	}

	q := BuildQuotation(car, 0.20, 5)

	assert.Equal(t, 253200.0, q.Downpayment)
	assert.Equal(t, 1012800.0, q.LoanAmount)
	assert.Equal(t, 253200.0, q.Interest)
	assert.Equal(t, 21100.0, q.Monthly)
}

func TestBuildQuotation_ShortTerm(t *testing.T) {
	car := entity.CarModel{Price: 1000000}

	q := BuildQuotation(car, 0.50, 1)

	assert.Equal(t, 500000.0, q.Downpayment)
	assert.Equal(t, 500000.0, q.LoanAmount)
	assert.Equal(t, 25000.0, q.Interest)
	assert.Equal(t, 43750.0, q.Monthly)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1,266,000", formatPrice(1266000))
	assert.Equal(t, "934,000", formatPrice(934000))
	assert.Equal(t, "21,100", formatPrice(21100))
	assert.Equal(t, "1,234.56", formatPrice(1234.56))
	assert.Equal(t, "999", formatPrice(999))
	assert.Equal(t, "0", formatPrice(0))
}
