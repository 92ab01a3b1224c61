package core

import (
	"DriveLine/entity"
	"fmt"
	"strings"
)

// galleryCards builds the generic-template carousel for the full catalog.
func galleryCards(cars []entity.CarModel) []entity.Card {
	cards := make([]entity.Card, 0, len(cars))
	for _, car := range cars {
		cards = append(cards, entity.Card{
			Title:    car.Name,
			Subtitle: fmt.Sprintf("Starting at ₱%s", formatPrice(car.Price)),
			ImageUrl: car.ImageUrl,
			Buttons: []entity.CardButton{
				{Title: "View Specs", Payload: detailsPrefix + car.ID},
				{Title: "Get Quote", Payload: quotePrefix + car.ID},
				{Title: "Book Test Drive", Payload: testDrivePrefix + car.ID},
			},
		})
	}
	return cards
}

// sendCarDetails renders the one-car spec sheet.
func (c *Core) sendCarDetails(senderID string, car entity.CarModel) error {
	var b strings.Builder

	fmt.Fprintf(&b, "🚗 %s\n", car.Name)
	fmt.Fprintf(&b, "💰 Price: ₱%s\n\n", formatPrice(car.Price))
	if car.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", car.Description)
	}

	b.WriteString("📋 Specifications:\n")
	if car.Specs.Engine != "" {
		fmt.Fprintf(&b, "• Engine: %s\n", car.Specs.Engine)
	}
	if car.Specs.Transmission != "" {
		fmt.Fprintf(&b, "• Transmission: %s\n", car.Specs.Transmission)
	}
	if car.Specs.SeatingCapacity > 0 {
		fmt.Fprintf(&b, "• Seating: %d-seater\n", car.Specs.SeatingCapacity)
	}
	if car.Specs.FuelType != "" {
		fmt.Fprintf(&b, "• Fuel: %s\n", car.Specs.FuelType)
	}
	if car.Specs.Power != "" {
		fmt.Fprintf(&b, "• Power: %s\n", car.Specs.Power)
	}
	if car.Specs.Torque != "" {
		fmt.Fprintf(&b, "• Torque: %s\n", car.Specs.Torque)
	}

	return c.channel.SendText(senderID, b.String())
}

// sendQuotation renders the financing breakdown and a follow-up prompt.
func (c *Core) sendQuotation(senderID string, car entity.CarModel, dpPercent float64, years int) error {
	q := BuildQuotation(car, dpPercent, years)

	var b strings.Builder
	fmt.Fprintf(&b, "💰 Financing Quotation — %s\n\n", car.Name)
	fmt.Fprintf(&b, "Vehicle Price: ₱%s\n", formatPrice(car.Price))
	fmt.Fprintf(&b, "Downpayment (%.0f%%): ₱%s\n", dpPercent*100, formatPrice(q.Downpayment))
	fmt.Fprintf(&b, "Loan Amount: ₱%s\n", formatPrice(q.LoanAmount))
	fmt.Fprintf(&b, "Term: %d years\n\n", years)
	fmt.Fprintf(&b, "Estimated Monthly: ₱%s\n\n", formatPrice(q.Monthly))
	b.WriteString("Would you like to schedule a test drive?")

	if err := c.channel.SendText(senderID, b.String()); err != nil {
		return err
	}

	return c.channel.SendQuickReplies(senderID, "What would you like to do next?", []entity.QuickReply{
		{Title: "Yes, Test Drive", Payload: testDrivePrefix + car.ID},
		{Title: "Check other cars", Payload: showServices},
	})
}

func confirmationMessage(appt entity.Appointment, car entity.CarModel) string {
	var b strings.Builder
	b.WriteString("✅ Test Drive Confirmed!\n\n")
	fmt.Fprintf(&b, "🚗 %s\n", car.Name)
	fmt.Fprintf(&b, "📅 %s\n", appt.DateTime.Format("Monday, January 2 at 3:04 PM"))
	fmt.Fprintf(&b, "👤 %s\n", appt.Customer.Name)
	fmt.Fprintf(&b, "🔖 Reference: %s\n\n", appt.ID)
	b.WriteString("See you at the showroom! Bring a valid driver's license.")
	return b.String()
}

// formatPrice renders an amount with comma thousands separators and two
// decimals when the amount has cents.
func formatPrice(amount float64) string {
	whole := int64(amount)
	cents := amount - float64(whole)

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if cents > 0.004 {
		b.WriteString(fmt.Sprintf("%.2f", cents)[1:])
	}
	return b.String()
}
