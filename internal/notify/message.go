package notify

import (
	"fmt"
	"strings"

	"github.com/openskyvn/paragliding-backend/internal/pricing"
	"github.com/openskyvn/paragliding-backend/pkg/db/models"
)

// RenderSummary produces the human-readable booking summary delivered to every
// recipient. One render per booking, shared across the fan-out.
func RenderSummary(booking *models.Booking, customer *models.Customer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New booking %s\n", booking.ID)

	locationLabel := booking.LocationKey
	if loc, ok := pricing.Resolve(booking.LocationKey); ok {
		locationLabel = fmt.Sprintf("%s (%s)", loc.DisplayName("en"), loc.Key)
	}
	fmt.Fprintf(&b, "Location: %s\n", locationLabel)

	fmt.Fprintf(&b, "Date: %s", booking.FlightDate.Format("2006-01-02"))
	if booking.TimeSlot != "" {
		fmt.Fprintf(&b, " (%s)", booking.TimeSlot)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Party size: %d\n", booking.PartySize)

	contactParts := []string{booking.Contact.Phone}
	if customer != nil && customer.Name != nil && *customer.Name != "" {
		contactParts = append([]string{*customer.Name}, contactParts...)
	}
	if booking.Contact.Email != "" {
		contactParts = append(contactParts, booking.Contact.Email)
	}
	fmt.Fprintf(&b, "Customer: %s\n", strings.Join(contactParts, ", "))

	if booking.Contact.PickupLocation != "" {
		fmt.Fprintf(&b, "Pickup: %s\n", booking.Contact.PickupLocation)
	}
	if booking.Contact.SpecialRequest != "" {
		fmt.Fprintf(&b, "Special request: %s\n", booking.Contact.SpecialRequest)
	}

	var addonParts []string
	for _, line := range booking.Price.Addons {
		if line.Quantity > 0 {
			addonParts = append(addonParts, fmt.Sprintf("%s x%d", line.Kind, line.Quantity))
		}
	}
	if len(addonParts) > 0 {
		fmt.Fprintf(&b, "Add-ons: %s\n", strings.Join(addonParts, ", "))
	}

	fmt.Fprintf(&b, "Total: %s %s (avg %s/person)\n",
		formatAmount(booking.Price.Total),
		booking.Price.Currency,
		formatAmount(booking.Price.PerPersonAverage))
	fmt.Fprintf(&b, "Status: %s", booking.Status)

	return b.String()
}

// formatAmount groups digits by thousands for readability.
func formatAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
