package types

import (
	"github.com/openskyvn/paragliding-backend/pkg/enums"
)

// ContactSnapshot is the contact block copied onto each booking. It is a
// snapshot, not a reference: later edits to the customer record must not
// rewrite booking history.
type ContactSnapshot struct {
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	PickupLocation string `json:"pickup_location,omitempty"`
	SpecialRequest string `json:"special_request,omitempty"`
}

// Guest describes one passenger on the roster.
type Guest struct {
	Name        string   `json:"name"`
	DateOfBirth *string  `json:"date_of_birth,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
	IDNumber    *string  `json:"id_number,omitempty"`
	WeightKG    *float64 `json:"weight_kg,omitempty"`
	Nationality *string  `json:"nationality,omitempty"`
}

// GuestRoster is the jsonb-serialized list of passengers.
type GuestRoster []Guest

// AddonSelections maps add-on kind to purchased quantity.
type AddonSelections map[enums.AddonKind]int

// AddonLine is one itemized add-on entry in a price breakdown.
type AddonLine struct {
	Kind      enums.AddonKind `json:"kind"`
	UnitPrice int64           `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  int64           `json:"subtotal"`
}

// PriceBreakdown is the itemized server-side price computation. Amounts are
// integral units of the target currency (VND has no minor unit; USD figures
// are whole dollars).
type PriceBreakdown struct {
	Currency          enums.Currency `json:"currency"`
	PartySize         int            `json:"party_size"`
	BaseUnitPrice     int64          `json:"base_unit_price"`
	BaseTotal         int64          `json:"base_total"`
	Addons            []AddonLine    `json:"addons,omitempty"`
	AddonTotal        int64          `json:"addon_total"`
	DiscountPerPerson int64          `json:"discount_per_person"`
	DiscountTotal     int64          `json:"discount_total"`
	Total             int64          `json:"total"`
	PerPersonAverage  int64          `json:"per_person_average"`
}

// AddonQuantity returns the purchased quantity for the given kind, zero when
// the line is absent.
func (p PriceBreakdown) AddonQuantity(kind enums.AddonKind) int {
	for _, line := range p.Addons {
		if line.Kind == kind {
			return line.Quantity
		}
	}
	return 0
}
