package bookings

import (
	"strings"
	"time"

	"github.com/openskyvn/paragliding-backend/pkg/enums"
	pkgerrors "github.com/openskyvn/paragliding-backend/pkg/errors"
	"github.com/openskyvn/paragliding-backend/pkg/types"
)

const dateLayout = "2006-01-02"

// ContactRequest is the inbound contact block.
type ContactRequest struct {
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	PickupLocation string `json:"pickup_location"`
	SpecialRequest string `json:"special_request"`
}

// GuestRequest is one passenger on the inbound roster.
type GuestRequest struct {
	Name        string   `json:"name"`
	DateOfBirth *string  `json:"date_of_birth"`
	Gender      *string  `json:"gender"`
	IDNumber    *string  `json:"id_number"`
	WeightKG    *float64 `json:"weight_kg"`
	Nationality *string  `json:"nationality"`
}

// CreateBookingRequest is the booking submission payload. The client may send
// add-ons either as a quantity map or as the older boolean flag map; both are
// collapsed into quantities exactly once at this boundary. Location and date
// are checked in the service, after the verification gate: a bot submission
// must burn its token before it learns anything about field validity.
type CreateBookingRequest struct {
	VerificationToken string          `json:"verification_token"`
	Location          string          `json:"location"`
	Date              string          `json:"date"`
	TimeSlot          string          `json:"time_slot"`
	PartySize         int             `json:"party_size"`
	Currency          string          `json:"currency"`
	Contact           ContactRequest  `json:"contact"`
	GuestName         string          `json:"guest_name"`
	Guests            []GuestRequest  `json:"guests"`
	AddonQuantities   map[string]int  `json:"addon_quantities"`
	AddonFlags        map[string]bool `json:"addons"`
	ClientQuotedTotal *int64          `json:"client_quoted_total"`
}

// QuoteRequest asks for a price preview without creating anything.
type QuoteRequest struct {
	Location        string          `json:"location" validate:"required"`
	Date            string          `json:"date" validate:"required"`
	PartySize       int             `json:"party_size"`
	Currency        string          `json:"currency"`
	AddonQuantities map[string]int  `json:"addon_quantities"`
	AddonFlags      map[string]bool `json:"addons"`
}

// TransitionRequest moves a booking through its status machine.
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// parseDate rejects anything that is not a bare ISO date.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date").
			WithDetails([]string{"date"})
	}
	return parsed, nil
}

// parseCurrency defaults to VND when the client sends nothing.
func parseCurrency(value string) (enums.Currency, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return enums.CurrencyVND, nil
	}
	currency, err := enums.ParseCurrency(value)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency").
			WithDetails([]string{"currency"})
	}
	return currency, nil
}

// normalizePartySize defaults a missing party size to the roster length, then
// to one, and clamps the result.
func normalizePartySize(requested int, rosterLen int) int {
	size := requested
	if size <= 0 {
		size = rosterLen
	}
	if size <= 0 {
		size = 1
	}
	if size < 1 {
		size = 1
	}
	if size > 100 {
		size = 100
	}
	return size
}

// normalizeAddons collapses the two inbound add-on shapes into one quantity
// map. An explicit quantity wins; a legacy boolean flag without a quantity
// means "the whole party". Unknown add-on keys are dropped. Quantities are
// clamped to [0, partySize]; the pricing engine re-clamps, but normalizing
// here keeps a single source of truth in the stored selections.
func normalizeAddons(quantities map[string]int, flags map[string]bool, partySize int) types.AddonSelections {
	selections := types.AddonSelections{}

	for raw, qty := range quantities {
		kind, err := enums.ParseAddonKind(raw)
		if err != nil {
			continue
		}
		if qty < 0 {
			qty = 0
		}
		if qty > partySize {
			qty = partySize
		}
		selections[kind] = qty
	}

	for raw, enabled := range flags {
		if !enabled {
			continue
		}
		kind, err := enums.ParseAddonKind(raw)
		if err != nil {
			continue
		}
		if _, explicit := selections[kind]; explicit {
			continue
		}
		selections[kind] = partySize
	}

	for kind, qty := range selections {
		if qty == 0 {
			delete(selections, kind)
		}
	}
	if len(selections) == 0 {
		return nil
	}
	return selections
}

// guestRoster converts the inbound roster, tolerating the single legacy
// guest_name field.
func guestRoster(guests []GuestRequest, legacyName string) types.GuestRoster {
	roster := make(types.GuestRoster, 0, len(guests))
	for _, guest := range guests {
		roster = append(roster, types.Guest{
			Name:        guest.Name,
			DateOfBirth: guest.DateOfBirth,
			Gender:      guest.Gender,
			IDNumber:    guest.IDNumber,
			WeightKG:    guest.WeightKG,
			Nationality: guest.Nationality,
		})
	}
	if len(roster) == 0 && legacyName != "" {
		roster = append(roster, types.Guest{Name: legacyName})
	}
	if len(roster) == 0 {
		return nil
	}
	return roster
}
