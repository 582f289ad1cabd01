package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openskyvn/paragliding-backend/pkg/enums"
	"github.com/openskyvn/paragliding-backend/pkg/types"
)

const (
	// MinPartySize and MaxPartySize bound the clamped party size. Requests
	// outside the range are clamped, never rejected.
	MinPartySize = 1
	MaxPartySize = 100

	// DefaultVNDPerUSD is the fixed fallback conversion rate used when a
	// price is configured in only one currency. It is an approximation, not
	// a live FX feed.
	DefaultVNDPerUSD = 25_000
)

type discountTier struct {
	minPartySize int
	perPerson    Money
}

// Group discounts are per person and selected by the highest threshold at or
// below the party size.
var discountTiers = []discountTier{
	{minPartySize: 6, perPerson: Money{enums.CurrencyVND: 200_000, enums.CurrencyUSD: 8}},
	{minPartySize: 4, perPerson: Money{enums.CurrencyVND: 100_000, enums.CurrencyUSD: 4}},
	{minPartySize: 3, perPerson: Money{enums.CurrencyVND: 70_000, enums.CurrencyUSD: 3}},
	{minPartySize: 2, perPerson: Money{enums.CurrencyVND: 50_000, enums.CurrencyUSD: 2}},
}

// Engine computes itemized price breakdowns. It is pure: identical inputs
// produce identical output, which lets the server recompute and trust its own
// figure instead of the client preview.
type Engine struct {
	vndPerUSD int64
}

// NewEngine builds an engine with the supplied fallback conversion rate.
// Non-positive rates fall back to DefaultVNDPerUSD.
func NewEngine(vndPerUSD int64) *Engine {
	if vndPerUSD <= 0 {
		vndPerUSD = DefaultVNDPerUSD
	}
	return &Engine{vndPerUSD: vndPerUSD}
}

// ClampPartySize bounds the requested party size to [MinPartySize, MaxPartySize].
func ClampPartySize(n int) int {
	if n < MinPartySize {
		return MinPartySize
	}
	if n > MaxPartySize {
		return MaxPartySize
	}
	return n
}

// Quote computes the full breakdown for one booking. Add-on quantities are
// clamped to [0, partySize]; an add-on without a resolvable unit price in the
// target currency is forced to quantity 0 before totaling.
func (e *Engine) Quote(loc *LocationConfig, date time.Time, partySize int, addons types.AddonSelections, currency enums.Currency) types.PriceBreakdown {
	partySize = ClampPartySize(partySize)

	baseUnit, _ := e.amountIn(loc.BasePrice(isWeekend(date)), currency)
	baseTotal := baseUnit * int64(partySize)

	var lines []types.AddonLine
	var addonTotal int64
	for _, kind := range enums.AllAddonKinds() {
		qty := addons[kind]
		if qty <= 0 {
			continue
		}
		if qty > partySize {
			qty = partySize
		}
		unit, priced := e.amountIn(loc.Addons[kind], currency)
		if !priced {
			unit = 0
			qty = 0
		}
		subtotal := unit * int64(qty)
		lines = append(lines, types.AddonLine{
			Kind:      kind,
			UnitPrice: unit,
			Quantity:  qty,
			Subtotal:  subtotal,
		})
		addonTotal += subtotal
	}

	discountUnit := e.discountPerPerson(partySize, currency)
	discountTotal := discountUnit * int64(partySize)

	total := baseTotal + addonTotal - discountTotal

	return types.PriceBreakdown{
		Currency:          currency,
		PartySize:         partySize,
		BaseUnitPrice:     baseUnit,
		BaseTotal:         baseTotal,
		Addons:            lines,
		AddonTotal:        addonTotal,
		DiscountPerPerson: discountUnit,
		DiscountTotal:     discountTotal,
		Total:             total,
		PerPersonAverage:  roundedAverage(total, partySize),
	}
}

func (e *Engine) discountPerPerson(partySize int, currency enums.Currency) int64 {
	for _, tier := range discountTiers {
		if partySize >= tier.minPartySize {
			amount, _ := e.amountIn(tier.perPerson, currency)
			return amount
		}
	}
	return 0
}

// amountIn resolves a money table in the target currency, converting from the
// other currency at the fixed fallback rate when needed. The second return is
// false when no figure can be resolved at all.
func (e *Engine) amountIn(m Money, currency enums.Currency) (int64, bool) {
	if m == nil {
		return 0, false
	}
	if v, ok := m[currency]; ok {
		return v, true
	}
	rate := decimal.NewFromInt(e.vndPerUSD)
	switch currency {
	case enums.CurrencyUSD:
		if v, ok := m[enums.CurrencyVND]; ok {
			return decimal.NewFromInt(v).Div(rate).Round(0).IntPart(), true
		}
	case enums.CurrencyVND:
		if v, ok := m[enums.CurrencyUSD]; ok {
			return decimal.NewFromInt(v).Mul(rate).Round(0).IntPart(), true
		}
	}
	return 0, false
}

// roundedAverage rounds the total, not each line item, so repeated
// recomputation cannot drift.
func roundedAverage(total int64, partySize int) int64 {
	if partySize <= 0 {
		return total
	}
	return decimal.NewFromInt(total).
		Div(decimal.NewFromInt(int64(partySize))).
		Round(0).
		IntPart()
}

func isWeekend(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}
