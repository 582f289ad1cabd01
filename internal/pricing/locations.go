package pricing

import (
	"sort"
	"strings"

	"github.com/openskyvn/paragliding-backend/pkg/enums"
)

// Money holds an amount per currency. A missing currency means the figure is
// not configured in that currency and may fall back to conversion.
type Money map[enums.Currency]int64

// LocationConfig is one entry of the static flight-site table, read-only
// after startup.
type LocationConfig struct {
	Key          string
	Names        map[string]string
	WeekdayPrice Money
	WeekendPrice Money
	Addons       map[enums.AddonKind]Money
	Included     []string
	Excluded     []string
}

// DisplayName returns the name for the requested language, falling back to
// English and then to the key.
func (l *LocationConfig) DisplayName(lang string) string {
	if name, ok := l.Names[lang]; ok {
		return name
	}
	if name, ok := l.Names["en"]; ok {
		return name
	}
	return l.Key
}

// BasePrice returns the configured base price table for the given weekend
// flag.
func (l *LocationConfig) BasePrice(weekend bool) Money {
	if weekend {
		return l.WeekendPrice
	}
	return l.WeekdayPrice
}

var locationTable = map[string]*LocationConfig{
	"khau_pha": {
		Key: "khau_pha",
		Names: map[string]string{
			"en": "Khau Pha Pass",
			"vi": "Đèo Khau Phạ",
		},
		WeekdayPrice: Money{enums.CurrencyVND: 2_190_000, enums.CurrencyUSD: 88},
		WeekendPrice: Money{enums.CurrencyVND: 2_590_000, enums.CurrencyUSD: 104},
		Addons: map[enums.AddonKind]Money{
			enums.AddonPickup:       {enums.CurrencyVND: 300_000, enums.CurrencyUSD: 12},
			enums.AddonAerialCamera: {enums.CurrencyVND: 450_000, enums.CurrencyUSD: 18},
			enums.AddonCamera360:    {enums.CurrencyVND: 550_000, enums.CurrencyUSD: 22},
		},
		Included: []string{"tandem flight", "certified pilot", "insurance", "flight certificate"},
		Excluded: []string{"meals", "accommodation"},
	},
	"doi_bu": {
		Key: "doi_bu",
		Names: map[string]string{
			"en": "Doi Bu Mountain",
			"vi": "Núi Đồi Bù",
		},
		WeekdayPrice: Money{enums.CurrencyVND: 1_690_000},
		WeekendPrice: Money{enums.CurrencyVND: 1_890_000},
		Addons: map[enums.AddonKind]Money{
			enums.AddonPickup:       {enums.CurrencyVND: 250_000},
			enums.AddonAerialCamera: {enums.CurrencyVND: 400_000},
		},
		Included: []string{"tandem flight", "certified pilot", "insurance"},
		Excluded: []string{"meals", "transfer from Hanoi"},
	},
	"son_tra": {
		Key: "son_tra",
		Names: map[string]string{
			"en": "Son Tra Peninsula",
			"vi": "Bán đảo Sơn Trà",
		},
		WeekdayPrice: Money{enums.CurrencyVND: 1_990_000, enums.CurrencyUSD: 80},
		WeekendPrice: Money{enums.CurrencyVND: 2_290_000, enums.CurrencyUSD: 92},
		Addons: map[enums.AddonKind]Money{
			enums.AddonPickup:    {enums.CurrencyVND: 280_000, enums.CurrencyUSD: 11},
			enums.AddonCamera360: {enums.CurrencyVND: 500_000, enums.CurrencyUSD: 20},
		},
		Included: []string{"tandem flight", "certified pilot", "insurance", "flight video"},
		Excluded: []string{"meals", "accommodation"},
	},
}

// Resolve looks up a location by key first, then by display name in any
// configured language (case-insensitive). Unknown inputs return false, never
// a default location.
func Resolve(keyOrName string) (*LocationConfig, bool) {
	needle := strings.TrimSpace(keyOrName)
	if needle == "" {
		return nil, false
	}
	if loc, ok := locationTable[strings.ToLower(needle)]; ok {
		return loc, true
	}
	for _, loc := range locationTable {
		for _, name := range loc.Names {
			if strings.EqualFold(name, needle) {
				return loc, true
			}
		}
	}
	return nil, false
}

// Keys returns the sorted list of bookable location keys.
func Keys() []string {
	keys := make([]string, 0, len(locationTable))
	for key := range locationTable {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// All returns every location config sorted by key.
func All() []*LocationConfig {
	out := make([]*LocationConfig, 0, len(locationTable))
	for _, key := range Keys() {
		out = append(out, locationTable[key])
	}
	return out
}
