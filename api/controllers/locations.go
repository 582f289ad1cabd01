package controllers

import (
	"net/http"

	"github.com/openskyvn/paragliding-backend/api/responses"
	"github.com/openskyvn/paragliding-backend/internal/pricing"
)

// Locations serves the static flight-site catalog the booking widget renders.
func Locations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations := pricing.All()
		out := make([]locationResponse, 0, len(locations))
		for _, loc := range locations {
			out = append(out, newLocationResponse(loc))
		}
		responses.WriteSuccess(w, map[string]any{"locations": out})
	}
}

type locationResponse struct {
	Key          string                   `json:"key"`
	Names        map[string]string        `json:"names"`
	WeekdayPrice pricing.Money            `json:"weekday_price"`
	WeekendPrice pricing.Money            `json:"weekend_price"`
	Addons       map[string]pricing.Money `json:"addons"`
	Included     []string                 `json:"included,omitempty"`
	Excluded     []string                 `json:"excluded,omitempty"`
}

func newLocationResponse(loc *pricing.LocationConfig) locationResponse {
	addons := make(map[string]pricing.Money, len(loc.Addons))
	for kind, money := range loc.Addons {
		addons[kind.String()] = money
	}
	return locationResponse{
		Key:          loc.Key,
		Names:        loc.Names,
		WeekdayPrice: loc.WeekdayPrice,
		WeekendPrice: loc.WeekendPrice,
		Addons:       addons,
		Included:     loc.Included,
		Excluded:     loc.Excluded,
	}
}
