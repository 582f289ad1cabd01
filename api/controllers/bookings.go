package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openskyvn/paragliding-backend/api/middleware"
	"github.com/openskyvn/paragliding-backend/api/responses"
	"github.com/openskyvn/paragliding-backend/api/validators"
	bookingsvc "github.com/openskyvn/paragliding-backend/internal/bookings"
	"github.com/openskyvn/paragliding-backend/pkg/db/models"
	pkgerrors "github.com/openskyvn/paragliding-backend/pkg/errors"
	"github.com/openskyvn/paragliding-backend/pkg/logger"
	"github.com/openskyvn/paragliding-backend/pkg/types"
)

const bookingDateLayout = "2006-01-02"

// CreateBooking handles the public submission endpoint. The caller address is
// forwarded to the verification provider.
func CreateBooking(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		var payload bookingsvc.CreateBookingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), payload, middleware.ClientIP(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetBooking returns one booking with its stored price snapshot.
func GetBooking(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		id, err := pathUUID(r, "bookingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBookingDetail(booking))
	}
}

// TransitionBooking moves a booking through its status machine.
func TransitionBooking(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		id, err := pathUUID(r, "bookingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload bookingsvc.TransitionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Transition(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBookingDetail(booking))
	}
}

// CustomerBookings lists a customer's bookings, newest first.
func CustomerBookings(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		customerID, err := pathUUID(r, "customerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListByCustomer(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		details := make([]bookingDetail, 0, len(records))
		for i := range records {
			details = append(details, newBookingDetail(&records[i]))
		}
		responses.WriteSuccess(w, map[string]any{"bookings": details})
	}
}

type bookingDetail struct {
	ID                uuid.UUID             `json:"id"`
	CustomerID        uuid.UUID             `json:"customer_id"`
	Location          string                `json:"location"`
	Date              string                `json:"date"`
	TimeSlot          string                `json:"time_slot,omitempty"`
	PartySize         int                   `json:"party_size"`
	Contact           types.ContactSnapshot `json:"contact"`
	Guests            types.GuestRoster     `json:"guests,omitempty"`
	Addons            types.AddonSelections `json:"addons,omitempty"`
	Price             types.PriceBreakdown  `json:"price"`
	ClientQuotedTotal *int64                `json:"client_quoted_total,omitempty"`
	Status            string                `json:"status"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

func newBookingDetail(booking *models.Booking) bookingDetail {
	if booking == nil {
		return bookingDetail{}
	}
	return bookingDetail{
		ID:                booking.ID,
		CustomerID:        booking.CustomerID,
		Location:          booking.LocationKey,
		Date:              booking.FlightDate.Format(bookingDateLayout),
		TimeSlot:          booking.TimeSlot,
		PartySize:         booking.PartySize,
		Contact:           booking.Contact,
		Guests:            booking.Guests,
		Addons:            booking.Addons,
		Price:             booking.Price,
		ClientQuotedTotal: booking.ClientQuotedTotal,
		Status:            booking.Status.String(),
		CreatedAt:         booking.CreatedAt,
		UpdatedAt:         booking.UpdatedAt,
	}
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").
			WithDetails([]string{param})
	}
	return id, nil
}
