package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	bookingsvc "github.com/openskyvn/paragliding-backend/internal/bookings"
	"github.com/openskyvn/paragliding-backend/internal/notify"
	"github.com/openskyvn/paragliding-backend/pkg/db/models"
	"github.com/openskyvn/paragliding-backend/pkg/enums"
	pkgerrors "github.com/openskyvn/paragliding-backend/pkg/errors"
	"github.com/openskyvn/paragliding-backend/pkg/types"
)

type stubBookingService struct {
	createResp *bookingsvc.CreateBookingResponse
	createErr  error
	createIP   string

	quoteResp *bookingsvc.QuoteResponse
	quoteErr  error

	booking *models.Booking
	getErr  error

	listed  []models.Booking
	listErr error

	transitioned *models.Booking
	transitErr   error
}

func (s *stubBookingService) Create(ctx context.Context, req bookingsvc.CreateBookingRequest, remoteIP string) (*bookingsvc.CreateBookingResponse, error) {
	s.createIP = remoteIP
	return s.createResp, s.createErr
}

func (s *stubBookingService) Quote(ctx context.Context, req bookingsvc.QuoteRequest) (*bookingsvc.QuoteResponse, error) {
	return s.quoteResp, s.quoteErr
}

func (s *stubBookingService) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.booking, s.getErr
}

func (s *stubBookingService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error) {
	return s.listed, s.listErr
}

func (s *stubBookingService) Transition(ctx context.Context, id uuid.UUID, req bookingsvc.TransitionRequest) (*models.Booking, error) {
	return s.transitioned, s.transitErr
}

func sampleStoredBooking() *models.Booking {
	return &models.Booking{
		ID:          uuid.New(),
		CustomerID:  uuid.New(),
		LocationKey: "khau_pha",
		FlightDate:  time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC),
		PartySize:   4,
		Contact:     types.ContactSnapshot{Phone: "+84912345678"},
		Price: types.PriceBreakdown{
			Currency:         enums.CurrencyVND,
			PartySize:        4,
			Total:            10_560_000,
			PerPersonAverage: 2_640_000,
		},
		Status: enums.BookingStatusPending,
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{
		createResp: &bookingsvc.CreateBookingResponse{
			Booking: bookingsvc.BookingSummary{
				ID:        uuid.New(),
				Location:  "khau_pha",
				PartySize: 4,
				Status:    enums.BookingStatusPending,
			},
			Notifications: []notify.DeliveryResult{{Recipient: "123", Delivered: true}},
		},
	}
	handler := CreateBooking(svc, nil)

	body := `{"location":"khau_pha","date":"2025-07-12","party_size":4,"contact":{"phone":"+84912345678"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.createIP != "203.0.113.7" {
		t.Fatalf("expected caller address forwarded, got %q", svc.createIP)
	}

	var payload struct {
		Data bookingsvc.CreateBookingResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.Booking.Location != "khau_pha" {
		t.Fatalf("unexpected location %q", payload.Data.Booking.Location)
	}
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	handler := CreateBooking(&stubBookingService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"location":`))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateBookingMissingFieldsReachTheService(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{
		createErr: pkgerrors.New(pkgerrors.CodeVerificationFailed, "verification rejected"),
	}
	handler := CreateBooking(svc, nil)

	// No location or date: the body still decodes and the service answers
	// with its verification verdict before any field validity leaks out.
	body := `{"contact":{"phone":"+84912345678"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCreateBookingVerificationFailure(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{
		createErr: pkgerrors.New(pkgerrors.CodeVerificationFailed, "verification rejected"),
	}
	handler := CreateBooking(svc, nil)

	body := `{"location":"khau_pha","date":"2025-07-12","contact":{"phone":"+84912345678"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeVerificationFailed) {
		t.Fatalf("unexpected code %q", payload.Error.Code)
	}
}

func TestGetBooking(t *testing.T) {
	t.Parallel()

	booking := sampleStoredBooking()
	svc := &stubBookingService{booking: booking}

	r := chi.NewRouter()
	r.Get("/api/admin/v1/bookings/{bookingID}", GetBooking(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/bookings/"+booking.ID.String(), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload struct {
		Data bookingDetail `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.Date != "2025-07-12" {
		t.Fatalf("unexpected date %q", payload.Data.Date)
	}
	if payload.Data.Price.Total != 10_560_000 {
		t.Fatalf("unexpected total %d", payload.Data.Price.Total)
	}
}

func TestGetBookingRejectsBadID(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/admin/v1/bookings/{bookingID}", GetBooking(&stubBookingService{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/bookings/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestTransitionBookingConflict(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{
		transitErr: pkgerrors.New(pkgerrors.CodeStateConflict, "booking status transition disallowed"),
	}

	r := chi.NewRouter()
	r.Post("/api/admin/v1/bookings/{bookingID}/status", TransitionBooking(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/bookings/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"completed"}`))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCustomerBookings(t *testing.T) {
	t.Parallel()

	booking := sampleStoredBooking()
	svc := &stubBookingService{listed: []models.Booking{*booking}}

	r := chi.NewRouter()
	r.Get("/api/admin/v1/customers/{customerID}/bookings", CustomerBookings(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/customers/"+booking.CustomerID.String()+"/bookings", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload struct {
		Data struct {
			Bookings []bookingDetail `json:"bookings"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data.Bookings) != 1 {
		t.Fatalf("expected one booking, got %d", len(payload.Data.Bookings))
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	svc := &stubBookingService{
		quoteResp: &bookingsvc.QuoteResponse{
			Location: "khau_pha",
			Date:     "2025-07-12",
			Price: types.PriceBreakdown{
				Currency: enums.CurrencyVND,
				Total:    10_560_000,
			},
		},
	}
	handler := Quote(svc, nil)

	body := `{"location":"khau_pha","date":"2025-07-12","party_size":4}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload struct {
		Data bookingsvc.QuoteResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.Price.Total != 10_560_000 {
		t.Fatalf("unexpected total %d", payload.Data.Price.Total)
	}
}

func TestQuoteServiceUnavailable(t *testing.T) {
	t.Parallel()

	handler := Quote(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
