package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openskyvn/paragliding-backend/internal/customers"
	"github.com/openskyvn/paragliding-backend/internal/notify"
	"github.com/openskyvn/paragliding-backend/internal/pricing"
	"github.com/openskyvn/paragliding-backend/internal/verification"
	"github.com/openskyvn/paragliding-backend/pkg/db/models"
	"github.com/openskyvn/paragliding-backend/pkg/enums"
	pkgerrors "github.com/openskyvn/paragliding-backend/pkg/errors"
	"github.com/openskyvn/paragliding-backend/pkg/logger"
	"github.com/openskyvn/paragliding-backend/pkg/metrics"
	"github.com/openskyvn/paragliding-backend/pkg/types"
)

type identityResolver interface {
	Resolve(ctx context.Context, input customers.ResolveInput) (*models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type notifier interface {
	Notify(ctx context.Context, booking *models.Booking, customer *models.Customer) []notify.DeliveryResult
}

// BookingSummary is the echoed shape returned after creation.
type BookingSummary struct {
	ID           uuid.UUID           `json:"id"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	Location     string              `json:"location"`
	LocationName string              `json:"location_name"`
	Date         string              `json:"date"`
	TimeSlot     string              `json:"time_slot,omitempty"`
	PartySize    int                 `json:"party_size"`
	Status       enums.BookingStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
}

// CreateBookingResponse is the success payload of a booking submission.
// Notifications carry per-recipient outcomes as diagnostics; delivery
// failures never demote the response to an error.
type CreateBookingResponse struct {
	Booking       BookingSummary          `json:"booking"`
	Price         types.PriceBreakdown    `json:"price"`
	Notifications []notify.DeliveryResult `json:"notifications"`
}

// QuoteResponse is the price preview payload.
type QuoteResponse struct {
	Location     string               `json:"location"`
	LocationName string               `json:"location_name"`
	Date         string               `json:"date"`
	Price        types.PriceBreakdown `json:"price"`
}

// Service orchestrates the booking pipeline: gate, normalize, price,
// resolve identity, record, notify.
type Service interface {
	Create(ctx context.Context, req CreateBookingRequest, remoteIP string) (*CreateBookingResponse, error)
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error)
	Transition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*models.Booking, error)
}

type service struct {
	gate              verification.Gate
	identity          identityResolver
	repo              Repository
	notifier          notifier
	engine            *pricing.Engine
	logg              *logger.Logger
	metrics           *metrics.PipelineMetrics
	acceptedLocations map[string]struct{}
}

// NewService builds the booking orchestrator. acceptedLocations narrows the
// bookable keys; empty means the whole static table.
func NewService(
	gate verification.Gate,
	identity identityResolver,
	repo Repository,
	notifySvc notifier,
	engine *pricing.Engine,
	logg *logger.Logger,
	pipelineMetrics *metrics.PipelineMetrics,
	acceptedLocations []string,
) (Service, error) {
	if gate == nil {
		return nil, fmt.Errorf("verification gate required")
	}
	if identity == nil {
		return nil, fmt.Errorf("identity resolver required")
	}
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if notifySvc == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if engine == nil {
		engine = pricing.NewEngine(pricing.DefaultVNDPerUSD)
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	var accepted map[string]struct{}
	if len(acceptedLocations) > 0 {
		accepted = make(map[string]struct{}, len(acceptedLocations))
		for _, key := range acceptedLocations {
			accepted[key] = struct{}{}
		}
	}

	return &service{
		gate:              gate,
		identity:          identity,
		repo:              repo,
		notifier:          notifySvc,
		engine:            engine,
		logg:              logg,
		metrics:           pipelineMetrics,
		acceptedLocations: accepted,
	}, nil
}

// Create runs the full submission pipeline. The gate is a hard precondition:
// nothing is persisted for a submission that fails it.
func (s *service) Create(ctx context.Context, req CreateBookingRequest, remoteIP string) (*CreateBookingResponse, error) {
	verdict, err := s.gate.Verify(ctx, req.VerificationToken, remoteIP)
	if err != nil {
		s.metrics.IncVerification("fail")
		s.metrics.IncSubmission("rejected_verification")
		return nil, err
	}
	if verdict.Bypassed {
		s.metrics.IncVerification("bypassed")
	} else {
		s.metrics.IncVerification("pass")
	}

	loc, err := s.resolveLocation(req.Location)
	if err != nil {
		s.metrics.IncSubmission("rejected_validation")
		return nil, err
	}
	ctx = s.logg.WithLocation(ctx, loc.Key)

	flightDate, err := parseDate(req.Date)
	if err != nil {
		s.metrics.IncSubmission("rejected_validation")
		return nil, err
	}
	currency, err := parseCurrency(req.Currency)
	if err != nil {
		s.metrics.IncSubmission("rejected_validation")
		return nil, err
	}

	roster := guestRoster(req.Guests, req.GuestName)
	partySize := normalizePartySize(req.PartySize, len(roster))
	selections := normalizeAddons(req.AddonQuantities, req.AddonFlags, partySize)

	// The client quote is advisory only. The stored price is always this
	// recomputation.
	started := time.Now()
	price := s.engine.Quote(loc, flightDate, partySize, selections, currency)
	s.metrics.ObserveQuoteDuration(loc.Key, time.Since(started))

	customer, err := s.identity.Resolve(ctx, customers.ResolveInput{
		Phone: req.Contact.Phone,
		Email: req.Contact.Email,
		Name:  primaryGuestName(roster),
	})
	if err != nil {
		s.metrics.IncSubmission(submissionOutcome(err))
		return nil, err
	}
	ctx = s.logg.WithCustomerID(ctx, customer.ID.String())

	booking := &models.Booking{
		CustomerID:  customer.ID,
		LocationKey: loc.Key,
		FlightDate:  flightDate,
		TimeSlot:    req.TimeSlot,
		PartySize:   price.PartySize,
		Contact: types.ContactSnapshot{
			Phone:          customer.Phone,
			Email:          req.Contact.Email,
			PickupLocation: req.Contact.PickupLocation,
			SpecialRequest: req.Contact.SpecialRequest,
		},
		Guests:            roster,
		Addons:            storedSelections(price),
		Price:             price,
		ClientQuotedTotal: req.ClientQuotedTotal,
		Status:            enums.BookingStatusPending,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		s.metrics.IncSubmission("rejected_persistence")
		return nil, pkgerrors.Wrap(pkgerrors.CodeBookingPersistence, err, "recording booking")
	}
	ctx = s.logg.WithBookingID(ctx, booking.ID.String())
	s.logg.Info(ctx, "booking recorded")

	// The booking is durable from here on. Notification failures are
	// diagnostics, never a rollback.
	notifications := s.notifier.Notify(ctx, booking, customer)

	s.metrics.IncSubmission("accepted")
	return &CreateBookingResponse{
		Booking:       s.summarize(booking, loc),
		Price:         price,
		Notifications: notifications,
	}, nil
}

// Quote computes a price preview. It runs the same recomputation as Create so
// the two figures always agree.
func (s *service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	loc, err := s.resolveLocation(req.Location)
	if err != nil {
		return nil, err
	}
	flightDate, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	currency, err := parseCurrency(req.Currency)
	if err != nil {
		return nil, err
	}

	partySize := normalizePartySize(req.PartySize, 0)
	selections := normalizeAddons(req.AddonQuantities, req.AddonFlags, partySize)

	started := time.Now()
	price := s.engine.Quote(loc, flightDate, partySize, selections, currency)
	s.metrics.ObserveQuoteDuration(loc.Key, time.Since(started))

	return &QuoteResponse{
		Location:     loc.Key,
		LocationName: loc.DisplayName("en"),
		Date:         flightDate.Format(dateLayout),
		Price:        price,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id is required")
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading booking")
	}
	return booking, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error) {
	if _, err := s.identity.Get(ctx, customerID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing customer bookings")
	}
	return records, nil
}

// Transition enforces the booking status machine.
func (s *service) Transition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*models.Booking, error) {
	next, err := enums.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking status").
			WithDetails([]string{"status"})
	}

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking status transition disallowed").
			WithDetails(map[string]string{
				"from": booking.Status.String(),
				"to":   next.String(),
			})
	}

	if err := s.repo.UpdateStatus(ctx, id, booking.Status, next); err != nil {
		if errors.Is(err, ErrStaleStatus) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "booking status transition disallowed").
				WithDetails(map[string]string{
					"from": booking.Status.String(),
					"to":   next.String(),
				})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating booking status")
	}
	booking.Status = next
	s.logg.Info(s.logg.WithBookingID(ctx, booking.ID.String()), "booking status updated")
	return booking, nil
}

func (s *service) resolveLocation(keyOrName string) (*pricing.LocationConfig, error) {
	if keyOrName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location is required").
			WithDetails([]string{"location"})
	}
	loc, ok := pricing.Resolve(keyOrName)
	if ok && s.acceptedLocations != nil {
		if _, accepted := s.acceptedLocations[loc.Key]; !accepted {
			ok = false
		}
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnknownLocation, "unknown flight location").
			WithDetails(map[string]any{"valid_locations": s.validLocationKeys()})
	}
	return loc, nil
}

func (s *service) validLocationKeys() []string {
	if s.acceptedLocations == nil {
		return pricing.Keys()
	}
	keys := make([]string, 0, len(s.acceptedLocations))
	for _, key := range pricing.Keys() {
		if _, ok := s.acceptedLocations[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func (s *service) summarize(booking *models.Booking, loc *pricing.LocationConfig) BookingSummary {
	return BookingSummary{
		ID:           booking.ID,
		CustomerID:   booking.CustomerID,
		Location:     booking.LocationKey,
		LocationName: loc.DisplayName("en"),
		Date:         booking.FlightDate.Format(dateLayout),
		TimeSlot:     booking.TimeSlot,
		PartySize:    booking.PartySize,
		Status:       booking.Status,
		CreatedAt:    booking.CreatedAt,
	}
}

// storedSelections snapshots the authoritative quantities out of the computed
// breakdown, so forced-zero add-ons never survive into storage.
func storedSelections(price types.PriceBreakdown) types.AddonSelections {
	selections := types.AddonSelections{}
	for _, line := range price.Addons {
		if line.Quantity > 0 {
			selections[line.Kind] = line.Quantity
		}
	}
	if len(selections) == 0 {
		return nil
	}
	return selections
}

func primaryGuestName(roster types.GuestRoster) string {
	if len(roster) == 0 {
		return ""
	}
	return roster[0].Name
}

func submissionOutcome(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "rejected_internal"
	}
	switch typed.Code() {
	case pkgerrors.CodeValidation:
		return "rejected_validation"
	case pkgerrors.CodeIdentityPersistence, pkgerrors.CodeDependency:
		return "rejected_identity"
	default:
		return "rejected_internal"
	}
}
