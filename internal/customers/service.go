package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openskyvn/paragliding-backend/pkg/db"
	"github.com/openskyvn/paragliding-backend/pkg/db/models"
	pkgerrors "github.com/openskyvn/paragliding-backend/pkg/errors"
)

// ResolveInput is the contact block handed to the identity resolver.
type ResolveInput struct {
	Phone string
	Email string
	Name  string
}

// Service resolves contact details to a customer identity.
type Service interface {
	Resolve(ctx context.Context, input ResolveInput) (*models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type service struct {
	repo Repository
}

// NewService builds the customer identity service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

// Resolve normalizes the phone number and performs the atomic find-or-create.
// There is no anonymous-booking path: a missing phone is a hard validation
// failure.
func (s *service) Resolve(ctx context.Context, input ResolveInput) (*models.Customer, error) {
	phone := NormalizePhone(input.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact phone is required").
			WithDetails([]string{"contact.phone"})
	}

	customer, err := s.repo.Upsert(ctx, UpsertInput{
		Phone: phone,
		Email: strings.TrimSpace(input.Email),
		Name:  strings.TrimSpace(input.Name),
	})
	if err != nil {
		// A unique violation here means a concurrent submission inserted the
		// row between our conflict clause and the read-back; the identity
		// exists, so load it instead of failing the booking.
		if db.IsUniqueViolation(err, "customers_phone_key") {
			if existing, ferr := s.repo.FindByPhone(ctx, phone); ferr == nil {
				return existing, nil
			}
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeIdentityPersistence, err, "upserting customer identity")
	}
	return customer, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}
	return customer, nil
}
