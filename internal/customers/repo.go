package customers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openskyvn/paragliding-backend/pkg/db/models"
)

// UpsertInput carries the contact fields the resolver may merge onto an
// existing identity.
type UpsertInput struct {
	Phone string
	Email string
	Name  string
}

// Repository persists customer identities.
type Repository interface {
	Upsert(ctx context.Context, input UpsertInput) (*models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customer repository backed by the provided DB.
func NewRepository(db *gorm.DB) Repository {
	if db == nil {
		return nil
	}
	return &repository{db: db}
}

// Upsert is a single atomic insert-or-update keyed by phone. Concurrent
// submissions with the same number land on one row instead of racing a read
// against a write. Blank email/name never erase previously stored values.
func (r *repository) Upsert(ctx context.Context, input UpsertInput) (*models.Customer, error) {
	now := time.Now().UTC()

	record := models.Customer{
		ID:            uuid.New(),
		Phone:         input.Phone,
		FirstSeenAt:   now,
		LastBookingAt: now,
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		record.Email = &email
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		record.Name = &name
	}

	assignments := map[string]any{
		"last_booking_at": now,
		"updated_at":      now,
	}
	if record.Email != nil {
		assignments["email"] = *record.Email
	}
	if record.Name != nil {
		assignments["name"] = *record.Name
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&record).Error
	if err != nil {
		return nil, err
	}

	// The conflict path does not hydrate the struct, so read the canonical
	// row back by its natural key.
	return r.FindByPhone(ctx, input.Phone)
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var record models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var record models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
