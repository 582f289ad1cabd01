package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the canonical identity record, keyed by normalized phone
// number. It is created on a customer's first booking and only ever mutated
// by the identity resolver.
type Customer struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Phone         string    `gorm:"column:phone;type:text;not null;uniqueIndex:customers_phone_key"`
	Email         *string   `gorm:"column:email"`
	Name          *string   `gorm:"column:name"`
	FirstSeenAt   time.Time `gorm:"column:first_seen_at;not null"`
	LastBookingAt time.Time `gorm:"column:last_booking_at;not null"`
	Bookings      []Booking `gorm:"foreignKey:CustomerID"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
