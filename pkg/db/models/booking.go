package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/openskyvn/paragliding-backend/pkg/enums"
	"github.com/openskyvn/paragliding-backend/pkg/types"
)

// Booking is one flight reservation owned by a customer. The pipeline only
// ever creates bookings in pending status; transitions happen through admin
// actions.
type Booking struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID        uuid.UUID             `gorm:"column:customer_id;type:uuid;not null;index"`
	LocationKey       string                `gorm:"column:location_key;type:text;not null"`
	FlightDate        time.Time             `gorm:"column:flight_date;not null"`
	TimeSlot          string                `gorm:"column:time_slot;type:text"`
	PartySize         int                   `gorm:"column:party_size;not null"`
	Contact           types.ContactSnapshot `gorm:"column:contact;type:jsonb;serializer:json"`
	Guests            types.GuestRoster     `gorm:"column:guests;type:jsonb;serializer:json"`
	Addons            types.AddonSelections `gorm:"column:addons;type:jsonb;serializer:json"`
	Price             types.PriceBreakdown  `gorm:"column:price;type:jsonb;serializer:json"`
	ClientQuotedTotal *int64                `gorm:"column:client_quoted_total"`
	Status            enums.BookingStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	Customer          *Customer             `gorm:"foreignKey:CustomerID"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
