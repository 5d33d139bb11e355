package domain

import "time"

// AdoptionStatus represents the lifecycle state of a cat listing.
type AdoptionStatus string

const (
	AdoptionAvailable AdoptionStatus = "available"
	AdoptionPending   AdoptionStatus = "pending"
	AdoptionAdopted   AdoptionStatus = "adopted"
)

// AdoptionFeeCents is the flat fee charged for every adoption, in USD cents.
const AdoptionFeeCents int64 = 2000

// Cat is the adoptable-pet aggregate exposed over all three transports.
type Cat struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Age       int            `json:"age" gorm:"not null"`
	Breed     string         `json:"breed,omitempty"`
	Status    AdoptionStatus `json:"status" gorm:"type:varchar(16);not null;default:available"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
