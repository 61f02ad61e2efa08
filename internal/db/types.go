package db

import (
	"time"

	"github.com/google/uuid"
)

// Company is a canonical portfolio company record.
type Company struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NameNormalized string    `json:"name_normalized"`
	Description    *string   `json:"description,omitempty"`
	Tagline        *string   `json:"tagline,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"`
	Country        *string   `json:"country,omitempty"`
	Incorporation  *string   `json:"incorporation,omitempty"`
	HQLine1        *string   `json:"hq_line1,omitempty"`
	HQCity         *string   `json:"hq_city,omitempty"`
	HQState        *string   `json:"hq_state,omitempty"`
	HQZip          *string   `json:"hq_zip,omitempty"`
	HQCountry      *string   `json:"hq_country,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Founder is a founder attached to a company.
type Founder struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"` // founder | cofounder
	LinkedIn  *string   `json:"linkedin,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Investment is one investment by the fund into a company.
type Investment struct {
	ID              uuid.UUID `json:"id"`
	CompanyID       uuid.UUID `json:"company_id"`
	Amount          *float64  `json:"amount,omitempty"`
	Instrument      *string   `json:"instrument,omitempty"` // safe_post, safe_pre, convertible_note, priced_equity
	RoundSize       *float64  `json:"round_size,omitempty"`
	ConversionCap   *float64  `json:"conversion_cap,omitempty"`
	DiscountPercent *float64  `json:"discount_percent,omitempty"`
	ProRata         *bool     `json:"pro_rata,omitempty"`
	InvestedOn      *string   `json:"invested_on,omitempty"` // ISO date
	Rationale       *string   `json:"rationale,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
