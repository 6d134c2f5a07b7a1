package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type dealerRecord struct {
	bun.BaseModel `bun:"table:dealers,alias:d"`

	ID        string     `bun:"id,pk"`
	Name      string     `bun:"name,notnull"`
	Email     string     `bun:"email"`
	Postcode  string     `bun:"postcode"`
	Phone     string     `bun:"phone"`
	Website   string     `bun:"website"`
	Status    string     `bun:"status,notnull"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete"`
}

// dealerCredentialRecord keeps both advertisement-id shapes on the same row.
// The enhanced columns (advertisement_id, additional_advertisement_ids) and
// the legacy columns (primary_advertisement_id, advertisement_ids_parsed) are
// written together on every commit.
type dealerCredentialRecord struct {
	bun.BaseModel `bun:"table:dealer_credentials,alias:dc"`

	ID       string `bun:"id,pk"`
	DealerID string `bun:"dealer_id,notnull,unique"`

	SubmissionID *string `bun:"submission_id"`

	AdvertisementID            string   `bun:"advertisement_id"`
	AdditionalAdvertisementIDs []string `bun:"additional_advertisement_ids,type:jsonb,notnull"`
	PrimaryAdvertisementID     string   `bun:"primary_advertisement_id"`
	AdvertisementIDsParsed     []string `bun:"advertisement_ids_parsed,type:jsonb,notnull"`

	IntegrationID    string `bun:"integration_id"`
	CompanyName      string `bun:"company_name"`
	CompanyLogoURL   string `bun:"company_logo_url"`
	InvitationStatus string `bun:"invitation_status,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type joinSubmissionRecord struct {
	bun.BaseModel `bun:"table:join_submissions,alias:js"`

	ID           string    `bun:"id,pk"`
	DealerName   string    `bun:"dealer_name,notnull"`
	Email        string    `bun:"email,notnull"`
	Postcode     string    `bun:"postcode"`
	Phone        string    `bun:"phone"`
	DealerID     *string   `bun:"dealer_id"`
	Status       string    `bun:"status,notnull"`
	VehicleCount int       `bun:"vehicle_count,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type vehicleRecord struct {
	bun.BaseModel `bun:"table:vehicles,alias:v"`

	ID           string          `bun:"id,pk"`
	DealerID     string          `bun:"dealer_id,notnull"`
	Registration string          `bun:"registration,notnull"`
	Make         string          `bun:"make"`
	Model        string          `bun:"model"`
	Derivative   string          `bun:"derivative"`
	Year         int             `bun:"year"`
	Mileage      int             `bun:"mileage"`
	PricePence   int64           `bun:"price_pence,notnull"`
	CostPence    int64           `bun:"cost_pence,notnull"`
	SoldPence    int64           `bun:"sold_pence,notnull"`
	Status       string          `bun:"status,notnull"`
	Checklist    map[string]bool `bun:"checklist,type:jsonb,notnull"`
	CreatedAt    time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
