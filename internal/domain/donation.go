package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Donation is a single contribution recorded against a campaign. Donations
// are immutable after creation and are removed only when their campaign is
// deleted.
type Donation struct {
	ID           uuid.UUID
	CampaignID   uuid.UUID
	Amount       decimal.Decimal
	DonorName    string
	Message      string
	DonorCountry string
	CreatedAt    time.Time
}
