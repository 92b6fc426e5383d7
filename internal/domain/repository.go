package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CampaignRepository defines persistence for campaigns. Create assigns the
// id and timestamps; List returns campaigns in a stable order, optionally
// restricted to an exact category match.
type CampaignRepository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error)
	List(ctx context.Context, category string) ([]Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DonationRepository handles donation persistence. Donate performs the whole
// donation unit of work atomically: the campaign is locked while eligibility
// is checked, the donation recorded, the running total incremented and the
// status recomputed. Two concurrent donations against the same campaign can
// never drop an increment.
type DonationRepository interface {
	Donate(ctx context.Context, campaignID uuid.UUID, d *Donation, today time.Time) (*Campaign, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]Donation, error)
}
