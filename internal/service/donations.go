package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"server/internal/domain"
)

// DonationInput carries a donation request. DonorCountry is filled by the
// server from the request origin, never by the caller.
type DonationInput struct {
	Amount       decimal.Decimal
	DonorName    string
	Message      string
	DonorCountry string
}

// Donations is the donation engine: it validates input and delegates the
// atomic record-and-accumulate step to the repository.
type Donations struct {
	donations domain.DonationRepository
	campaigns domain.CampaignRepository
	now       func() time.Time
}

func NewDonations(donations domain.DonationRepository, campaigns domain.CampaignRepository) *Donations {
	return &Donations{donations: donations, campaigns: campaigns, now: time.Now}
}

var minDonation = decimal.NewFromInt(1)

// Donate records a donation against an eligible campaign. Eligibility
// (ACTIVE status and an unexpired deadline) is checked under the campaign
// lock, so a rejected donation leaves no trace in storage.
func (s *Donations) Donate(ctx context.Context, campaignID uuid.UUID, in DonationInput) (*domain.Donation, error) {
	if in.Amount.LessThan(minDonation) {
		return nil, &domain.ValidationError{Field: "amount", Message: "must be at least 1"}
	}
	if strings.TrimSpace(in.DonorName) == "" {
		return nil, &domain.ValidationError{Field: "donorName", Message: "must not be blank"}
	}

	d := &domain.Donation{
		CampaignID:   campaignID,
		Amount:       in.Amount,
		DonorName:    in.DonorName,
		Message:      in.Message,
		DonorCountry: in.DonorCountry,
	}
	if _, err := s.donations.Donate(ctx, campaignID, d, domain.Midnight(s.now())); err != nil {
		return nil, err
	}
	return d, nil
}

// ListForCampaign returns the donations of an existing campaign in creation
// order. A missing campaign is an error, not an empty list.
func (s *Donations) ListForCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Donation, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.donations.ListByCampaign(ctx, campaignID)
}
