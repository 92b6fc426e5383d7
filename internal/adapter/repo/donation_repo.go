package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// DonationRepositoryPG implements DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Donate records a donation and updates the campaign inside one transaction.
// The campaign row is locked with FOR UPDATE for the duration, which rules
// out lost increments from concurrent donations to the same campaign while
// leaving other campaigns untouched.
func (r *DonationRepositoryPG) Donate(ctx context.Context, campaignID uuid.UUID, d *domain.Donation, today time.Time) (*domain.Campaign, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin donate tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
SELECT `+campaignColumns+`
FROM campaigns
WHERE id = $1
FOR UPDATE;
`, campaignID)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !c.Acceptable(today) {
		return nil, domain.ErrCampaignNotEligible
	}

	row = tx.QueryRow(ctx, `
INSERT INTO donations (campaign_id, amount, donor_name, message, donor_country)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at;
`, campaignID, d.Amount, d.DonorName, d.Message, d.DonorCountry)
	if err := row.Scan(&d.ID, &d.CreatedAt); err != nil {
		return nil, err
	}

	c.CurrentAmount = c.CurrentAmount.Add(d.Amount)
	c.RecomputeStatus(today)
	if _, err := tx.Exec(ctx, `
UPDATE campaigns
SET current_amount = $1, status = $2, updated_at = now()
WHERE id = $3;
`, c.CurrentAmount, string(c.Status), campaignID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit donate tx: %w", err)
	}
	return c, nil
}

// ListByCampaign returns a campaign's donations in creation order.
func (r *DonationRepositoryPG) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, campaign_id, amount, donor_name, message, donor_country, created_at
FROM donations
WHERE campaign_id = $1
ORDER BY created_at, id;
`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.Amount, &d.DonorName, &d.Message, &d.DonorCountry, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
