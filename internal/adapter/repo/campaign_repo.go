package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const campaignColumns = `id, title, description, goal_amount, current_amount, category, creator_name, deadline, status, created_at, updated_at`

// CampaignRepositoryPG implements CampaignRepository using PostgreSQL.
type CampaignRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new campaign repo.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{pool: pool}
}

// Create inserts a campaign; the database assigns id and timestamps.
func (r *CampaignRepositoryPG) Create(ctx context.Context, c *domain.Campaign) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO campaigns (title, description, goal_amount, current_amount, category, creator_name, deadline, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at;
`, c.Title, c.Description, c.GoalAmount, c.CurrentAmount, c.Category, c.CreatorName, c.Deadline, string(c.Status))
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+campaignColumns+`
FROM campaigns
WHERE id = $1;
`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns campaigns ordered by creation time, ties broken by id, so
// repeated identical queries yield the same order.
func (r *CampaignRepositoryPG) List(ctx context.Context, category string) ([]domain.Campaign, error) {
	query := `
SELECT ` + campaignColumns + `
FROM campaigns
ORDER BY created_at, id;
`
	args := []any{}
	if category != "" {
		query = `
SELECT ` + campaignColumns + `
FROM campaigns
WHERE category = $1
ORDER BY created_at, id;
`
		args = append(args, category)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the editable fields. The running total and status are
// owned by the donation path and are deliberately not written here.
func (r *CampaignRepositoryPG) Update(ctx context.Context, c *domain.Campaign) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE campaigns
SET title = $1, description = $2, goal_amount = $3, category = $4, creator_name = $5, deadline = $6, updated_at = now()
WHERE id = $7;
`, c.Title, c.Description, c.GoalAmount, c.Category, c.CreatorName, c.Deadline, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a campaign; donations go with it via ON DELETE CASCADE.
func (r *CampaignRepositoryPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM campaigns
WHERE id = $1;
`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	var status string
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.GoalAmount, &c.CurrentAmount,
		&c.Category, &c.CreatorName, &c.Deadline, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = domain.Status(status)
	return &c, nil
}
