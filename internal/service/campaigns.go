package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"server/internal/domain"
)

// CampaignInput carries the caller-editable campaign fields for create and
// update requests.
type CampaignInput struct {
	Title       string
	Description string
	GoalAmount  decimal.Decimal
	Category    string
	CreatorName string
	Deadline    time.Time
}

// Campaigns is the campaign lifecycle engine: it validates input, assigns
// initial state and recomputes statuses on read.
type Campaigns struct {
	repo domain.CampaignRepository
	now  func() time.Time
}

func NewCampaigns(repo domain.CampaignRepository) *Campaigns {
	return &Campaigns{repo: repo, now: time.Now}
}

// Create validates the input and stores a new ACTIVE campaign with a zero
// running total. The store assigns the id.
func (s *Campaigns) Create(ctx context.Context, in CampaignInput) (*domain.Campaign, error) {
	today := domain.Midnight(s.now())
	if err := validateCampaignInput(in, today); err != nil {
		return nil, err
	}

	c := &domain.Campaign{
		Title:         in.Title,
		Description:   in.Description,
		GoalAmount:    in.GoalAmount,
		CurrentAmount: decimal.Zero,
		Category:      in.Category,
		CreatorName:   in.CreatorName,
		Deadline:      domain.Midnight(in.Deadline),
		Status:        domain.StatusActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a single campaign. The status is recomputed against today's
// date for the response; storage is only corrected on the next write.
func (s *Campaigns) Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.RecomputeStatus(domain.Midnight(s.now()))
	return c, nil
}

// List returns all campaigns, or only those whose category exactly equals
// the filter when one is given. Statuses are recomputed for the response.
func (s *Campaigns) List(ctx context.Context, category string) ([]domain.Campaign, error) {
	items, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	today := domain.Midnight(s.now())
	for i := range items {
		items[i].RecomputeStatus(today)
	}
	return items, nil
}

// Update re-validates all fields and replaces the editable ones. The id,
// status and running total are never touched by an update.
func (s *Campaigns) Update(ctx context.Context, id uuid.UUID, in CampaignInput) (*domain.Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	today := domain.Midnight(s.now())
	if err := validateCampaignInput(in, today); err != nil {
		return nil, err
	}

	c.Title = in.Title
	c.Description = in.Description
	c.GoalAmount = in.GoalAmount
	c.Category = in.Category
	c.CreatorName = in.CreatorName
	c.Deadline = domain.Midnight(in.Deadline)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a campaign; its donations are removed with it.
func (s *Campaigns) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// validateCampaignInput checks fields in a fixed order and reports the first
// failure: title, description, goal, deadline, category, creator name.
func validateCampaignInput(in CampaignInput, today time.Time) error {
	if n := utf8.RuneCountInString(in.Title); n < 5 || n > 100 {
		return &domain.ValidationError{Field: "title", Message: "must be between 5 and 100 characters"}
	}
	if utf8.RuneCountInString(in.Description) < 10 {
		return &domain.ValidationError{Field: "description", Message: "must be at least 10 characters"}
	}
	if !in.GoalAmount.IsPositive() {
		return &domain.ValidationError{Field: "goalAmount", Message: "must be greater than zero"}
	}
	if in.Deadline.IsZero() || domain.Midnight(in.Deadline).Before(today) {
		return &domain.ValidationError{Field: "deadline", Message: "must be today or a future date"}
	}
	if strings.TrimSpace(in.Category) == "" {
		return &domain.ValidationError{Field: "category", Message: "must not be blank"}
	}
	if strings.TrimSpace(in.CreatorName) == "" {
		return &domain.ValidationError{Field: "creatorName", Message: "must not be blank"}
	}
	return nil
}
