// Package memory provides an in-memory implementation of the domain
// repositories. It backs the service and handler tests, where spinning up
// PostgreSQL would be noise; the mutex gives the same per-campaign
// serialization the SQL adapter gets from row locking.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

// Store holds campaigns and donations in process memory. It implements both
// domain.CampaignRepository and domain.DonationRepository.
type Store struct {
	mu        sync.Mutex
	campaigns map[uuid.UUID]*domain.Campaign
	donations map[uuid.UUID][]domain.Donation
	seq       int
	order     map[uuid.UUID]int
}

func NewStore() *Store {
	return &Store{
		campaigns: make(map[uuid.UUID]*domain.Campaign),
		donations: make(map[uuid.UUID][]domain.Donation),
		order:     make(map[uuid.UUID]int),
	}
}

func (s *Store) Create(_ context.Context, c *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	cp := *c
	s.campaigns[c.ID] = &cp
	s.order[c.ID] = s.seq
	s.seq++
	return nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) List(_ context.Context, category string) ([]domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.Campaign
	for _, c := range s.campaigns {
		if category != "" && c.Category != category {
			continue
		}
		items = append(items, *c)
	}
	sort.Slice(items, func(i, j int) bool {
		return s.order[items[i].ID] < s.order[items[j].ID]
	})
	return items, nil
}

func (s *Store) Update(_ context.Context, c *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.campaigns[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Title = c.Title
	existing.Description = c.Description
	existing.GoalAmount = c.GoalAmount
	existing.Category = c.Category
	existing.CreatorName = c.CreatorName
	existing.Deadline = c.Deadline
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.campaigns, id)
	delete(s.order, id)
	delete(s.donations, id)
	return nil
}

// Donate mirrors the SQL adapter's transactional unit: eligibility check,
// donation insert, total increment and status recompute happen under one
// lock.
func (s *Store) Donate(_ context.Context, campaignID uuid.UUID, d *domain.Donation, today time.Time) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !c.Acceptable(today) {
		return nil, domain.ErrCampaignNotEligible
	}

	d.ID = uuid.New()
	d.CampaignID = campaignID
	d.CreatedAt = time.Now().UTC()
	s.donations[campaignID] = append(s.donations[campaignID], *d)

	c.CurrentAmount = c.CurrentAmount.Add(d.Amount)
	c.RecomputeStatus(today)
	c.UpdatedAt = time.Now().UTC()

	cp := *c
	return &cp, nil
}

func (s *Store) ListByCampaign(_ context.Context, campaignID uuid.UUID) ([]domain.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.Donation, len(s.donations[campaignID]))
	copy(items, s.donations[campaignID])
	return items, nil
}

var (
	_ domain.CampaignRepository = (*Store)(nil)
	_ domain.DonationRepository = (*Store)(nil)
)
