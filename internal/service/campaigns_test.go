package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"server/internal/adapter/repo/memory"
	"server/internal/domain"
)

var testToday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func newCampaignsAt(today time.Time) (*Campaigns, *memory.Store) {
	store := memory.NewStore()
	s := NewCampaigns(store)
	s.now = func() time.Time { return today }
	return s, store
}

func validCampaignInput() CampaignInput {
	return CampaignInput{
		Title:       "Help Rebuild School",
		Description: "Rebuilding after flood damage in the region.",
		GoalAmount:  decimal.NewFromInt(1000),
		Category:    "Education",
		CreatorName: "Asha",
		Deadline:    testToday.AddDate(0, 0, 30),
	}
}

func TestCampaignsCreate(t *testing.T) {
	s, _ := newCampaignsAt(testToday)

	c, err := s.Create(context.Background(), validCampaignInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Fatal("expected the store to assign an id")
	}
	if c.Status != domain.StatusActive {
		t.Fatalf("status = %s, want ACTIVE", c.Status)
	}
	if !c.CurrentAmount.IsZero() {
		t.Fatalf("currentAmount = %s, want 0", c.CurrentAmount)
	}
}

func TestCampaignsCreate_ValidationOrder(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CampaignInput)
		wantField string
	}{
		{"short title", func(in *CampaignInput) { in.Title = "Hi" }, "title"},
		{"long title", func(in *CampaignInput) { in.Title = strings.Repeat("x", 101) }, "title"},
		{"short description", func(in *CampaignInput) { in.Description = "too short" }, "description"},
		{"zero goal", func(in *CampaignInput) { in.GoalAmount = decimal.Zero }, "goalAmount"},
		{"negative goal", func(in *CampaignInput) { in.GoalAmount = decimal.NewFromInt(-5) }, "goalAmount"},
		{"past deadline", func(in *CampaignInput) { in.Deadline = testToday.AddDate(0, 0, -1) }, "deadline"},
		{"missing deadline", func(in *CampaignInput) { in.Deadline = time.Time{} }, "deadline"},
		{"blank category", func(in *CampaignInput) { in.Category = "  " }, "category"},
		{"blank creator", func(in *CampaignInput) { in.CreatorName = "" }, "creatorName"},
		// title is checked first, so a fully broken input reports title
		{"everything wrong reports title", func(in *CampaignInput) { *in = CampaignInput{} }, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newCampaignsAt(testToday)
			in := validCampaignInput()
			tt.mutate(&in)

			_, err := s.Create(context.Background(), in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Fatalf("failed field = %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}

func TestCampaignsCreate_DeadlineToday(t *testing.T) {
	s, _ := newCampaignsAt(testToday)
	in := validCampaignInput()
	in.Deadline = testToday

	if _, err := s.Create(context.Background(), in); err != nil {
		t.Fatalf("deadline today should be allowed, got %v", err)
	}
}

func TestCampaignsGet_RecomputesForResponse(t *testing.T) {
	s, _ := newCampaignsAt(testToday)
	in := validCampaignInput()
	in.Deadline = testToday
	c, err := s.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// two days later the stored row is stale ACTIVE; the read reports EXPIRED
	s.now = func() time.Time { return testToday.AddDate(0, 0, 2) }
	got, err := s.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusExpired {
		t.Fatalf("status = %s, want EXPIRED", got.Status)
	}
}

func TestCampaignsGet_NotFound(t *testing.T) {
	s, _ := newCampaignsAt(testToday)
	if _, err := s.Get(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCampaignsList_CategoryFilter(t *testing.T) {
	s, _ := newCampaignsAt(testToday)
	ctx := context.Background()

	first := validCampaignInput()
	if _, err := s.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := validCampaignInput()
	second.Title = "Shelter for Strays"
	second.Category = "Animals"
	if _, err := s.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered list has %d campaigns, want 2", len(all))
	}

	filtered, err := s.List(ctx, "Education")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Category != "Education" {
		t.Fatalf("filtered list = %+v, want exactly the Education campaign", filtered)
	}

	// exact match only
	none, err := s.List(ctx, "education")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("category match must be exact, got %d campaigns", len(none))
	}
}

func TestCampaignsUpdate(t *testing.T) {
	s, _ := newCampaignsAt(testToday)
	ctx := context.Background()

	c, err := s.Create(ctx, validCampaignInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validCampaignInput()
	in.Title = "Help Rebuild Two Schools"
	in.GoalAmount = decimal.NewFromInt(2000)
	updated, err := s.Update(ctx, c.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != in.Title || !updated.GoalAmount.Equal(in.GoalAmount) {
		t.Fatalf("update did not apply: %+v", updated)
	}
	if updated.ID != c.ID || updated.Status != domain.StatusActive || !updated.CurrentAmount.IsZero() {
		t.Fatal("update must not touch id, status or current amount")
	}
}

func TestCampaignsUpdate_Errors(t *testing.T) {
	s, _ := newCampaignsAt(testToday)
	ctx := context.Background()

	if _, err := s.Update(ctx, uuid.New(), validCampaignInput()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	c, err := s.Create(ctx, validCampaignInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	bad := validCampaignInput()
	bad.Description = "short"
	_, err = s.Update(ctx, c.ID, bad)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "description" {
		t.Fatalf("expected description validation error, got %v", err)
	}
}

func TestCampaignsDelete(t *testing.T) {
	s, store := newCampaignsAt(testToday)
	ctx := context.Background()

	c, err := s.Create(ctx, validCampaignInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	d := NewDonations(store, store)
	d.now = s.now
	if _, err := d.Donate(ctx, c.ID, DonationInput{Amount: decimal.NewFromInt(10), DonorName: "Kim"}); err != nil {
		t.Fatalf("Donate: %v", err)
	}

	if err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// donations are removed with their campaign
	left, err := store.ListByCampaign(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListByCampaign: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected cascade delete, %d donations left", len(left))
	}

	if err := s.Delete(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
}
