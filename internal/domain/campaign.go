package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a campaign. Transitions are one-way:
// once COMPLETED or EXPIRED a campaign never becomes ACTIVE again.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusExpired   Status = "EXPIRED"
)

// Campaign is a fundraising request with a goal, a deadline and an
// accumulating total of accepted donations.
type Campaign struct {
	ID            uuid.UUID
	Title         string
	Description   string
	GoalAmount    decimal.Decimal
	CurrentAmount decimal.Decimal
	Category      string
	CreatorName   string
	Deadline      time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecomputeStatus applies the lifecycle transitions given today's date.
// Reaching the goal takes priority over the deadline. Idempotent, and a
// no-op for campaigns already in a terminal state.
func (c *Campaign) RecomputeStatus(today time.Time) {
	if c.Status != StatusActive {
		return
	}
	if c.CurrentAmount.GreaterThanOrEqual(c.GoalAmount) {
		c.Status = StatusCompleted
		return
	}
	if c.Deadline.Before(today) {
		c.Status = StatusExpired
	}
}

// Acceptable reports whether the campaign may take a donation today:
// it must be ACTIVE and its deadline must not have passed.
func (c *Campaign) Acceptable(today time.Time) bool {
	return c.Status == StatusActive && !c.Deadline.Before(today)
}

// Midnight truncates t to its calendar date in UTC. Deadlines are compared
// by date, never by time of day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
