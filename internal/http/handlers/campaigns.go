package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"server/internal/domain"
	"server/internal/service"
)

const dateLayout = "2006-01-02"

type campaignRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	GoalAmount  decimal.Decimal `json:"goalAmount"`
	Category    string          `json:"category"`
	CreatorName string          `json:"creatorName"`
	Deadline    string          `json:"deadline"`
}

type campaignResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	GoalAmount    decimal.Decimal `json:"goalAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Category      string          `json:"category"`
	CreatorName   string          `json:"creatorName"`
	Deadline      string          `json:"deadline"`
	Status        domain.Status   `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		GoalAmount:    c.GoalAmount,
		CurrentAmount: c.CurrentAmount,
		Category:      c.Category,
		CreatorName:   c.CreatorName,
		Deadline:      c.Deadline.Format(dateLayout),
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// decodeCampaignInput parses and pre-validates the request body. A missing
// deadline passes through as the zero time so the engine reports it in its
// deterministic field order.
func (a *App) decodeCampaignInput(w http.ResponseWriter, r *http.Request) (service.CampaignInput, bool) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return service.CampaignInput{}, false
	}

	in := service.CampaignInput{
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Category:    req.Category,
		CreatorName: req.CreatorName,
	}
	if req.Deadline != "" {
		d, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			a.error(w, http.StatusBadRequest, "validation_error", "deadline must be a date in YYYY-MM-DD format")
			return service.CampaignInput{}, false
		}
		in.Deadline = d
	}
	return in, true
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := a.decodeCampaignInput(w, r)
	if !ok {
		return
	}
	c, err := a.Campaigns.Create(r.Context(), in)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toCampaignResponse(c))
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Campaigns.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	resp := make([]campaignResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toCampaignResponse(&items[i]))
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	c, err := a.Campaigns.Get(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toCampaignResponse(c))
}

func (a *App) CampaignsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	in, ok := a.decodeCampaignInput(w, r)
	if !ok {
		return
	}
	c, err := a.Campaigns.Update(r.Context(), id, in)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toCampaignResponse(c))
}

func (a *App) CampaignsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	if err := a.Campaigns.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
