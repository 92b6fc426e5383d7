package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/service"
)

type donationRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	DonorName string          `json:"donorName"`
	Message   string          `json:"message"`
}

// donationResponse deliberately omits the campaign linkage: the caller
// addressed the campaign in the URL already.
type donationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	DonorName string          `json:"donorName"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toDonationResponse(d *domain.Donation) donationResponse {
	return donationResponse{
		ID:        d.ID,
		Amount:    d.Amount,
		DonorName: d.DonorName,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	d, err := a.Donations.Donate(r.Context(), id, service.DonationInput{
		Amount:       req.Amount,
		DonorName:    req.DonorName,
		Message:      req.Message,
		DonorCountry: middleware.CountryFromContext(r.Context()),
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toDonationResponse(d))
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	items, err := a.Donations.ListForCampaign(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	resp := make([]donationResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toDonationResponse(&items[i]))
	}
	a.json(w, http.StatusOK, resp)
}
