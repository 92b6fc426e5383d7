package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/service"
)

// App bundles the engines and helpers shared by all HTTP handlers.
type App struct {
	Campaigns *service.Campaigns
	Donations *service.Donations
	Logger    zerolog.Logger
}

func NewApp(campaigns *service.Campaigns, donations *service.Donations, logger zerolog.Logger) *App {
	return &App{Campaigns: campaigns, Donations: donations, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"code": slug, "message": message})
}

// domainError maps engine failures onto the HTTP error contract.
func (a *App) domainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		a.error(w, http.StatusBadRequest, "validation_error", verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "Campaign not found")
	case errors.Is(err, domain.ErrCampaignNotEligible):
		a.error(w, http.StatusBadRequest, "campaign_not_eligible", "Campaign is not ACTIVE or has expired")
	default:
		a.Logger.Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// campaignID parses the {id} route parameter. An id that does not parse
// cannot name a campaign, so it gets the not-found treatment.
func (a *App) campaignID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "Campaign not found")
		return uuid.Nil, false
	}
	return id, true
}
