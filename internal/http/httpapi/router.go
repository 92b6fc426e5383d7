package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter wires the middleware chain and the campaign/donation routes.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.Locale(localeTags(cfg), lookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/campaigns", func(r chi.Router) {
		r.Post("/", app.CampaignsCreate)
		r.Get("/", app.CampaignsList)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.CampaignsGet)
			r.Put("/", app.CampaignsUpdate)
			r.Delete("/", app.CampaignsDelete)

			r.Post("/donations", app.DonationsCreate)
			r.Get("/donations", app.DonationsList)
		})
	})

	return r
}

func localeTags(cfg *infra.Config) []language.Tag {
	seen := map[string]struct{}{}
	var tags []language.Tag
	for _, s := range append([]string{cfg.DefaultLocale}, cfg.SupportedLocales...) {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		if _, ok := seen[tag.String()]; ok {
			continue
		}
		seen[tag.String()] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
