package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeKey struct{}
type countryKey struct{}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// Locale tags each request with a negotiated locale and, when a lookup is
// available, the caller's ISO country code. The explicit X-Locale header
// wins over Accept-Language.
func Locale(supported []language.Tag, lookup CountryLookup) func(http.Handler) http.Handler {
	if len(supported) == 0 {
		supported = []language.Tag{language.English}
	}
	matcher := language.NewMatcher(supported)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, idx := language.MatchStrings(matcher, r.Header.Get("X-Locale"), r.Header.Get("Accept-Language"))

			ctx := context.WithValue(r.Context(), localeKey{}, supported[idx].String())
			if country := resolveCountry(r, lookup); country != "" {
				ctx = context.WithValue(ctx, countryKey{}, strings.ToUpper(country))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext returns the negotiated locale, or "" outside a request.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeKey{}).(string); ok {
		return v
	}
	return ""
}

// CountryFromContext returns the resolved country code, or "" when
// resolution was off or failed.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(countryKey{}).(string); ok {
		return v
	}
	return ""
}

func resolveCountry(r *http.Request, lookup CountryLookup) string {
	if lookup == nil {
		return ""
	}
	ip := clientIP(r)
	if ip == "" {
		return ""
	}
	code, err := lookup(ip)
	if err != nil {
		return ""
	}
	return code
}
