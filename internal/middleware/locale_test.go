package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func localeProbe(gotLocale, gotCountry *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotLocale = LocaleFromContext(r.Context())
		*gotCountry = CountryFromContext(r.Context())
	})
}

func TestLocale_HeaderPrecedence(t *testing.T) {
	supported := []language.Tag{language.English, language.Spanish}

	tests := []struct {
		name           string
		xLocale        string
		acceptLanguage string
		want           string
	}{
		{"x-locale wins", "es", "en-US", "es"},
		{"accept-language fallback", "", "es-MX,es;q=0.9", "es"},
		{"default when nothing matches", "", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLocale, gotCountry string
			handler := Locale(supported, nil)(localeProbe(&gotLocale, &gotCountry))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.xLocale != "" {
				req.Header.Set("X-Locale", tt.xLocale)
			}
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if gotLocale != tt.want {
				t.Fatalf("locale = %q, want %q", gotLocale, tt.want)
			}
			if gotCountry != "" {
				t.Fatalf("country = %q, want empty without a lookup", gotCountry)
			}
		})
	}
}

func TestLocale_CountryLookup(t *testing.T) {
	var gotLocale, gotCountry string
	lookup := func(ip string) (string, error) { return "us", nil }
	handler := Locale([]language.Tag{language.English}, lookup)(localeProbe(&gotLocale, &gotCountry))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:4242"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotCountry != "US" {
		t.Fatalf("country = %q, want US", gotCountry)
	}
}

func TestClientIP_ForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1000"
	req.Header.Set("X-Forwarded-For", "garbage, 198.51.100.4")

	if got := clientIP(req); got != "198.51.100.4" {
		t.Fatalf("clientIP = %q, want first valid forwarded address", got)
	}
}
