package web

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"os"
	"time"

	"communityaction/internal/adapters/email"
	"communityaction/internal/adapters/http/middleware"
	accountstorage "communityaction/internal/adapters/storage/account"
	enrollmentstorage "communityaction/internal/adapters/storage/enrollment"
	programstorage "communityaction/internal/adapters/storage/program"
	settingstorage "communityaction/internal/adapters/storage/setting"
	"communityaction/internal/domain/identity"
)

// RateLimitPerSecond is the per-IP request budget for the admin surface.
const RateLimitPerSecond = 20

// Stores groups the storage dependencies of the HTTP adapter.
type Stores struct {
	ProgramStore    programstorage.Store
	EnrollmentStore enrollmentstorage.Store
	SettingStore    settingstorage.Store
	AccountStore    accountstorage.Store
}

// Package-level dependencies, set by NewMux. Tests swap these directly.
var (
	stores      *Stores
	sessions    *middleware.SessionStore
	gate        *identity.Gate
	emailSender email.Sender = email.NewNoopSender()
)

// SetEmailSender replaces the sender used for admin notifications.
func SetEmailSender(s email.Sender) {
	emailSender = s
}

// EmailSender returns the configured notification sender.
func EmailSender() email.Sender {
	return emailSender
}

// loadCSRFKey returns the 32-byte CSRF key from CA_CSRF_KEY, or a random
// per-process key in development. Production refuses to start without one.
func loadCSRFKey() []byte {
	if key := os.Getenv("CA_CSRF_KEY"); key != "" {
		return []byte(key)
	}
	if os.Getenv("CA_ENV") == "production" {
		slog.Error("missing_csrf_key", "hint", "set CA_CSRF_KEY to a 32-byte secret")
		os.Exit(1)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		slog.Error("csrf_key_generation_failed", "error", err)
		os.Exit(1)
	}
	slog.Warn("csrf_key_generated", "note", "sessions will not survive restarts")
	return key
}

// NewMux wires routes, middleware, and package dependencies.
// PRE: s has all stores set; g is a configured authorization gate
// POST: Returns a handler ready for ListenAndServe
func NewMux(s *Stores, g *identity.Gate) http.Handler {
	stores = s
	gate = g
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CA_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
