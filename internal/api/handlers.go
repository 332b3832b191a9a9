package api

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/lunover/attendly/internal/db"
	"github.com/lunover/attendly/internal/harvest"
	"github.com/lunover/attendly/internal/services"
	"gorm.io/gorm"
)

const authTokenTTL = 24 * time.Hour

// RemoteSource is the slice of the time-tracking API the handlers use.
// *harvest.Client satisfies it; tests substitute a stub.
type RemoteSource interface {
	ListUsers(ctx context.Context) ([]harvest.User, error)
	ListTimeEntries(ctx context.Context, from string, to string) ([]harvest.TimeEntry, error)
}

type Handler struct {
	db            *gorm.DB
	secretKey     []byte
	location      *time.Location
	cookieSecure  bool
	baseURL       string
	allowedEmails []string
	remote        RemoteSource
	mailer        services.Mailer
	repositories  *db.Repositories
	entryCache    *services.EntryCache
}

func NewHandler(database *gorm.DB, remote RemoteSource, mailer services.Mailer, secret string, baseURL string, allowedEmails []string, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.Local
	}

	handler := &Handler{
		db:            database,
		secretKey:     []byte(secret),
		location:      location,
		cookieSecure:  cookieSecure,
		baseURL:       strings.TrimRight(baseURL, "/"),
		allowedEmails: allowedEmails,
		remote:        remote,
		mailer:        mailer,
	}
	return handler.withDependencies(database)
}

func (handler *Handler) emailAllowed(email string) bool {
	normalized := db.NormalizeEmail(email)
	for _, allowed := range handler.allowedEmails {
		if db.NormalizeEmail(allowed) == normalized {
			return true
		}
	}
	return false
}

func validEmailShape(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}
