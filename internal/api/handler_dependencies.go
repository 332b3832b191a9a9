package api

import (
	"github.com/lunover/attendly/internal/db"
	"github.com/lunover/attendly/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.entryCache = services.NewEntryCache(handler.remote, handler.repositories.TimeEntries)
	return handler
}
