package db

import (
	"errors"
	"strings"
	"time"

	"github.com/lunover/attendly/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisibilityRepository struct {
	database *gorm.DB
}

func NewVisibilityRepository(database *gorm.DB) *VisibilityRepository {
	return &VisibilityRepository{database: database}
}

// VisibilitySetting is one email's desired visibility.
type VisibilitySetting struct {
	Email   string
	Visible bool
}

// NormalizeEmail is the canonical key form for visibility rows.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Lookup reports (visible, found). Callers collapse "not found" to visible;
// keeping the tri-state here makes the open-world default explicit.
func (repo *VisibilityRepository) Lookup(email string) (bool, bool, error) {
	var row models.UserVisibility
	err := repo.database.Where("email = ?", NormalizeEmail(email)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return row.Visible, true, nil
}

func (repo *VisibilityRepository) ListAll() (map[string]bool, error) {
	rows := make([]models.UserVisibility, 0)
	if err := repo.database.Find(&rows).Error; err != nil {
		return nil, err
	}

	visibility := make(map[string]bool, len(rows))
	for _, row := range rows {
		visibility[row.Email] = row.Visible
	}
	return visibility, nil
}

func (repo *VisibilityRepository) Set(email string, visible bool) error {
	return repo.upsert(repo.database, email, visible, time.Now())
}

// SetMany upserts a batch of visibility settings atomically.
func (repo *VisibilityRepository) SetMany(settings []VisibilitySetting) error {
	now := time.Now()
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for _, setting := range settings {
			if err := repo.upsert(tx, setting.Email, setting.Visible, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *VisibilityRepository) upsert(tx *gorm.DB, email string, visible bool, now time.Time) error {
	row := models.UserVisibility{
		Email:     NormalizeEmail(email),
		Visible:   visible,
		UpdatedAt: now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"visible", "updated_at"}),
	}).Create(&row).Error
}
