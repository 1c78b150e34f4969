package repository

import (
	"github.com/nestscout/backend/internal/models"
	"gorm.io/gorm"
)

// ResearchHistoryRepository records completed research runs for analytics.
type ResearchHistoryRepository struct {
	db *gorm.DB
}

func NewResearchHistoryRepository(db *gorm.DB) *ResearchHistoryRepository {
	return &ResearchHistoryRepository{db: db}
}

func (r *ResearchHistoryRepository) Create(query *models.ResearchQuery) error {
	return r.db.Create(query).Error
}

func (r *ResearchHistoryRepository) GetBySessionID(sessionID string) (*models.ResearchQuery, error) {
	var query models.ResearchQuery
	if err := r.db.Where("session_id = ?", sessionID).First(&query).Error; err != nil {
		return nil, err
	}
	return &query, nil
}

func (r *ResearchHistoryRepository) Recent(limit int) ([]models.ResearchQuery, error) {
	if limit <= 0 {
		limit = 20
	}
	var queries []models.ResearchQuery
	err := r.db.Order("created_at desc").Limit(limit).Find(&queries).Error
	return queries, err
}
