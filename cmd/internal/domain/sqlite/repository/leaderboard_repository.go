package repository

import (
	"noteshare/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultLeaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *DefaultLeaderboardRepository {
	return &DefaultLeaderboardRepository{db: db}
}

func (l *DefaultLeaderboardRepository) Create(entry *entity.LeaderboardEntry) error {
	return l.db.Create(entry).Error
}

// FindTop returns at most limit entries, best score first. Equal scores keep
// submission order, so the earlier attempt ranks higher. An empty subject
// lists every subject.
func (l *DefaultLeaderboardRepository) FindTop(subject string, limit int) ([]*entity.LeaderboardView, error) {
	tx := l.db.
		Table("leaderboard AS l").
		Select("l.*, u.name AS user_name").
		Joins("JOIN users u ON u.id = l.user_id")

	if subject != "" {
		tx = tx.Where("l.subject = ?", subject)
	}

	entries := make([]*entity.LeaderboardView, 0)
	err := tx.
		Order("l.score DESC, l.created_at ASC, l.id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
