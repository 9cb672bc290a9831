package repository

import (
	"noteshare/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSocialRepository stores the per-note signals users leave behind:
// ratings, likes and comments.
type DefaultSocialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) *DefaultSocialRepository {
	return &DefaultSocialRepository{db: db}
}

// UpsertRating replaces any earlier rating of the same note by the same user.
func (s *DefaultSocialRepository) UpsertRating(rating *entity.Rating) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "note_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating"}),
	}).Create(rating).Error
}

// ToggleLike removes the (user, note) like if present and creates it otherwise,
// inside one transaction. It reports whether the note ends up liked.
func (s *DefaultSocialRepository) ToggleLike(userID, noteID int64) (bool, error) {
	var liked bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND note_id = ?", userID, noteID).
			Delete(&entity.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		// DoNothing keeps a concurrent insert of the same pair from failing
		// the transaction; either way exactly one row remains.
		like := &entity.Like{UserID: userID, NoteID: noteID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

func (s *DefaultSocialRepository) CreateComment(comment *entity.Comment) error {
	return s.db.Create(comment).Error
}

// FindComments returns a note's comments newest first.
func (s *DefaultSocialRepository) FindComments(noteID int64) ([]*entity.CommentView, error) {
	comments := make([]*entity.CommentView, 0)
	err := s.db.
		Table("comments AS c").
		Select("c.*, u.name AS user_name").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.note_id = ?", noteID).
		Order("c.created_at DESC, c.id DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
