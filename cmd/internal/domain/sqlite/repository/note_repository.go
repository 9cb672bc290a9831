package repository

import (
	"errors"
	"noteshare/cmd/internal/domain/entity"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const noteStatsColumns = `n.*, u.name AS author_name,
	(SELECT AVG(rating) FROM ratings WHERE note_id = n.id) AS avg_rating,
	(SELECT COUNT(*) FROM ratings WHERE note_id = n.id) AS rating_count,
	(SELECT COUNT(*) FROM likes WHERE note_id = n.id) AS like_count`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (d *DefaultNoteRepository) Create(note *entity.Note) error {
	return d.db.Omit(clause.Associations).Create(note).Error
}

func (d *DefaultNoteRepository) Exists(id int64) (bool, error) {
	var exists int
	err := d.db.
		Raw("SELECT EXISTS(SELECT 1 FROM notes WHERE id = ?)", id).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (d *DefaultNoteRepository) FindStatsByID(id int64) (*entity.NoteStats, error) {
	var rows []*entity.NoteStats
	err := d.statsQuery().
		Where("n.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FindStats runs a listing query. Every sort mode falls back to id descending
// so ties come back in a stable order; unrated notes sort last by rating.
func (d *DefaultNoteRepository) FindStats(q *entity.NoteQuery) ([]*entity.NoteStats, error) {
	tx := d.statsQuery()

	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(q.Search) + "%"
		tx = tx.Where(
			`(n.title LIKE ? ESCAPE '\' OR n.description LIKE ? ESCAPE '\' OR n.subject LIKE ? ESCAPE '\' OR n.course LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern,
		)
	}
	if q.Course != "" {
		tx = tx.Where("n.course = ?", q.Course)
	}
	if q.Subject != "" {
		tx = tx.Where("n.subject = ?", q.Subject)
	}
	if q.Semester != nil {
		tx = tx.Where("n.semester = ?", *q.Semester)
	}
	if q.OwnerID != 0 {
		tx = tx.Where("n.user_id = ?", q.OwnerID)
	}

	switch q.Sort {
	case entity.SortRating:
		tx = tx.Order("avg_rating IS NULL, avg_rating DESC, n.id DESC")
	case entity.SortDownloads:
		tx = tx.Order("n.downloads DESC, n.id DESC")
	default:
		tx = tx.Order("n.created_at DESC, n.id DESC")
	}

	notes := make([]*entity.NoteStats, 0)
	if err := tx.Scan(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// IncrementDownloads bumps the counter with a single UPDATE and returns the
// note it touched, or nil if there is no such note.
func (d *DefaultNoteRepository) IncrementDownloads(id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Note{}).
			Where("id = ?", id).
			UpdateColumn("downloads", gorm.Expr("downloads + ?", 1))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&note, id).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) statsQuery() *gorm.DB {
	return d.db.
		Table("notes AS n").
		Select(noteStatsColumns).
		Joins("JOIN users u ON u.id = n.user_id")
}
