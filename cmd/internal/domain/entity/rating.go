package entity

type Rating struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;uniqueIndex:idx_rating_user_note"`
	NoteID int64 `gorm:"not null;uniqueIndex:idx_rating_user_note;index"`
	Score  int   `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
}
