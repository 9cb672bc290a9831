package entity

// Like exists while the user has the note liked; toggling off deletes the row.
type Like struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;uniqueIndex:idx_like_user_note"`
	NoteID int64 `gorm:"not null;uniqueIndex:idx_like_user_note;index"`
}
