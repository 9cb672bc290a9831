package entity

type Comment struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null"`
	NoteID    int64  `gorm:"not null;index"`
	Content   string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false"`
}

// CommentView is a comment joined with its author's display name.
type CommentView struct {
	ID        int64
	UserID    int64
	NoteID    int64
	Content   string
	CreatedAt int64
	UserName  string
}
