package entity

// Note is an uploaded document. FilePath holds the generated storage name,
// never the uploader's original filename.
type Note struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"` // References: users(id)
	Course      string `gorm:"not null"`
	Title       string `gorm:"not null"`
	Subject     string `gorm:"not null"`
	Semester    *int
	Description *string
	FilePath    string `gorm:"not null"`
	FileType    string `gorm:"not null"`
	Downloads   int64  `gorm:"not null;default:0"`
	CreatedAt   int64  `gorm:"not null;autoCreateTime:false;index"`

	// Relations
	User User `gorm:"foreignKey:UserID;references:ID"`
}

// NoteStats is the read model for listings and detail views: the note's own
// columns plus the author's name and the aggregates computed from child rows.
type NoteStats struct {
	ID          int64
	UserID      int64
	Course      string
	Title       string
	Subject     string
	Semester    *int
	Description *string
	FilePath    string
	FileType    string
	Downloads   int64
	CreatedAt   int64
	AuthorName  string

	// AvgRating is nil when the note has no ratings.
	AvgRating   *float64
	RatingCount int64
	LikeCount   int64
}
