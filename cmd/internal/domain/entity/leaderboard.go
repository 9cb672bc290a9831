package entity

// LeaderboardEntry records one finished quiz attempt. Score is not checked
// against Total.
type LeaderboardEntry struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null;index"`
	Subject   string `gorm:"not null;index"`
	Score     int    `gorm:"not null"`
	Total     int    `gorm:"not null"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}

type LeaderboardView struct {
	ID        int64
	UserID    int64
	Subject   string
	Score     int
	Total     int
	CreatedAt int64
	UserName  string
}
