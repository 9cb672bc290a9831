package entity

// User is a registered account. Email is matched exactly as stored.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password;not null"`
	Name         string `gorm:"not null"`
	College      *string
	CreatedAt    int64 `gorm:"not null;autoCreateTime:false"`
}
