package social

import "time"

const (
	ForumOpen   = "открыт"
	ForumSolved = "решён"
)

type Forum struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Question    string    `json:"question" gorm:"not null"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"not null;default:'открыт'"`
	CreatedAt   time.Time `json:"created_at"`
}

type Answer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ForumID   uint      `json:"forum_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Answer    string    `json:"answer" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
