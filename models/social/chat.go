package social

import "time"

type Chat struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID1   uint      `json:"user_id_1" gorm:"column:user_id_1;not null;index"`
	UserID2   uint      `json:"user_id_2" gorm:"column:user_id_2;not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ChatID    uint      `json:"chat_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}
