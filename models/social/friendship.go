package social

import "time"

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship — одна строка на неупорядоченную пару: создаётся в направлении
// отправитель → получатель, читается в обоих направлениях.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	FriendID  uint      `json:"friend_id" gorm:"not null;index"`
	Status    string    `json:"status" gorm:"not null;default:pending"`
	CreatedAt time.Time `json:"created_at"`
}
