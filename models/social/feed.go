package social

import "time"

// Статусы модерации новостей и постов.
const (
	ModerationPending  = "ожидание"
	ModerationAccepted = "принят"
	ModerationRejected = "отклонен"
)

type News struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	ImageURL    string    `json:"image_url"`
	AuthorID    uint      `json:"author_id" gorm:"not null;index"`
	Status      string    `json:"status" gorm:"not null;default:'ожидание'"`
	CreatedAt   time.Time `json:"created_at"`
}

type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	AuthorID    uint      `json:"author_id" gorm:"not null;index"`
	Status      string    `json:"status" gorm:"not null;default:'ожидание'"`
	CreatedAt   time.Time `json:"created_at"`
}
