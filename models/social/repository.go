package social

import "time"

// Repository — кэш списка GitHub-репозиториев пользователя.
// Уникальный индекс (user_id, repo_name) поддерживает upsert при синхронизации.
type Repository struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_repo"`
	RepoName   string    `json:"repo_name" gorm:"not null;uniqueIndex:idx_user_repo"`
	RepoURL    string    `json:"repo_url"`
	LastSynced time.Time `json:"last_synced"`
}
