package jobs

import (
	"log/slog"
	"time"

	"itbird-backend/config"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
	"itbird-backend/services"
)

// RepoSyncJob обновляет протухшие кэши репозиториев пользователей
// с привязанным GitHub-аккаунтом.
type RepoSyncJob struct {
	client *services.GitHubClient
}

func NewRepoSyncJob(client *services.GitHubClient) *RepoSyncJob {
	return &RepoSyncJob{client: client}
}

// Run реализует cron.Job.
func (j *RepoSyncJob) Run() {
	var linked []users.User
	if err := config.DB.Where("github_username IS NOT NULL").Find(&linked).Error; err != nil {
		slog.Warn("repo sync job: ошибка выборки пользователей", "error", err)
		return
	}

	cutoff := time.Now().Add(-services.RepoCacheTTL)
	for i := range linked {
		user := &linked[i]

		var stale int64
		config.DB.Model(&social.Repository{}).
			Where("user_id = ? AND last_synced < ?", user.ID, cutoff).
			Count(&stale)

		var total int64
		config.DB.Model(&social.Repository{}).
			Where("user_id = ?", user.ID).
			Count(&total)

		// Нечего обновлять: кэш свежий либо пользователь ещё не запрашивал репозитории
		if total == 0 || stale == 0 {
			continue
		}

		if err := services.SyncUserRepos(j.client, user); err != nil {
			slog.Warn("repo sync job: ошибка синхронизации", "user", user.ID, "error", err)
		}
	}
}
