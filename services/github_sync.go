package services

import (
	"time"

	"gorm.io/gorm/clause"

	"itbird-backend/config"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
)

// RepoCacheTTL — окно свежести кэша репозиториев.
const RepoCacheTTL = 24 * time.Hour

// SyncUserRepos обновляет кэш репозиториев пользователя: upsert по
// (user_id, repo_name) плюс удаление строк, которых больше нет на GitHub.
func SyncUserRepos(client *GitHubClient, user *users.User) error {
	if user.GithubUsername == nil {
		return nil
	}

	fresh, err := client.ListRepos(*user.GithubUsername, user.GithubToken)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	names := make([]string, 0, len(fresh))
	for _, gr := range fresh {
		names = append(names, gr.Name)
		rec := social.Repository{
			UserID:     user.ID,
			RepoName:   gr.Name,
			RepoURL:    gr.HTMLURL,
			LastSynced: now,
		}
		err := config.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "repo_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"repo_url", "last_synced"}),
		}).Create(&rec).Error
		if err != nil {
			return err
		}
	}

	query := config.DB.Where("user_id = ?", user.ID)
	if len(names) > 0 {
		query = query.Where("repo_name NOT IN ?", names)
	}
	return query.Delete(&social.Repository{}).Error
}

// RepoCacheFresh сообщает, укладывается ли кэш в окно свежести.
func RepoCacheFresh(repos []social.Repository) bool {
	for _, r := range repos {
		if time.Since(r.LastSynced) < RepoCacheTTL {
			return true
		}
	}
	return false
}
