package githubapi

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
	"itbird-backend/services"
)

// Client настраивается в main; тесты подменяют его на клиент с фейковым BaseURL.
var Client *services.GitHubClient

func githubUser(w http.ResponseWriter, claims *authentication.Claims) *users.User {
	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return nil
	}
	if user.GithubUsername == nil {
		common.Error(w, http.StatusBadRequest, "GitHub аккаунт не привязан")
		return nil
	}
	return &user
}

// GetRepos: список репозиториев из кэша с окном свежести 24 часа.
// Протухший или пустой кэш обновляется живым запросом к GitHub; при ошибке
// GitHub тёплый кэш отдаётся как есть, холодный деградирует в пустой список.
func GetRepos(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	user := githubUser(w, claims)
	if user == nil {
		return
	}

	var cached []social.Repository
	if err := config.DB.Where("user_id = ?", user.ID).Order("repo_name").
		Find(&cached).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении репозиториев")
		return
	}

	if len(cached) > 0 && services.RepoCacheFresh(cached) {
		common.JSON(w, http.StatusOK, cached)
		return
	}

	if err := services.SyncUserRepos(Client, user); err != nil {
		slog.Warn("не удалось синхронизировать репозитории", "user", user.ID, "error", err)
		common.JSON(w, http.StatusOK, cached)
		return
	}

	var fresh []social.Repository
	if err := config.DB.Where("user_id = ?", user.ID).Order("repo_name").
		Find(&fresh).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении репозиториев")
		return
	}

	common.JSON(w, http.StatusOK, fresh)
}

// proxy отдаёт ответ GitHub как есть; ошибки обращения мапятся в 502.
func proxy(w http.ResponseWriter, r *http.Request, claims *authentication.Claims, subpath string) {
	user := githubUser(w, claims)
	if user == nil {
		return
	}

	repo := mux.Vars(r)["repo"]
	path := "/repos/" + *user.GithubUsername + "/" + repo + subpath

	body, status, err := Client.Proxy(path, r.URL.RawQuery, user.GithubToken)
	if err != nil {
		slog.Warn("ошибка обращения к GitHub", "path", path, "error", err)
		common.Error(w, http.StatusBadGateway, "Ошибка при обращении к GitHub")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// Commits: история коммитов репозитория.
func Commits(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	proxy(w, r, claims, "/commits")
}

// Branches: ветки репозитория.
func Branches(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	proxy(w, r, claims, "/branches")
}

// Contents: дерево файлов репозитория (опционально по пути).
func Contents(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	subpath := "/contents"
	if p := mux.Vars(r)["path"]; p != "" {
		subpath += "/" + p
	}
	proxy(w, r, claims, subpath)
}

// Archive: скачивание zip-архива репозитория потоком.
func Archive(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	user := githubUser(w, claims)
	if user == nil {
		return
	}

	repo := mux.Vars(r)["repo"]
	stream, err := Client.Archive(*user.GithubUsername, repo, user.GithubToken)
	if err != nil {
		slog.Warn("ошибка скачивания архива", "repo", repo, "error", err)
		common.Error(w, http.StatusBadGateway, "Ошибка при обращении к GitHub")
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+repo+`.zip"`)
	io.Copy(w, stream)
}
