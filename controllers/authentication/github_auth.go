package authentication

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"itbird-backend/config"
	"itbird-backend/controllers/common"
	"itbird-backend/models/users"
)

var (
	storeOnce sync.Once
	store     *sessions.CookieStore
)

func sessionStore() *sessions.CookieStore {
	storeOnce.Do(func() {
		store = sessions.NewCookieStore([]byte(config.App.SessionSecret))
		store.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
	})
	return store
}

func githubOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.App.GithubClientID,
		ClientSecret: config.App.GithubClientSecret,
		RedirectURL:  config.App.GithubRedirectURL,
		Scopes:       []string{"read:user", "repo"},
		Endpoint:     githuboauth.Endpoint,
	}
}

// HandleGithubLogin начинает привязку GitHub-аккаунта к текущему пользователю.
func HandleGithubLogin(w http.ResponseWriter, r *http.Request, claims *Claims) {
	state := uuid.NewString()

	session, _ := sessionStore().Get(r, "github-oauth")
	session.Values["state"] = state
	session.Values["user_id"] = claims.UserID
	if err := session.Save(r, w); err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при сохранении сессии")
		return
	}

	http.Redirect(w, r, githubOauthConfig().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleGithubCallback завершает OAuth-обмен и сохраняет github_username и токен.
func HandleGithubCallback(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionStore().Get(r, "github-oauth")

	state, _ := session.Values["state"].(string)
	if state == "" || r.FormValue("state") != state {
		common.Error(w, http.StatusBadRequest, "Некорректный state")
		return
	}

	userID, ok := session.Values["user_id"].(uint)
	if !ok {
		common.Error(w, http.StatusUnauthorized, "Сессия привязки не найдена")
		return
	}

	token, err := githubOauthConfig().Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		slog.Error("ошибка обмена кода на токен GitHub", "error", err)
		common.Error(w, http.StatusBadGateway, "Ошибка при обращении к GitHub")
		return
	}

	login, err := fetchGithubLogin(token.AccessToken)
	if err != nil {
		slog.Error("ошибка получения профиля GitHub", "error", err)
		common.Error(w, http.StatusBadGateway, "Ошибка при обращении к GitHub")
		return
	}

	// Один GitHub-аккаунт — один пользователь
	var existing users.User
	if err := config.DB.Where("github_username = ? AND id <> ?", login, userID).First(&existing).Error; err == nil {
		common.Error(w, http.StatusBadRequest, "Этот GitHub аккаунт уже привязан к другому пользователю")
		return
	}

	var user users.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	user.GithubUsername = &login
	user.GithubToken = token.AccessToken
	if err := config.DB.Save(&user).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при сохранении пользователя")
		return
	}

	common.JSON(w, http.StatusOK, map[string]string{
		"message":         "GitHub аккаунт привязан",
		"github_username": login,
	})
}

func fetchGithubLogin(accessToken string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var info struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", err
	}
	return info.Login, nil
}
