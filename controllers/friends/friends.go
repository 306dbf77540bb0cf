package friends

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
)

// pairQuery выбирает строку дружбы по неупорядоченной паре.
func pairQuery(userID, friendID uint) *social.Friendship {
	var f social.Friendship
	err := config.DB.Where(
		"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, friendID, friendID, userID,
	).First(&f).Error
	if err != nil {
		return nil
	}
	return &f
}

// Add: отправка заявки в друзья.
func Add(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var req struct {
		FriendID uint `json:"friendId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FriendID == 0 {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	if req.FriendID == claims.UserID {
		common.Error(w, http.StatusBadRequest, "Нельзя добавить себя в друзья")
		return
	}

	var friend users.User
	if err := config.DB.First(&friend, req.FriendID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	// Любая строка в любом направлении блокирует повторную заявку
	if existing := pairQuery(claims.UserID, req.FriendID); existing != nil {
		common.Error(w, http.StatusBadRequest, "Заявка уже существует")
		return
	}

	friendship := social.Friendship{
		UserID:   claims.UserID,
		FriendID: req.FriendID,
		Status:   social.FriendshipPending,
	}
	if err := config.DB.Create(&friendship).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при создании заявки")
		return
	}

	common.JSON(w, http.StatusCreated, friendship)
}

// Accept: принятие заявки — строка любого направления переводится в accepted.
func Accept(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	friendID, err := strconv.Atoi(mux.Vars(r)["friendId"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	friendship := pairQuery(claims.UserID, uint(friendID))
	if friendship == nil {
		common.Error(w, http.StatusNotFound, "Заявка не найдена")
		return
	}

	friendship.Status = social.FriendshipAccepted
	if err := config.DB.Save(friendship).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при обновлении заявки")
		return
	}

	common.JSON(w, http.StatusOK, friendship)
}

// Reject: отклонение заявки — строка удаляется, повторная заявка возможна сразу.
func Reject(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	friendID, err := strconv.Atoi(mux.Vars(r)["friendId"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	friendship := pairQuery(claims.UserID, uint(friendID))
	if friendship == nil {
		common.Error(w, http.StatusNotFound, "Заявка не найдена")
		return
	}

	if err := config.DB.Delete(friendship).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при удалении заявки")
		return
	}

	common.JSON(w, http.StatusOK, map[string]string{"message": "Заявка отклонена"})
}

type friendEntry struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	Avatar         string  `json:"avatar"`
	Skills         string  `json:"skills"`
	GithubUsername *string `json:"github_username"`
}

// List: принятые друзья — объединение обоих направлений.
func List(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var friendships []social.Friendship
	if err := config.DB.Where(
		"status = ? AND (user_id = ? OR friend_id = ?)",
		social.FriendshipAccepted, claims.UserID, claims.UserID,
	).Find(&friendships).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении друзей")
		return
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.UserID == claims.UserID {
			ids = append(ids, f.FriendID)
		} else {
			ids = append(ids, f.UserID)
		}
	}

	result := make([]friendEntry, 0, len(ids))
	if len(ids) > 0 {
		var friendUsers []users.User
		if err := config.DB.Where("id IN ?", ids).Order("username").Find(&friendUsers).Error; err != nil {
			common.Error(w, http.StatusInternalServerError, "Ошибка при получении друзей")
			return
		}
		for _, u := range friendUsers {
			result = append(result, friendEntry{
				ID:             u.ID,
				Username:       u.Username,
				Avatar:         u.Avatar,
				Skills:         u.Skills,
				GithubUsername: u.GithubUsername,
			})
		}
	}

	common.JSON(w, http.StatusOK, result)
}

type requestEntry struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	RequestedAt string `json:"requested_at"`
}

// Requests: входящие заявки — только там, где текущий пользователь получатель.
func Requests(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var friendships []social.Friendship
	if err := config.DB.Where(
		"friend_id = ? AND status = ?", claims.UserID, social.FriendshipPending,
	).Order("created_at DESC").Find(&friendships).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении заявок")
		return
	}

	result := make([]requestEntry, 0, len(friendships))
	for _, f := range friendships {
		var requester users.User
		if err := config.DB.First(&requester, f.UserID).Error; err != nil {
			continue
		}
		result = append(result, requestEntry{
			ID:          f.ID,
			UserID:      requester.ID,
			Username:    requester.Username,
			Avatar:      requester.Avatar,
			RequestedAt: f.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	common.JSON(w, http.StatusOK, result)
}
