package chats

import (
	"encoding/json"
	"net/http"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
)

// Create: возвращает существующий чат для пары или создаёт новый.
// Пара проверяется в обоих порядках, уникального ограничения в базе нет.
func Create(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var req struct {
		UserID uint `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	var companion users.User
	if err := config.DB.First(&companion, req.UserID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	var chat social.Chat
	err := config.DB.Where(
		"(user_id_1 = ? AND user_id_2 = ?) OR (user_id_1 = ? AND user_id_2 = ?)",
		claims.UserID, req.UserID, req.UserID, claims.UserID,
	).First(&chat).Error
	if err == nil {
		common.JSON(w, http.StatusOK, chat)
		return
	}

	chat = social.Chat{UserID1: claims.UserID, UserID2: req.UserID}
	if err := config.DB.Create(&chat).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при создании чата")
		return
	}

	common.JSON(w, http.StatusCreated, chat)
}

type chatEntry struct {
	social.Chat
	Companion users.User `json:"companion"`
}

// List: чаты текущего пользователя с собеседником в каждом.
func List(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var chatRows []social.Chat
	if err := config.DB.Where(
		"user_id_1 = ? OR user_id_2 = ?", claims.UserID, claims.UserID,
	).Order("created_at DESC").Find(&chatRows).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении чатов")
		return
	}

	result := make([]chatEntry, 0, len(chatRows))
	for _, chat := range chatRows {
		companionID := chat.UserID1
		if companionID == claims.UserID {
			companionID = chat.UserID2
		}

		var companion users.User
		if err := config.DB.First(&companion, companionID).Error; err != nil {
			continue
		}
		result = append(result, chatEntry{Chat: chat, Companion: companion})
	}

	common.JSON(w, http.StatusOK, result)
}

func chatMember(chat *social.Chat, userID uint) bool {
	return chat.UserID1 == userID || chat.UserID2 == userID
}
