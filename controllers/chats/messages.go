package chats

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
	"itbird-backend/ws"
)

type messagePayload struct {
	social.Message
	Username string `json:"username"`
}

// SendMessage: сохраняет сообщение и рассылает NEW_MESSAGE всем подключённым
// клиентам. Отправитель получает сообщение в HTTP-ответе, не через сокет.
func SendMessage(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var req struct {
		ChatID  uint   `json:"chatId"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChatID == 0 || req.Message == "" {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	var chat social.Chat
	if err := config.DB.First(&chat, req.ChatID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Чат не найден")
		return
	}
	if !chatMember(&chat, claims.UserID) {
		common.Error(w, http.StatusForbidden, "Нет доступа к чату")
		return
	}

	message := social.Message{
		ChatID:  req.ChatID,
		UserID:  claims.UserID,
		Message: req.Message,
	}
	if err := config.DB.Create(&message).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при отправке сообщения")
		return
	}

	payload := messagePayload{Message: message, Username: claims.Username}
	ws.DefaultHub.Broadcast(ws.Event{Type: ws.EventNewMessage, Data: payload})

	common.JSON(w, http.StatusCreated, payload)
}

// ListMessages: полная история чата, от старых к новым.
func ListMessages(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	chatID, err := strconv.Atoi(mux.Vars(r)["chatId"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var chat social.Chat
	if err := config.DB.First(&chat, chatID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Чат не найден")
		return
	}
	if !chatMember(&chat, claims.UserID) {
		common.Error(w, http.StatusForbidden, "Нет доступа к чату")
		return
	}

	var messages []social.Message
	if err := config.DB.Where("chat_id = ?", chatID).Order("created_at ASC").
		Find(&messages).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении сообщений")
		return
	}

	usernames := map[uint]string{}
	var chatUsers []users.User
	if err := config.DB.Where("id IN ?", []uint{chat.UserID1, chat.UserID2}).
		Find(&chatUsers).Error; err == nil {
		for _, u := range chatUsers {
			usernames[u.ID] = u.Username
		}
	}

	result := make([]messagePayload, 0, len(messages))
	for _, m := range messages {
		result = append(result, messagePayload{Message: m, Username: usernames[m.UserID]})
	}

	common.JSON(w, http.StatusOK, result)
}
