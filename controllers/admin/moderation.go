package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/social"
)

// ListNews: все новости независимо от статуса.
func ListNews(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var items []social.News
	if err := config.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении новостей")
		return
	}
	common.JSON(w, http.StatusOK, items)
}

// ListPosts: все посты независимо от статуса.
func ListPosts(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var items []social.Post
	if err := config.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении постов")
		return
	}
	common.JSON(w, http.StatusOK, items)
}

func moderationStatus(r *http.Request) (string, bool) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", false
	}
	// Модератор может только принять или отклонить
	if req.Status != social.ModerationAccepted && req.Status != social.ModerationRejected {
		return "", false
	}
	return req.Status, true
}

// UpdateNewsStatus: перевод новости в "принят" или "отклонен".
func UpdateNewsStatus(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	status, ok := moderationStatus(r)
	if !ok {
		common.Error(w, http.StatusBadRequest, "Недопустимый статус")
		return
	}

	var item social.News
	if err := config.DB.First(&item, id).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Новость не найдена")
		return
	}

	item.Status = status
	if err := config.DB.Save(&item).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при обновлении новости")
		return
	}

	common.JSON(w, http.StatusOK, item)
}

// UpdatePostStatus: перевод поста в "принят" или "отклонен".
func UpdatePostStatus(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	status, ok := moderationStatus(r)
	if !ok {
		common.Error(w, http.StatusBadRequest, "Недопустимый статус")
		return
	}

	var item social.Post
	if err := config.DB.First(&item, id).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пост не найден")
		return
	}

	item.Status = status
	if err := config.DB.Save(&item).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при обновлении поста")
		return
	}

	common.JSON(w, http.StatusOK, item)
}

// DeleteNews: жёсткое удаление новости.
func DeleteNews(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	result := config.DB.Delete(&social.News{}, id)
	if result.Error != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при удалении новости")
		return
	}
	if result.RowsAffected == 0 {
		common.Error(w, http.StatusNotFound, "Новость не найдена")
		return
	}

	common.JSON(w, http.StatusOK, map[string]string{"message": "Новость удалена"})
}

// DeletePost: жёсткое удаление поста.
func DeletePost(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	result := config.DB.Delete(&social.Post{}, id)
	if result.Error != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при удалении поста")
		return
	}
	if result.RowsAffected == 0 {
		common.Error(w, http.StatusNotFound, "Пост не найден")
		return
	}

	common.JSON(w, http.StatusOK, map[string]string{"message": "Пост удалён"})
}
