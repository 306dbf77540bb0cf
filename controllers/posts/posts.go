package posts

import (
	"net/http"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
)

type postEntry struct {
	social.Post
	Author string `json:"author"`
}

// Create: пост создаётся в статусе "ожидание" и ждёт модерации.
func Create(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		common.Error(w, http.StatusBadRequest, "Заголовок обязателен")
		return
	}

	imagePath, err := common.SaveUpload(r, "image", "posts")
	if err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при сохранении файла")
		return
	}

	item := social.Post{
		Title:       title,
		Description: r.FormValue("description"),
		ImageURL:    imagePath,
		AuthorID:    claims.UserID,
		Status:      social.ModerationPending,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при создании поста")
		return
	}

	common.JSON(w, http.StatusCreated, item)
}

// List: публичная лента — только принятые посты.
func List(w http.ResponseWriter, r *http.Request) {
	var items []social.Post
	if err := config.DB.Where("status = ?", social.ModerationAccepted).
		Order("created_at DESC").Find(&items).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении постов")
		return
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.AuthorID)
	}

	names := map[uint]string{}
	if len(ids) > 0 {
		var authors []users.User
		if err := config.DB.Where("id IN ?", ids).Find(&authors).Error; err == nil {
			for _, u := range authors {
				names[u.ID] = u.Username
			}
		}
	}

	result := make([]postEntry, 0, len(items))
	for _, item := range items {
		result = append(result, postEntry{Post: item, Author: names[item.AuthorID]})
	}

	common.JSON(w, http.StatusOK, result)
}
