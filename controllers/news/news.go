package news

import (
	"net/http"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
)

type newsEntry struct {
	social.News
	Author string `json:"author"`
}

// Create: новость создаётся в статусе "ожидание" и ждёт модерации.
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

	imagePath, err := common.SaveUpload(r, "image", "news")
	if err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при сохранении файла")
		return
	}

	item := social.News{
		Title:       title,
		Description: r.FormValue("description"),
		Link:        r.FormValue("link"),
		ImageURL:    imagePath,
		AuthorID:    claims.UserID,
		Status:      social.ModerationPending,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при создании новости")
		return
	}

	common.JSON(w, http.StatusCreated, item)
}

// List: публичная лента — только принятые новости.
func List(w http.ResponseWriter, r *http.Request) {
	var items []social.News
	if err := config.DB.Where("status = ?", social.ModerationAccepted).
		Order("created_at DESC").Find(&items).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении новостей")
		return
	}

	common.JSON(w, http.StatusOK, withAuthors(items))
}

func withAuthors(items []social.News) []newsEntry {
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

	result := make([]newsEntry, 0, len(items))
	for _, item := range items {
		result = append(result, newsEntry{News: item, Author: names[item.AuthorID]})
	}
	return result
}
