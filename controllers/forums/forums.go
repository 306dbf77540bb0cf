package forums

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

// Create: создание вопроса, статус "открыт".
func Create(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var req struct {
		Question    string `json:"question"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		common.Error(w, http.StatusBadRequest, "Вопрос обязателен")
		return
	}

	forum := social.Forum{
		UserID:      claims.UserID,
		Question:    req.Question,
		Description: req.Description,
		Status:      social.ForumOpen,
	}
	if err := config.DB.Create(&forum).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при создании вопроса")
		return
	}

	common.JSON(w, http.StatusCreated, forum)
}

type forumEntry struct {
	social.Forum
	Author      string `json:"author"`
	AnswerCount int64  `json:"answer_count"`
}

// List: все вопросы, новые первыми, с автором и числом ответов.
func List(w http.ResponseWriter, r *http.Request) {
	var forumRows []social.Forum
	if err := config.DB.Order("created_at DESC").Find(&forumRows).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении вопросов")
		return
	}

	result := make([]forumEntry, 0, len(forumRows))
	for _, f := range forumRows {
		var author users.User
		config.DB.First(&author, f.UserID)

		var count int64
		config.DB.Model(&social.Answer{}).Where("forum_id = ?", f.ID).Count(&count)

		result = append(result, forumEntry{Forum: f, Author: author.Username, AnswerCount: count})
	}

	common.JSON(w, http.StatusOK, result)
}

type answerEntry struct {
	social.Answer
	Username string `json:"username"`
}

// Get: вопрос с ответами, ответы от старых к новым.
func Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var forum social.Forum
	if err := config.DB.First(&forum, id).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Вопрос не найден")
		return
	}

	var author users.User
	config.DB.First(&author, forum.UserID)

	var answers []social.Answer
	if err := config.DB.Where("forum_id = ?", forum.ID).Order("created_at ASC").
		Find(&answers).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении ответов")
		return
	}

	answerRows := make([]answerEntry, 0, len(answers))
	for _, a := range answers {
		var u users.User
		config.DB.First(&u, a.UserID)
		answerRows = append(answerRows, answerEntry{Answer: a, Username: u.Username})
	}

	common.JSON(w, http.StatusOK, map[string]interface{}{
		"forum":   forumEntry{Forum: forum, Author: author.Username, AnswerCount: int64(len(answers))},
		"answers": answerRows,
	})
}

// AddAnswer: добавление ответа к вопросу.
func AddAnswer(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var forum social.Forum
	if err := config.DB.First(&forum, id).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Вопрос не найден")
		return
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answer == "" {
		common.Error(w, http.StatusBadRequest, "Ответ обязателен")
		return
	}

	answer := social.Answer{
		ForumID: forum.ID,
		UserID:  claims.UserID,
		Answer:  req.Answer,
	}
	if err := config.DB.Create(&answer).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при создании ответа")
		return
	}

	common.JSON(w, http.StatusCreated, answerEntry{Answer: answer, Username: claims.Username})
}

// UpdateStatus: единственный разрешённый переход — в "решён";
// доступен автору вопроса или администратору. Пути назад нет.
func UpdateStatus(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var forum social.Forum
	if err := config.DB.First(&forum, id).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Вопрос не найден")
		return
	}

	if forum.UserID != claims.UserID && claims.Role != users.RoleAdmin {
		common.Error(w, http.StatusForbidden, "Нет доступа")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}
	if req.Status != social.ForumSolved {
		common.Error(w, http.StatusBadRequest, "Недопустимый статус")
		return
	}

	forum.Status = social.ForumSolved
	if err := config.DB.Save(&forum).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при обновлении статуса")
		return
	}

	common.JSON(w, http.StatusOK, forum)
}
