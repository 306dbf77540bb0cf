package authentication

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"itbird-backend/config"
	"itbird-backend/controllers/common"
	"itbird-backend/models/users"
)

// GetProfile: профиль текущего пользователя.
func GetProfile(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	common.JSON(w, http.StatusOK, user)
}

// UpdateProfile: обновление имени и навыков.
func UpdateProfile(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	var req struct {
		Username string `json:"username"`
		Skills   string `json:"skills"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	if req.Username != "" && req.Username != user.Username {
		var existing users.User
		if err := config.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
			common.Error(w, http.StatusBadRequest, "Пользователь с таким именем уже существует")
			return
		}
		user.Username = req.Username
	}
	user.Skills = req.Skills

	if err := config.DB.Save(&user).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при обновлении профиля")
		return
	}

	common.JSON(w, http.StatusOK, user)
}

// UploadAvatar: загрузка аватара в uploads/avatars.
func UploadAvatar(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	path, err := common.SaveUpload(r, "avatar", "avatars")
	if err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при сохранении файла")
		return
	}
	if path == "" {
		common.Error(w, http.StatusBadRequest, "Файл не передан")
		return
	}

	user.Avatar = path
	if err := config.DB.Save(&user).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при обновлении профиля")
		return
	}

	common.JSON(w, http.StatusOK, user)
}

// ChangePassword: смена пароля пользователя.
func ChangePassword(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}
	if len(req.NewPassword) < 6 {
		common.Error(w, http.StatusBadRequest, "Пароль должен быть не короче 6 символов")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		common.Error(w, http.StatusBadRequest, "Неверный текущий пароль")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при хэшировании пароля")
		return
	}

	user.Password = string(hashed)
	if err := config.DB.Save(&user).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при обновлении пароля")
		return
	}

	common.JSON(w, http.StatusOK, map[string]string{"message": "Пароль успешно изменён"})
}
