package admin

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/users"
)

// ListUsers: все пользователи без фильтрации.
func ListUsers(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var all []users.User
	if err := config.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении пользователей")
		return
	}

	common.JSON(w, http.StatusOK, all)
}

func setUserStatus(w http.ResponseWriter, r *http.Request, status string) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var user users.User
	if err := config.DB.First(&user, id).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	user.IsBlocked = status
	if err := config.DB.Save(&user).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при обновлении пользователя")
		return
	}

	common.JSON(w, http.StatusOK, user)
}

// BlockUser: перевод аккаунта в "заблокирован".
func BlockUser(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	setUserStatus(w, r, users.StatusBlocked)
}

// UnblockUser: возврат аккаунта в "активен".
func UnblockUser(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	setUserStatus(w, r, users.StatusActive)
}

// DeleteUser: жёсткое удаление аккаунта.
func DeleteUser(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var user users.User
	if err := config.DB.First(&user, id).Error; err != nil {
		common.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при удалении пользователя")
		return
	}

	common.JSON(w, http.StatusOK, map[string]string{"message": "Пользователь удалён"})
}
