package authentication

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"itbird-backend/config"
	"itbird-backend/controllers/common"
	"itbird-backend/models/users"
)

var validate = validator.New()

type Claims struct {
	UserID   uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=64"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	GithubUsername string `json:"github_username"`
	Skills         string `json:"skills"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GenerateToken выпускает JWT с данными пользователя, срок жизни из конфигурации.
func GenerateToken(user *users.User) (string, error) {
	expirationTime := time.Now().Add(time.Duration(config.App.JWTExpiresHours) * time.Hour)
	claims := &Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.App.JWTSecret))
}

// ValidateToken разбирает заголовок Authorization и возвращает claims токена.
func ValidateToken(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.App.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// AuthedHandler — обработчик, которому нужен аутентифицированный пользователь.
type AuthedHandler func(w http.ResponseWriter, r *http.Request, claims *Claims)

// RequireAuth проверяет токен и что аккаунт всё ещё существует и не заблокирован.
func RequireAuth(next AuthedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ValidateToken(r)
		if err != nil {
			common.Error(w, http.StatusUnauthorized, "Требуется авторизация")
			return
		}

		var user users.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil {
			common.Error(w, http.StatusUnauthorized, "Пользователь не найден")
			return
		}
		if user.IsBlocked == users.StatusBlocked {
			common.Error(w, http.StatusForbidden, "Аккаунт заблокирован")
			return
		}

		next(w, r, claims)
	}
}

// RequireAdmin дополнительно требует роль admin.
func RequireAdmin(next AuthedHandler) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request, claims *Claims) {
		if claims.Role != users.RoleAdmin {
			common.Error(w, http.StatusForbidden, "Доступ запрещен")
			return
		}
		next(w, r, claims)
	})
}

// Register: регистрация нового пользователя.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}
	if err := validate.Struct(&req); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректные данные регистрации")
		return
	}

	// Проверка на существование пользователя с таким email или username
	var existing users.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		common.Error(w, http.StatusBadRequest, "Пользователь с таким email уже существует")
		return
	}
	if err := config.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		common.Error(w, http.StatusBadRequest, "Пользователь с таким именем уже существует")
		return
	}
	if req.GithubUsername != "" {
		if err := config.DB.Where("github_username = ?", req.GithubUsername).First(&existing).Error; err == nil {
			common.Error(w, http.StatusBadRequest, "Этот GitHub аккаунт уже привязан к другому пользователю")
			return
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при хэшировании пароля")
		return
	}

	user := users.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Skills:    req.Skills,
		Role:      users.RoleUser,
		IsBlocked: users.StatusActive,
	}
	if req.GithubUsername != "" {
		user.GithubUsername = &req.GithubUsername
	}

	if err := config.DB.Create(&user).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при создании пользователя")
		return
	}

	tokenString, err := GenerateToken(&user)
	if err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при генерации токена")
		return
	}

	common.JSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": tokenString,
	})
}

// Login: вход по email и паролю.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}
	if err := validate.Struct(&req); err != nil {
		common.Error(w, http.StatusBadRequest, "Некорректные данные входа")
		return
	}

	var user users.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Error(w, http.StatusBadRequest, "Пользователь не найден")
			return
		}
		common.Error(w, http.StatusInternalServerError, "Ошибка при поиске пользователя")
		return
	}

	if user.IsBlocked == users.StatusBlocked {
		common.Error(w, http.StatusForbidden, "Аккаунт заблокирован")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		common.Error(w, http.StatusBadRequest, "Неверный пароль")
		return
	}

	tokenString, err := GenerateToken(&user)
	if err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при генерации токена")
		return
	}

	common.JSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": tokenString,
	})
}
