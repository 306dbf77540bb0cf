package testutil

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
)

// TestPassword — пароль всех тестовых пользователей.
const TestPassword = "password123"

// SetupDB поднимает in-memory базу и мигрирует все модели.
func SetupDB(t *testing.T) {
	t.Helper()

	config.Load()
	config.App.UploadsDir = t.TempDir()

	if err := config.InitTestDB(); err != nil {
		t.Fatalf("ошибка создания тестовой базы: %v", err)
	}

	err := config.DB.AutoMigrate(
		&users.User{},
		&social.Friendship{},
		&social.Chat{},
		&social.Message{},
		&social.News{},
		&social.Post{},
		&social.Forum{},
		&social.Answer{},
		&social.Repository{},
	)
	if err != nil {
		t.Fatalf("ошибка миграций: %v", err)
	}
}

// CreateUser создаёт пользователя с паролем TestPassword.
func CreateUser(t *testing.T, username, email string) *users.User {
	t.Helper()
	return createUser(t, username, email, users.RoleUser)
}

// CreateAdmin создаёт администратора с паролем TestPassword.
func CreateAdmin(t *testing.T, username, email string) *users.User {
	t.Helper()
	return createUser(t, username, email, users.RoleAdmin)
}

func createUser(t *testing.T, username, email, role string) *users.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("ошибка хэширования пароля: %v", err)
	}

	user := &users.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		IsBlocked: users.StatusActive,
	}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("ошибка создания пользователя: %v", err)
	}
	return user
}

// Token выпускает JWT для пользователя.
func Token(t *testing.T, user *users.User) string {
	t.Helper()

	token, err := authentication.GenerateToken(user)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}
	return token
}
