package admin_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itbird-backend/config"
	"itbird-backend/models/users"
	"itbird-backend/router"
	"itbird-backend/testutil"
)

func TestStatisticsRejectsUnknownPeriod(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	adm := testutil.CreateAdmin(t, "root", "root@example.com")

	resp := testutil.Do(t, r, "GET", "/admin/statistics?period=decade", testutil.Token(t, adm), nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestStatisticsRequiresAdmin(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	user := testutil.CreateUser(t, "alice", "alice@example.com")

	resp := testutil.Do(t, r, "GET", "/admin/statistics", testutil.Token(t, user), nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestBlockAndUnblockUser(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	adm := testutil.CreateAdmin(t, "root", "root@example.com")
	adminToken := testutil.Token(t, adm)
	victim := testutil.CreateUser(t, "alice", "alice@example.com")

	resp := testutil.Do(t, r, "PATCH", fmt.Sprintf("/admin/users/%d/block", victim.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var blocked users.User
	config.DB.First(&blocked, victim.ID)
	assert.Equal(t, users.StatusBlocked, blocked.IsBlocked)

	// Заблокированный пользователь не может войти даже с верным паролем
	resp = testutil.Do(t, r, "POST", "/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": testutil.TestPassword,
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = testutil.Do(t, r, "PATCH", fmt.Sprintf("/admin/users/%d/unblock", victim.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = testutil.Do(t, r, "POST", "/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": testutil.TestPassword,
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBlockUnknownUser(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	adm := testutil.CreateAdmin(t, "root", "root@example.com")
	resp := testutil.Do(t, r, "PATCH", "/admin/users/999/block", testutil.Token(t, adm), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteUser(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	adm := testutil.CreateAdmin(t, "root", "root@example.com")
	victim := testutil.CreateUser(t, "alice", "alice@example.com")

	resp := testutil.Do(t, r, "DELETE", fmt.Sprintf("/admin/users/%d", victim.ID), testutil.Token(t, adm), nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var count int64
	config.DB.Model(&users.User{}).Where("id = ?", victim.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Токен удалённого пользователя больше не работает
	resp = testutil.Do(t, r, "GET", "/profile", testutil.Token(t, victim), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAdminListUsers(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	adm := testutil.CreateAdmin(t, "root", "root@example.com")
	testutil.CreateUser(t, "alice", "alice@example.com")
	testutil.CreateUser(t, "bob", "bob@example.com")

	resp := testutil.Do(t, r, "GET", "/admin/users", testutil.Token(t, adm), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var list []users.User
	testutil.Decode(t, resp, &list)
	assert.Len(t, list, 3)
}
