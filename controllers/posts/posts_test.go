package posts_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itbird-backend/config"
	"itbird-backend/models/social"
	"itbird-backend/router"
	"itbird-backend/testutil"
)

func TestPostWithImageAndModeration(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	author := testutil.CreateUser(t, "alice", "alice@example.com")
	adm := testutil.CreateAdmin(t, "root", "root@example.com")

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	mw.WriteField("title", "Мой пет-проект")
	mw.WriteField("description", "на Go")
	part, err := mw.CreateFormFile("image", "screenshot.png")
	require.NoError(t, err)
	part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testutil.Token(t, author))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var item social.Post
	testutil.Decode(t, w, &item)
	assert.Equal(t, social.ModerationPending, item.Status)
	require.True(t, strings.HasPrefix(item.ImageURL, "/uploads/posts/"), "путь картинки: %s", item.ImageURL)

	onDisk := filepath.Join(config.App.UploadsDir, "posts", filepath.Base(item.ImageURL))
	_, err = os.Stat(onDisk)
	assert.NoError(t, err)

	// До модерации пост не публичен
	resp := testutil.Do(t, r, "GET", "/posts", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "[]\n", resp.Body.String())

	resp = testutil.Do(t, r, "PATCH", fmt.Sprintf("/admin/posts/%d/status", item.ID),
		testutil.Token(t, adm), map[string]string{"status": social.ModerationAccepted})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = testutil.Do(t, r, "GET", "/posts", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var public []struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	testutil.Decode(t, resp, &public)
	require.Len(t, public, 1)
	assert.Equal(t, "Мой пет-проект", public[0].Title)
	assert.Equal(t, "alice", public[0].Author)
}

func TestPostTitleRequired(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	author := testutil.CreateUser(t, "alice", "alice@example.com")

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	mw.WriteField("description", "без заголовка")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testutil.Token(t, author))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
