package githubapi_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itbird-backend/config"
	"itbird-backend/controllers/githubapi"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
	"itbird-backend/router"
	"itbird-backend/services"
	"itbird-backend/testutil"
)

// fakeGitHub поднимает заглушку GitHub API и направляет на неё пакетный клиент.
func fakeGitHub(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	githubapi.Client = services.NewGitHubClient("")
	githubapi.Client.BaseURL = srv.URL
	return srv
}

func linkGithub(t *testing.T, user *users.User, login string) {
	t.Helper()

	user.GithubUsername = &login
	user.GithubToken = "gho_test"
	if err := config.DB.Save(user).Error; err != nil {
		t.Fatalf("не удалось привязать GitHub аккаунт: %v", err)
	}
}

func reposJSON(names ...string) string {
	out := "["
	for i, name := range names {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"name":%q,"html_url":"https://github.com/octocat/%s"}`, name, name)
	}
	return out + "]"
}

func TestGetReposWithoutLinkedAccount(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()
	fakeGitHub(t, http.NotFoundHandler())

	user := testutil.CreateUser(t, "alice", "alice@example.com")

	resp := testutil.Do(t, r, "GET", "/github/repos", testutil.Token(t, user), nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetReposFillsAndServesCache(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	var calls int32
	fakeGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, "/users/octocat/repos", req.URL.Path)
		assert.Equal(t, "Bearer gho_test", req.Header.Get("Authorization"))
		w.Write([]byte(reposJSON("alpha", "beta")))
	}))

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	linkGithub(t, user, "octocat")
	token := testutil.Token(t, user)

	resp := testutil.Do(t, r, "GET", "/github/repos", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var repos []social.Repository
	testutil.Decode(t, resp, &repos)
	require.Len(t, repos, 2)
	assert.Equal(t, "alpha", repos[0].RepoName)
	assert.Equal(t, "https://github.com/octocat/beta", repos[1].RepoURL)

	// Свежий кэш: повторный запрос не ходит на GitHub
	resp = testutil.Do(t, r, "GET", "/github/repos", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetReposResyncsStaleCache(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	fakeGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(reposJSON("beta", "gamma")))
	}))

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	linkGithub(t, user, "octocat")

	stale := time.Now().UTC().Add(-25 * time.Hour)
	for _, name := range []string{"alpha", "beta"} {
		require.NoError(t, config.DB.Create(&social.Repository{
			UserID:     user.ID,
			RepoName:   name,
			RepoURL:    "https://github.com/octocat/" + name,
			LastSynced: stale,
		}).Error)
	}

	resp := testutil.Do(t, r, "GET", "/github/repos", testutil.Token(t, user), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var repos []social.Repository
	testutil.Decode(t, resp, &repos)
	require.Len(t, repos, 2)

	// Переименованный репозиторий заменён, дублей нет
	assert.Equal(t, "beta", repos[0].RepoName)
	assert.Equal(t, "gamma", repos[1].RepoName)

	var count int64
	config.DB.Model(&social.Repository{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestGetReposKeepsStaleCacheWhenGithubDown(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	fakeGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	linkGithub(t, user, "octocat")

	require.NoError(t, config.DB.Create(&social.Repository{
		UserID:     user.ID,
		RepoName:   "alpha",
		RepoURL:    "https://github.com/octocat/alpha",
		LastSynced: time.Now().UTC().Add(-25 * time.Hour),
	}).Error)

	resp := testutil.Do(t, r, "GET", "/github/repos", testutil.Token(t, user), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var repos []social.Repository
	testutil.Decode(t, resp, &repos)
	require.Len(t, repos, 1)
	assert.Equal(t, "alpha", repos[0].RepoName)
}

func TestGetReposEmptyListWhenGithubDownAndNoCache(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	fakeGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	linkGithub(t, user, "octocat")

	resp := testutil.Do(t, r, "GET", "/github/repos", testutil.Token(t, user), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "[]\n", resp.Body.String())
}

func TestCommitsProxyPassthrough(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	fakeGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/repos/octocat/alpha/commits", req.URL.Path)
		assert.Equal(t, "per_page=5", req.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"sha":"abc123"}]`))
	}))

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	linkGithub(t, user, "octocat")

	resp := testutil.Do(t, r, "GET", "/github/repos/alpha/commits?per_page=5", testutil.Token(t, user), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[{"sha":"abc123"}]`, resp.Body.String())
}

func TestBranchesProxyKeepsUpstreamStatus(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	fakeGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	linkGithub(t, user, "octocat")

	resp := testutil.Do(t, r, "GET", "/github/repos/ghost/branches", testutil.Token(t, user), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestContentsWithNestedPath(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	fakeGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/repos/octocat/alpha/contents/cmd/server/main.go", req.URL.Path)
		w.Write([]byte(`{"name":"main.go"}`))
	}))

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	linkGithub(t, user, "octocat")

	resp := testutil.Do(t, r, "GET", "/github/repos/alpha/contents/cmd/server/main.go",
		testutil.Token(t, user), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestArchiveDownload(t *testing.T) {
	testutil.SetupDB(t)
	r := router.New()

	fakeGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/repos/octocat/alpha/zipball", req.URL.Path)
		w.Write([]byte("PK\x03\x04zip-bytes"))
	}))

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	linkGithub(t, user, "octocat")

	resp := testutil.Do(t, r, "GET", "/github/repos/alpha/archive", testutil.Token(t, user), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/zip", resp.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="alpha.zip"`, resp.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK\x03\x04zip-bytes", resp.Body.String())
}
