package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GitHubClient — тонкий клиент публичного GitHub API. Запросы подписываются
// токеном пользователя, если он привязан, иначе серверным PAT.
type GitHubClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		BaseURL:    "https://api.github.com",
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type GitHubRepo struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

func (c *GitHubClient) do(path, query, userToken string) (*http.Response, error) {
	url := c.BaseURL + path
	if query != "" {
		url += "?" + query
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	token := userToken
	if token == "" {
		token = c.Token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.HTTPClient.Do(req)
}

// ListRepos возвращает список репозиториев пользователя.
func (c *GitHubClient) ListRepos(username, userToken string) ([]GitHubRepo, error) {
	resp, err := c.do("/users/"+username+"/repos", "per_page=100&sort=updated", userToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: unexpected status %d", resp.StatusCode)
	}

	var repos []GitHubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Proxy выполняет запрос и возвращает тело ответа GitHub как есть.
func (c *GitHubClient) Proxy(path, query, userToken string) ([]byte, int, error) {
	resp, err := c.do(path, query, userToken)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// Archive открывает поток zip-архива репозитория. Закрыть поток должен вызывающий.
func (c *GitHubClient) Archive(owner, repo, userToken string) (io.ReadCloser, error) {
	resp, err := c.do(fmt.Sprintf("/repos/%s/%s/zipball", owner, repo), "", userToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("github: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
