package hackathons

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/net/html"

	"itbird-backend/config"
	"itbird-backend/controllers/common"
)

const cacheKey = "hackathons"

var (
	pageCache  = cache.New(time.Hour, 2*time.Hour)
	httpClient = &http.Client{Timeout: 20 * time.Second}
)

type Hackathon struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Image string `json:"image"`
}

// List: список хакатонов, собранный со внешней страницы. Результат кэшируется
// на час; при недоступности источника отдаётся 502.
func List(w http.ResponseWriter, r *http.Request) {
	if cached, ok := pageCache.Get(cacheKey); ok {
		common.JSON(w, http.StatusOK, cached)
		return
	}

	items, err := fetch(config.App.HackathonsURL)
	if err != nil {
		slog.Warn("не удалось получить страницу хакатонов", "error", err)
		common.Error(w, http.StatusBadGateway, "Источник хакатонов недоступен")
		return
	}

	pageCache.Set(cacheKey, items, cache.DefaultExpiration)
	common.JSON(w, http.StatusOK, items)
}

func fetch(url string) ([]Hackathon, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httpError{status: resp.StatusCode}
	}

	return parse(resp.Body)
}

type httpError struct{ status int }

func (e *httpError) Error() string { return "unexpected status " + http.StatusText(e.status) }

// parse обходит документ и собирает ссылки с картинками — карточки листинга.
// Страница внешняя, структура может меняться; парсинг нарочно нестрогий.
func parse(r io.Reader) ([]Hackathon, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	items := []Hackathon{}
	seen := map[string]bool{}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			if href != "" && !strings.HasPrefix(href, "#") {
				if img := findImage(n); img != nil {
					title := strings.TrimSpace(attr(img, "alt"))
					if title == "" {
						title = strings.TrimSpace(textContent(n))
					}
					if title != "" && !seen[href] {
						seen[href] = true
						items = append(items, Hackathon{
							Title: title,
							URL:   href,
							Image: attr(img, "src"),
						})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return items, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func findImage(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "img" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if img := findImage(c); img != nil {
			return img
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
