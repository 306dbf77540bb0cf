package hackathons

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itbird-backend/config"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
  <nav><a href="#main">Перейти к содержимому</a></nav>
  <div class="cards">
    <a href="https://example.com/hack/go-hack-2026">
      <img src="/img/go-hack.png" alt="Go Hack 2026">
    </a>
    <a href="https://example.com/hack/ml-cup">
      <div><img src="/img/ml-cup.png" alt=""><span>ML Cup</span></div>
    </a>
    <a href="https://example.com/hack/go-hack-2026">
      <img src="/img/go-hack.png" alt="Go Hack 2026 (дубль)">
    </a>
    <a href="https://example.com/about">О нас</a>
  </div>
</body></html>`

func TestParseListing(t *testing.T) {
	items, err := parse(strings.NewReader(listingHTML))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Go Hack 2026", items[0].Title)
	assert.Equal(t, "https://example.com/hack/go-hack-2026", items[0].URL)
	assert.Equal(t, "/img/go-hack.png", items[0].Image)

	// Пустой alt — заголовок берётся из текста ссылки
	assert.Equal(t, "ML Cup", items[1].Title)
}

func TestListCachesUpstreamPage(t *testing.T) {
	config.Load()
	pageCache.Flush()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(listingHTML))
	}))
	defer srv.Close()
	config.App.HackathonsURL = srv.URL

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		List(w, httptest.NewRequest("GET", "/hackathons", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Go Hack 2026")
	}

	// Повторные запросы идут из кэша
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestListUpstreamUnavailable(t *testing.T) {
	config.Load()
	pageCache.Flush()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	config.App.HackathonsURL = srv.URL

	w := httptest.NewRecorder()
	List(w, httptest.NewRequest("GET", "/hackathons", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
