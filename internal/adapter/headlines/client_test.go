package headlines

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"newsfeed/internal/config"
	"newsfeed/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(config.SourceConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Country: "in",
	}, logger)
}

func TestClient_TopHeadlines_Success(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "technology", r.URL.Query().Get("category"))
		assert.Equal(t, "in", r.URL.Query().Get("country"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{
					"author": "Jane Doe",
					"title": "Chips keep shrinking",
					"description": "A new process node",
					"url": "https://example.com/chips",
					"urlToImage": "https://example.com/chips.jpg",
					"publishedAt": "2024-05-01T10:30:00Z",
					"content": "Long body"
				},
				{
					"title": "No image here",
					"url": "https://example.com/plain",
					"urlToImage": "",
					"publishedAt": "not-a-date"
				}
			]
		}`))
	}))
	defer testServer.Close()

	client := newTestClient(testServer.URL)
	articles, err := client.TopHeadlines(context.Background(), domain.CategoryTechnology)

	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Chips keep shrinking", articles[0].Title)
	assert.Equal(t, "A new process node", articles[0].Description)
	assert.Equal(t, "https://example.com/chips", articles[0].URL)
	assert.Equal(t, "https://example.com/chips.jpg", articles[0].ImageURL)
	assert.Equal(t, domain.CategoryTechnology, articles[0].Category)
	assert.Equal(t, "Jane Doe", articles[0].Author)
	assert.Equal(t, "Long body", articles[0].Content)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), articles[0].PublishedAt)

	// Статья без картинки и с кривой датой возвращается как есть,
	// отбраковка - дело санитайзера.
	assert.Equal(t, "No image here", articles[1].Title)
	assert.Equal(t, domain.CategoryTechnology, articles[1].Category)
	assert.True(t, articles[1].PublishedAt.IsZero())
}

func TestClient_TopHeadlines_NotFound(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer testServer.Close()

	client := newTestClient(testServer.URL)
	articles, err := client.TopHeadlines(context.Background(), domain.CategorySports)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 404")
	assert.Nil(t, articles)
}

func TestClient_TopHeadlines_ProviderError(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid"}`))
	}))
	defer testServer.Close()

	client := newTestClient(testServer.URL)
	articles, err := client.TopHeadlines(context.Background(), domain.CategoryHealth)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), `provider status "error"`)
	assert.Nil(t, articles)
}

func TestClient_TopHeadlines_InvalidJSON(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "articles": [`))
	}))
	defer testServer.Close()

	client := newTestClient(testServer.URL)
	articles, err := client.TopHeadlines(context.Background(), domain.CategoryGeneral)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
	assert.Nil(t, articles)
}

func TestClient_TopHeadlines_ContextCancelled(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "articles": []}`))
	}))
	defer testServer.Close()

	client := newTestClient(testServer.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	articles, err := client.TopHeadlines(ctx, domain.CategoryScience)

	assert.Error(t, err)
	assert.Nil(t, articles)
}
