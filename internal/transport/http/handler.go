package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"newsfeed/internal/domain"
)

type feedService interface {
	GetFeed(ctx context.Context, selector domain.Category, forceRefresh bool) []domain.Article
	ArticleByURL(url string) (domain.Article, bool)
	RecordSelection(ctx context.Context, category domain.Category) error
}

type Handler struct {
	log  *slog.Logger
	feed feedService
}

func NewHandler(log *slog.Logger, feed feedService) *Handler {
	return &Handler{
		log:  log,
		feed: feed,
	}
}

// getFeed - хендлер для эндпоинта GET /api/feed.
// Параметр category задает селектор (по умолчанию "all"),
// refresh=true форсирует пересборку в обход окна свежести.
// Пустая лента - валидный ответ 200 с пустым списком, не ошибка.
func (h *Handler) getFeed(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/getFeed"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	if r.Method != http.MethodGet {
		log.Warn("method not allowed")
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	selectorStr := r.URL.Query().Get("category")
	if selectorStr == "" {
		selectorStr = string(domain.CategoryAll)
	}
	selector, err := domain.ParseCategory(selectorStr)
	if err != nil {
		log.Warn("invalid category parameter", slog.String("category", selectorStr))
		respondWithError(w, http.StatusBadRequest, "Invalid 'category' parameter")
		return
	}
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	batch := h.feed.GetFeed(r.Context(), selector, forceRefresh)

	respondWithJSON(w, http.StatusOK, batch)
}

// getArticle - хендлер для эндпоинта GET /api/article.
// Ищет статью по точному URL в снимке последней собранной пачки.
// Промах - пользовательское 404, состояние сервиса при этом штатное.
func (h *Handler) getArticle(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/getArticle"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	if r.Method != http.MethodGet {
		log.Warn("method not allowed")
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	url := r.URL.Query().Get("url")
	if url == "" {
		log.Warn("missing url parameter")
		respondWithError(w, http.StatusBadRequest, "Missing 'url' parameter")
		return
	}
	article, ok := h.feed.ArticleByURL(url)
	if !ok {
		log.Info("article not in current snapshot", slog.String("url", url))
		respondWithError(w, http.StatusNotFound, "Article not found")
		return
	}
	respondWithJSON(w, http.StatusOK, article)
}

type selectionRequest struct {
	Category string `json:"category"`
}

// postSelection - хендлер для эндпоинта POST /api/selection.
// Фиксирует переход пользователя к статье указанной рубрики.
// Селектор "all" не рубрика и кликом считаться не может.
func (h *Handler) postSelection(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/postSelection"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	if r.Method != http.MethodPost {
		log.Warn("method not allowed")
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request body", slog.Any("error", err))
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil || category == domain.CategoryAll {
		log.Warn("invalid selection category", slog.String("category", req.Category))
		respondWithError(w, http.StatusBadRequest, "Invalid 'category' value")
		return
	}
	if err := h.feed.RecordSelection(r.Context(), category); err != nil {
		log.Error("Failed to record selection", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// healthCheck - хендлер для проверки состояния сервиса
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Вспомогательные функции для ответов
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
