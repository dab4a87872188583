package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"reelsense/domain"
	"reelsense/pkg/logger"
	"reelsense/pkg/metrics"
)

type (
	RecommendHandler struct {
		validate *validator.Validate
		service  RecommenderService
		cache    RecommendationCache
	}

	// RecommenderService is the engine boundary the handler depends on.
	RecommenderService interface {
		Recommend(ctx context.Context, userID, topK int) ([]domain.Recommendation, error)
		DebugRecommend(ctx context.Context, userID, topK int) ([]domain.DebugRecommendation, error)
		LikedHistory(userID, topN int) []domain.LikedMovie
		TagProfile(userID int) []string
		Strategy() string
	}

	// RecommendationCache caches finished lists; nil disables caching.
	RecommendationCache interface {
		Get(ctx context.Context, userID, topK int, strategy string) ([]domain.Recommendation, bool)
		Set(ctx context.Context, userID, topK int, strategy string, recs []domain.Recommendation) error
	}

	RecommendQuery struct {
		UserID int `query:"user_id" validate:"required,min=1"`
		TopK   int `query:"top_k"`
	}
)

func NewRecommendHandler(service RecommenderService, cache RecommendationCache) *RecommendHandler {
	return &RecommendHandler{
		validate: validator.New(),
		service:  service,
		cache:    cache,
	}
}

// Recommend responds with the bare ordered array of recommendation
// records: the record sequence itself is the compatibility contract with
// existing consumers.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.TopK <= 0 {
		q.TopK = 10
	}

	ctx := c.Request().Context()

	if h.cache != nil {
		if recs, ok := h.cache.Get(ctx, q.UserID, q.TopK, h.service.Strategy()); ok {
			metrics.RecommendCacheHits.Inc()
			metrics.RecommendRequests.Inc()
			metrics.RecommendLatency.Observe(time.Since(start).Seconds())
			return c.JSON(http.StatusOK, recs)
		}
	}

	recs, err := h.service.Recommend(ctx, q.UserID, q.TopK)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, q.UserID, q.TopK, h.service.Strategy(), recs); err != nil {
			logger.Warn("recommendation cache write failed", "error", err)
		}
	}

	metrics.RecommendRequests.Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, recs)
}

// DebugRecommend exposes score components and skip reasons.
// GET /api/v1/recommendations/debug?user_id=1&top_k=10
func (h *RecommendHandler) DebugRecommend(c echo.Context) error {
	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.TopK <= 0 {
		q.TopK = 10
	}

	recs, err := h.service.DebugRecommend(c.Request().Context(), q.UserID, q.TopK)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// History returns the user's liked movies plus the derived tag profile,
// shown by the UI next to the recommendation list.
// GET /api/v1/users/:id/history
func (h *RecommendHandler) History(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID < 1 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	topN := 0
	if v := c.QueryParam("n"); v != "" {
		topN, _ = strconv.Atoi(v)
	}

	payload := map[string]any{
		"liked":       h.service.LikedHistory(userID, topN),
		"tag_profile": h.service.TagProfile(userID),
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(payload))
}
