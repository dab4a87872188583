package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"reelsense/domain"
)

type stubRecommender struct {
	lastUserID int
	lastTopK   int
	recs       []domain.Recommendation
}

func (s *stubRecommender) Recommend(ctx context.Context, userID, topK int) ([]domain.Recommendation, error) {
	s.lastUserID = userID
	s.lastTopK = topK
	return s.recs, nil
}

func (s *stubRecommender) DebugRecommend(ctx context.Context, userID, topK int) ([]domain.DebugRecommendation, error) {
	return nil, nil
}

func (s *stubRecommender) LikedHistory(userID, topN int) []domain.LikedMovie {
	return nil
}

func (s *stubRecommender) TagProfile(userID int) []string {
	return nil
}

func (s *stubRecommender) Strategy() string {
	return "tags"
}

func doRecommend(t *testing.T, svc RecommenderService, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewRecommendHandler(svc, nil)
	if err := h.Recommend(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRecommendHandlerReturnsBareArray(t *testing.T) {
	svc := &stubRecommender{
		recs: []domain.Recommendation{
			{MovieID: 2, Title: "Heat", PredictedRating: 3.7, MatchPercentage: 80.0, Explanation: "x"},
		},
	}

	rec := doRecommend(t, svc, "/api/v1/recommendations?user_id=5&top_k=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.lastUserID != 5 || svc.lastTopK != 3 {
		t.Fatalf("service called with user=%d k=%d", svc.lastUserID, svc.lastTopK)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a bare array: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("body=%v", body)
	}
	for _, field := range []string{"movieId", "title", "predicted_rating", "match_percentage", "explanation"} {
		if _, ok := body[0][field]; !ok {
			t.Errorf("record missing contract field %q", field)
		}
	}
}

func TestRecommendHandlerDefaultsTopK(t *testing.T) {
	svc := &stubRecommender{}

	rec := doRecommend(t, svc, "/api/v1/recommendations?user_id=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.lastTopK != 10 {
		t.Fatalf("default top_k=%d, want 10", svc.lastTopK)
	}
}

func TestRecommendHandlerRejectsMissingUserID(t *testing.T) {
	rec := doRecommend(t, &stubRecommender{}, "/api/v1/recommendations")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestRecommendHandlerRejectsMalformedUserID(t *testing.T) {
	rec := doRecommend(t, &stubRecommender{}, "/api/v1/recommendations?user_id=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}
