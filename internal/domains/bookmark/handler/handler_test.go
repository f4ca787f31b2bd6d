package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrip-backend/internal/domains/bookmark/handler"
	"cinetrip-backend/internal/domains/bookmark/repository"
	"cinetrip-backend/internal/domains/bookmark/service"
	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/pkg/jwt"
)

const cookieName = "access_token"

func setup(t *testing.T) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	manager := jwt.NewManager("secret", time.Hour)
	token, _, err := manager.GenerateAccessToken(uuid.New().String(), "jane@example.com")
	require.NoError(t, err)

	h := handler.NewBookmarkHandler(service.NewService(repository.NewMemoryRepository()))
	r := gin.New()
	g := r.Group("/bookmarks", middleware.AuthMiddleware(manager, cookieName))
	g.GET("", h.List)
	g.POST("", h.Add)
	g.GET("/:tmdbId", h.Status)
	g.DELETE("/:tmdbId", h.Remove)
	return r, token
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookmarkLifecycle(t *testing.T) {
	r, token := setup(t)

	w := do(r, http.MethodPost, "/bookmarks", token, `{"tmdbId":496243,"title":"Parasite","posterPath":"/p.jpg"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, "/bookmarks/496243", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookmarked":true}`, dataOf(t, w))

	w = do(r, http.MethodGet, "/bookmarks?page=1&limit=10", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Meta.Total)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Parasite", body.Data[0]["title"])

	w = do(r, http.MethodDelete, "/bookmarks/496243", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/bookmarks/496243", token, "")
	assert.JSONEq(t, `{"bookmarked":false}`, dataOf(t, w))
}

func TestBookmark_RequiresAuth(t *testing.T) {
	r, _ := setup(t)
	w := do(r, http.MethodGet, "/bookmarks", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookmark_InvalidInput(t *testing.T) {
	r, token := setup(t)

	w := do(r, http.MethodPost, "/bookmarks", token, `{"tmdbId":0,"title":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = do(r, http.MethodDelete, "/bookmarks/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MOV002")
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return string(env.Data)
}
