package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cinetrip-backend/internal/domains/post/handler"
	"cinetrip-backend/internal/domains/post/model"
	"cinetrip-backend/internal/domains/post/service"
	"cinetrip-backend/internal/mocks"
	"cinetrip-backend/internal/shared/middleware"
	"cinetrip-backend/pkg/jwt"
)

const cookieName = "access_token"

type noImages struct{}

func (noImages) KeyFromURL(string) (string, bool) { return "", false }

func (noImages) RemoveObjects(_ context.Context, _ []string) error { return nil }

func setup(t *testing.T) (*gin.Engine, *mocks.MockPostRepository, uuid.UUID, string) {
	gin.SetMode(gin.TestMode)
	repo := mocks.NewMockPostRepository(gomock.NewController(t))
	manager := jwt.NewManager("secret", time.Hour)
	userID := uuid.New()
	token, _, err := manager.GenerateAccessToken(userID.String(), "jane@example.com")
	require.NoError(t, err)

	h := handler.NewPostHandler(service.NewService(repo, noImages{}))
	r := gin.New()
	public := r.Group("", middleware.OptionalAuthMiddleware(manager, cookieName))
	public.GET("/posts", h.List)
	public.GET("/posts/:id", h.Get)
	public.GET("/gallery", h.Gallery)
	authed := r.Group("", middleware.AuthMiddleware(manager, cookieName))
	authed.POST("/posts", h.Create)
	authed.DELETE("/posts/:id", h.Delete)
	authed.POST("/posts/:id/like", h.ToggleLike)
	return r, repo, userID, token
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList_FollowingFeedNeedsLogin(t *testing.T) {
	r, _, _, _ := setup(t)

	w := do(r, http.MethodGet, "/posts?feed=following", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodeLoginRequired)
}

func TestList_PassesViewer(t *testing.T) {
	r, repo, userID, token := setup(t)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f model.ListFilter) ([]model.PostView, int, error) {
			require.NotNil(t, f.Viewer)
			assert.Equal(t, userID, *f.Viewer)
			return []model.PostView{{LikedByMe: true}}, 1, nil
		})

	w := do(r, http.MethodGet, "/posts?page=1&limit=5", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"likedByMe":true`)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestGet_StatusMapping(t *testing.T) {
	r, repo, _, _ := setup(t)

	w := do(r, http.MethodGet, "/posts/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), nil).Return(nil, model.ErrPostNotFound)
	w = do(r, http.MethodGet, "/posts/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodePostNotFound)
}

func TestCreate_ValidationErrorHasDetails(t *testing.T) {
	r, _, _, token := setup(t)

	w := do(r, http.MethodPost, "/posts", token, `{"content":"","imageUrls":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), "imageUrls")
}

func TestCreate_RequiresAuth(t *testing.T) {
	r, _, _, _ := setup(t)
	w := do(r, http.MethodPost, "/posts", "", `{"content":"x","imageUrls":["https://a.example.com/1.jpg"]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDelete_ForbiddenForOthers(t *testing.T) {
	r, repo, _, token := setup(t)
	postID := uuid.New()
	repo.EXPECT().FindByID(gomock.Any(), postID, nil).
		Return(&model.PostView{Post: model.Post{ID: postID, AuthorID: uuid.New()}}, nil)

	w := do(r, http.MethodDelete, "/posts/"+postID.String(), token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToggleLike(t *testing.T) {
	r, repo, userID, token := setup(t)
	postID := uuid.New()
	repo.EXPECT().ToggleLike(gomock.Any(), postID, userID).Return(&model.LikeResult{Liked: true, LikeCount: 1}, nil)

	w := do(r, http.MethodPost, "/posts/"+postID.String()+"/like", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)
	assert.Contains(t, w.Body.String(), `"likeCount":1`)
}
