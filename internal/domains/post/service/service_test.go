package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cinetrip-backend/internal/domains/post/model"
	"cinetrip-backend/internal/domains/post/service"
	"cinetrip-backend/internal/mocks"
	"cinetrip-backend/internal/shared"
)

const bucketURL = "https://cdn.example.com/cinetrip/"

type fakeImages struct {
	removed [][]string
	err     error
}

func (f *fakeImages) KeyFromURL(raw string) (string, bool) {
	if !strings.HasPrefix(raw, bucketURL) {
		return "", false
	}
	return strings.TrimPrefix(raw, bucketURL), true
}

func (f *fakeImages) RemoveObjects(_ context.Context, keys []string) error {
	f.removed = append(f.removed, keys)
	return f.err
}

func newService(t *testing.T) (service.Service, *mocks.MockPostRepository, *fakeImages) {
	repo := mocks.NewMockPostRepository(gomock.NewController(t))
	images := &fakeImages{}
	return service.NewService(repo, images), repo, images
}

func postCode(t *testing.T, err error) string {
	t.Helper()
	var pErr *model.PostError
	require.ErrorAs(t, err, &pErr)
	return pErr.Code
}

func TestCreate_ValidatesBeforeIO(t *testing.T) {
	svc, _, _ := newService(t)

	tests := []struct {
		name string
		req  model.CreatePostRequest
	}{
		{name: "blank content", req: model.CreatePostRequest{Content: "   ", ImageURLs: []string{bucketURL + "a.jpg"}}},
		{name: "no images", req: model.CreatePostRequest{Content: "Namsan at night"}},
		{name: "too many images", req: model.CreatePostRequest{Content: "x", ImageURLs: make([]string, 11)}},
		{name: "not a url", req: model.CreatePostRequest{Content: "x", ImageURLs: []string{"not a url"}}},
		{name: "content too long", req: model.CreatePostRequest{Content: strings.Repeat("가", 2001), ImageURLs: []string{bucketURL + "a.jpg"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tt.req)
			assert.Equal(t, model.ErrCodeInvalidRequest, postCode(t, err))

			var verrs validation.Errors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestCreate_ReturnsViewWithAuthor(t *testing.T) {
	svc, repo, _ := newService(t)
	authorID := uuid.New()
	postID := uuid.New()
	tmdbID := 496243

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *model.Post) error {
			assert.Equal(t, "Stairs from Parasite", p.Content)
			assert.Equal(t, authorID, p.AuthorID)
			assert.Equal(t, &tmdbID, p.TMDBID)
			p.ID = postID
			return nil
		})
	repo.EXPECT().FindByID(gomock.Any(), postID, &authorID).
		Return(&model.PostView{Post: model.Post{ID: postID, AuthorID: authorID}, Author: model.Author{ID: authorID, Nickname: "jane"}}, nil)

	view, err := svc.Create(context.Background(), authorID, model.CreatePostRequest{
		Content:   "  Stairs from Parasite ",
		ImageURLs: []string{bucketURL + "posts/a.jpg"},
		TMDBID:    &tmdbID,
	})
	require.NoError(t, err)
	assert.Equal(t, "jane", view.Author.Nickname)
}

func TestCreate_UnknownReference(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(model.ErrUnknownReference)

	tmdbID := 1
	_, err := svc.Create(context.Background(), uuid.New(), model.CreatePostRequest{
		Content: "x", ImageURLs: []string{bucketURL + "a.jpg"}, TMDBID: &tmdbID,
	})
	assert.Equal(t, model.ErrCodeUnknownReference, postCode(t, err))
}

func TestDelete_OnlyAuthorAndCleansImages(t *testing.T) {
	svc, repo, images := newService(t)
	authorID := uuid.New()
	postID := uuid.New()
	post := &model.PostView{Post: model.Post{
		ID:        postID,
		AuthorID:  authorID,
		ImageURLs: []string{bucketURL + "posts/u/1.jpg", "https://elsewhere.example.com/2.jpg"},
	}}

	repo.EXPECT().FindByID(gomock.Any(), postID, nil).Return(post, nil).Times(2)

	err := svc.Delete(context.Background(), uuid.New(), postID)
	assert.Equal(t, model.ErrCodeForbidden, postCode(t, err))
	assert.Empty(t, images.removed)

	repo.EXPECT().Delete(gomock.Any(), postID).Return(nil)
	images.err = errors.New("bucket offline")
	require.NoError(t, svc.Delete(context.Background(), authorID, postID))
	require.Len(t, images.removed, 1)
	assert.Equal(t, []string{"posts/u/1.jpg"}, images.removed[0])
}

func TestGet_NotFound(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, model.ErrPostNotFound)

	_, err := svc.Get(context.Background(), uuid.New(), nil)
	assert.Equal(t, model.ErrCodePostNotFound, postCode(t, err))
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestList_FollowingFeed(t *testing.T) {
	svc, repo, _ := newService(t)

	_, _, err := svc.List(context.Background(), nil, model.ListPostsQuery{Feed: model.FeedFollowing})
	assert.Equal(t, model.ErrCodeLoginRequired, postCode(t, err))

	viewer := uuid.New()
	repo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f model.ListFilter) ([]model.PostView, int, error) {
			assert.Equal(t, &viewer, f.FollowedBy)
			assert.Equal(t, 10, f.Limit)
			assert.Equal(t, 10, f.Offset)
			return []model.PostView{}, 0, nil
		})

	_, _, err = svc.List(context.Background(), &viewer, model.ListPostsQuery{
		Pagination: shared.Pagination{Page: 2, Limit: 10},
		Feed:       model.FeedFollowing,
	})
	require.NoError(t, err)

	_, _, err = svc.List(context.Background(), &viewer, model.ListPostsQuery{Feed: "trending"})
	assert.Equal(t, model.ErrCodeInvalidRequest, postCode(t, err))
}

func TestGallery_FiltersByMovieAndImages(t *testing.T) {
	svc, repo, _ := newService(t)
	tmdbID := 496243

	repo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f model.ListFilter) ([]model.PostView, int, error) {
			assert.True(t, f.WithImages)
			assert.Equal(t, &tmdbID, f.TMDBID)
			assert.Nil(t, f.SceneLocationID)
			assert.Equal(t, shared.DefaultPageSize, f.Limit)
			return []model.PostView{{}}, 1, nil
		})

	posts, total, err := svc.Gallery(context.Background(), nil, model.GalleryQuery{TMDBID: &tmdbID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, posts, 1)
}

func TestToggleLike(t *testing.T) {
	svc, repo, _ := newService(t)
	userID, postID := uuid.New(), uuid.New()

	repo.EXPECT().ToggleLike(gomock.Any(), postID, userID).Return(&model.LikeResult{Liked: true, LikeCount: 3}, nil)
	result, err := svc.ToggleLike(context.Background(), userID, postID)
	require.NoError(t, err)
	assert.Equal(t, &model.LikeResult{Liked: true, LikeCount: 3}, result)

	repo.EXPECT().ToggleLike(gomock.Any(), postID, userID).Return(nil, model.ErrPostNotFound)
	_, err = svc.ToggleLike(context.Background(), userID, postID)
	assert.Equal(t, model.ErrCodePostNotFound, postCode(t, err))
}

func TestComments(t *testing.T) {
	svc, repo, _ := newService(t)
	userID, postID, commentID := uuid.New(), uuid.New(), uuid.New()

	_, err := svc.AddComment(context.Background(), userID, postID, model.CreateCommentRequest{Content: strings.Repeat("a", 501)})
	assert.Equal(t, model.ErrCodeInvalidRequest, postCode(t, err))

	repo.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *model.Comment) error {
			assert.Equal(t, "nice spot", c.Content)
			c.ID = commentID
			return nil
		})
	comment, err := svc.AddComment(context.Background(), userID, postID, model.CreateCommentRequest{Content: " nice spot "})
	require.NoError(t, err)
	assert.Equal(t, commentID, comment.ID)

	stored := &model.Comment{ID: commentID, PostID: postID, AuthorID: userID}
	repo.EXPECT().FindCommentByID(gomock.Any(), commentID).Return(stored, nil).Times(2)

	err = svc.DeleteComment(context.Background(), uuid.New(), commentID)
	assert.Equal(t, model.ErrCodeForbidden, postCode(t, err))

	repo.EXPECT().DeleteComment(gomock.Any(), stored).Return(nil)
	require.NoError(t, svc.DeleteComment(context.Background(), userID, commentID))
}

func TestListComments_UnknownPost(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), nil).Return(nil, model.ErrPostNotFound)

	_, _, err := svc.ListComments(context.Background(), uuid.New(), shared.Pagination{})
	assert.Equal(t, model.ErrCodePostNotFound, postCode(t, err))
}
