package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	moviemodel "cinetrip-backend/internal/domains/movie/model"
	movierepo "cinetrip-backend/internal/domains/movie/repository"
	"cinetrip-backend/internal/domains/scene/model"
	"cinetrip-backend/internal/domains/scene/repository"
	"cinetrip-backend/internal/domains/scene/service"
	"cinetrip-backend/internal/infrastructure/llm"
	"cinetrip-backend/internal/mocks"
)

const parasite = 496243

type fixture struct {
	generator *mocks.MockGenerator
	provider  *mocks.MockMovieProvider
	scenes    *repository.MemoryRepository
	movies    *movierepo.MemoryRepository
	resolver  service.Resolver
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		generator: mocks.NewMockGenerator(ctrl),
		provider:  mocks.NewMockMovieProvider(ctrl),
		scenes:    repository.NewMemoryRepository(),
		movies:    movierepo.NewMemoryRepository(),
	}
	f.resolver = service.NewResolver(f.scenes, f.movies, f.provider, f.generator, nil, nil)
	return f
}

func (f *fixture) knownMovie() {
	f.provider.EXPECT().Get(gomock.Any(), parasite).Return(moviemodel.MovieMetadata{
		TMDBID:        parasite,
		Title:         "기생충",
		OriginalTitle: "기생충",
		ReleaseDate:   "2019-05-30",
		Country:       "South Korea",
		Language:      "ko",
		Source:        moviemodel.SourceFound,
	}).AnyTimes()
}

func items(prefix string, n int) []json.RawMessage {
	out := make([]json.RawMessage, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, json.RawMessage(fmt.Sprintf(
			`{"id":%d,"name":"%s %d","scene":"scene %d","timestamp":"00:%02d:00","address":"address %d","country":"South Korea","city":"Seoul","lat":37.5%d,"lng":126.9%d}`,
			i, prefix, i, i, i, i, i, i,
		)))
	}
	return out
}

func names(locations []*model.SceneLocation) []string {
	out := make([]string, 0, len(locations))
	for _, l := range locations {
		out = append(out, l.Name)
	}
	return out
}

func TestResolve_CacheHitIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return(items("Place", 3), nil).Times(1)

	first, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	movie, err := f.movies.GetByID(context.Background(), parasite)
	require.NoError(t, err)
	assert.Equal(t, "기생충", movie.Title)
}

func TestResolve_CapsAtFiveLocations(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return(items("Place", 7), nil)

	locations, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Place 1", "Place 2", "Place 3", "Place 4", "Place 5"}, names(locations))

	stored, err := f.scenes.FindByMovieOrdered(context.Background(), parasite, 0)
	require.NoError(t, err)
	assert.Len(t, stored, 5)
}

func TestResolve_ForcedRegenerationReplacesSet(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()
	gomock.InOrder(
		f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return(items("Old", 5), nil),
		f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return(items("New", 3), nil),
	)

	_, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	require.NoError(t, err)

	locations, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{ForceRegenerate: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"New 1", "New 2", "New 3"}, names(locations))

	stored, err := f.scenes.FindByMovieOrdered(context.Background(), parasite, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"New 1", "New 2", "New 3"}, names(stored))
}

func TestResolve_ForcedGenerationFailureKeepsCachedRows(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()
	gomock.InOrder(
		f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return(items("Place", 5), nil),
		f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).
			Return(nil, &llm.UpstreamError{StatusCode: 500, Detail: "internal error"}),
	)

	before, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	require.NoError(t, err)

	_, err = f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{ForceRegenerate: true})
	require.Error(t, err)
	assert.True(t, model.IsGenerationFailed(err))

	var sceneErr *model.SceneError
	require.ErrorAs(t, err, &sceneErr)
	assert.Equal(t, model.ErrCodeGenerationFailed, sceneErr.Code)

	var upErr *llm.UpstreamError
	assert.ErrorAs(t, err, &upErr)

	after, err := f.scenes.FindByMovieOrdered(context.Background(), parasite, 0)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestResolve_ConfigurationErrorIsGenerationFailure(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).
		Return(nil, &llm.ConfigurationError{Message: "OPENAI_API_KEY is not set"})

	locations, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	assert.Nil(t, locations)
	assert.True(t, model.IsGenerationFailed(err))
}

func TestResolve_MalformedCandidatesAreNormalized(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return([]json.RawMessage{
		json.RawMessage(`{"name":"Stairs","scene":"rain","address":"Jahamun-ro","country":"South Korea","city":"Seoul","lat":"north","lng":126.96}`),
		json.RawMessage(`{"scene":"","lat":null}`),
		json.RawMessage(`"not an object"`),
	}, nil)

	locations, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, locations, 3)

	for _, l := range locations {
		assert.True(t, l.Lat.Equal(decimal.RequireFromString("37.5665")), l.Lat.String())
		assert.True(t, l.Lng.Equal(decimal.RequireFromString("126.978")), l.Lng.String())
	}
	assert.Equal(t, "Stairs", locations[0].Name)
	assert.Equal(t, "Filming location 2", locations[1].Name)
	assert.Equal(t, model.PlaceholderScene, locations[1].Scene)
	assert.Equal(t, model.UnknownValue, locations[1].Address)
	assert.Equal(t, "Filming location 3", locations[2].Name)
}

func TestResolve_EmptyForcedResultClearsMovie(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()
	gomock.InOrder(
		f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return(items("Place", 2), nil),
		f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return([]json.RawMessage{}, nil),
	)

	_, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	require.NoError(t, err)

	locations, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{ForceRegenerate: true})
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestResolve_OverrideSkipsMetadataLookup(t *testing.T) {
	f := newFixture(t)
	f.provider.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) ([]json.RawMessage, error) {
			assert.Contains(t, prompt, "Title: My Indie Film")
			assert.Contains(t, prompt, "Production country: Unknown")
			return items("Place", 1), nil
		})

	_, err := f.resolver.Resolve(context.Background(), 999001, model.ResolveOptions{
		MovieInfoOverride: &model.MovieInfoOverride{Title: "My Indie Film"},
	})
	require.NoError(t, err)

	movie, err := f.movies.GetByID(context.Background(), 999001)
	require.NoError(t, err)
	assert.Equal(t, "My Indie Film", movie.Title)
}

func TestResolve_PlaceholderMetadataKeepsStoredTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.movies.Upsert(ctx, &moviemodel.Movie{TMDBID: 42, Title: "Real Title"}))

	f.provider.EXPECT().Get(gomock.Any(), 42).Return(moviemodel.MovieMetadata{
		TMDBID: 42, Title: "Movie #42", Country: "Unknown", Language: "Unknown", Source: moviemodel.SourceSynthesized,
	})
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return(items("Place", 1), nil)

	_, err := f.resolver.Resolve(ctx, 42, model.ResolveOptions{})
	require.NoError(t, err)

	movie, err := f.movies.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Real Title", movie.Title)
}

func TestResolve_InvalidMovieID(t *testing.T) {
	f := newFixture(t)

	_, err := f.resolver.Resolve(context.Background(), 0, model.ResolveOptions{})

	var sceneErr *model.SceneError
	require.ErrorAs(t, err, &sceneErr)
	assert.Equal(t, model.ErrCodeInvalidRequest, sceneErr.Code)
	assert.ErrorIs(t, err, model.ErrInvalidMovieID)
}

func TestResolve_ConcurrentMissesShareOneGeneration(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()

	release := make(chan struct{})
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) ([]json.RawMessage, error) {
			<-release
			return items("Place", 2), nil
		}).Times(1)

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]*model.SceneLocation, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
		}(i)
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"Place 1", "Place 2"}, names(results[i]))
	}
}

// blockingGenerator answers once release is closed, or fails when its own ctx ends first.
func blockingGenerator(started chan<- struct{}, release <-chan struct{}) func(context.Context, string) ([]json.RawMessage, error) {
	return func(ctx context.Context, _ string) ([]json.RawMessage, error) {
		started <- struct{}{}
		select {
		case <-release:
			return items("Place", 2), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func TestResolve_FirstCallerCancelDoesNotFailWaitingCallers(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).
		DoAndReturn(blockingGenerator(started, release)).Times(1)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := f.resolver.Resolve(firstCtx, parasite, model.ResolveOptions{})
		firstErr <- err
	}()
	<-started

	type result struct {
		locations []*model.SceneLocation
		err       error
	}
	second := make(chan result, 1)
	go func() {
		locations, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
		second <- result{locations, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.False(t, model.IsGenerationFailed(res.err))
	assert.Equal(t, []string{"Place 1", "Place 2"}, names(res.locations))

	stored, err := f.scenes.FindByMovieOrdered(context.Background(), parasite, model.MaxLocationsPerMovie)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestResolve_WaitingCallerReturnsOnOwnCancel(t *testing.T) {
	f := newFixture(t)
	f.knownMovie()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).
		DoAndReturn(blockingGenerator(started, release)).Times(1)

	firstErr := make(chan error, 1)
	go func() {
		_, err := f.resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
		firstErr <- err
	}()
	<-started

	waitCtx, cancelWait := context.WithCancel(context.Background())
	waitErr := make(chan error, 1)
	go func() {
		_, err := f.resolver.Resolve(waitCtx, parasite, model.ResolveOptions{})
		waitErr <- err
	}()
	time.Sleep(50 * time.Millisecond)

	cancelWait()
	select {
	case err := <-waitErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("waiting caller ignored its own cancellation")
	}

	close(release)
	require.NoError(t, <-firstErr)
}

func TestResolve_DifferentOverridesDoNotShareGeneration(t *testing.T) {
	f := newFixture(t)

	var mu sync.Mutex
	var prompts []string
	release := make(chan struct{})
	f.generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) ([]json.RawMessage, error) {
			mu.Lock()
			prompts = append(prompts, prompt)
			mu.Unlock()
			<-release
			return items("Place", 1), nil
		}).Times(2)

	var wg sync.WaitGroup
	for _, country := range []string{"France", "Japan"} {
		wg.Add(1)
		go func(country string) {
			defer wg.Done()
			_, err := f.resolver.Resolve(context.Background(), 999002, model.ResolveOptions{
				MovieInfoOverride: &model.MovieInfoOverride{Title: "Same Title", Country: country},
			})
			assert.NoError(t, err)
		}(country)
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Len(t, prompts, 2)
	joined := prompts[0] + prompts[1]
	assert.Contains(t, joined, "Production country: France")
	assert.Contains(t, joined, "Production country: Japan")
}

// flakyMovies fails the first Upsert.
type flakyMovies struct {
	movierepo.Repository
	mu     sync.Mutex
	failed bool
}

var errDatabaseDown = errors.New("database down")

func (m *flakyMovies) Upsert(ctx context.Context, movie *moviemodel.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.failed {
		m.failed = true
		return errDatabaseDown
	}
	return m.Repository.Upsert(ctx, movie)
}

func TestResolve_StoreErrorPropagatesAndReleasesLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := mocks.NewMockGenerator(ctrl)
	movieProvider := mocks.NewMockMovieProvider(ctrl)
	movieProvider.EXPECT().Get(gomock.Any(), parasite).
		Return(moviemodel.MovieMetadata{TMDBID: parasite, Title: "기생충", Source: moviemodel.SourceFallback}).
		AnyTimes()
	generator.EXPECT().GenerateItems(gomock.Any(), gomock.Any()).Return(items("Place", 2), nil).Times(2)

	resolver := service.NewResolver(
		repository.NewMemoryRepository(),
		&flakyMovies{Repository: movierepo.NewMemoryRepository()},
		movieProvider, generator, nil, nil,
	)

	_, err := resolver.Resolve(context.Background(), parasite, model.ResolveOptions{})
	require.ErrorIs(t, err, errDatabaseDown)
	assert.False(t, model.IsGenerationFailed(err))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	locations, err := resolver.Resolve(ctx, parasite, model.ResolveOptions{})
	require.NoError(t, err)
	assert.Len(t, locations, 2)
}
