package places

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const searchPayload = `{
	"status": "OK",
	"results": [
		{
			"name": "Elephant Falls",
			"formatted_address": "Upper Shillong, Meghalaya",
			"rating": 4.4,
			"geometry": {"location": {"lat": 25.3176, "lng": 91.8933}},
			"photos": [{"photo_reference": "ref123"}]
		},
		{
			"name": "Ward's Lake",
			"formatted_address": "Shillong, Meghalaya",
			"geometry": {"location": {"lat": 25.5788, "lng": 91.8933}}
		}
	]
}`

func newTestService(t *testing.T, handler http.HandlerFunc) (*ServiceImpl, *httptest.Server) {
	t.Helper()
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewServiceImpl(logger, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	return svc, srv
}

func TestFetchPlaces(t *testing.T) {
	ctx := context.Background()

	t.Run("maps provider results onto places", func(t *testing.T) {
		var gotQuery atomic.Value
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery.Store(r.URL.Query().Get("query"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(searchPayload))
		})

		places, err := svc.FetchPlaces(ctx, "Shillong", types.CategoryAttraction)
		require.NoError(t, err)
		require.Len(t, places, 2)

		assert.Equal(t, "tourist attraction in Shillong", gotQuery.Load())

		first := places[0]
		assert.Equal(t, "Elephant Falls", first.Name)
		assert.Equal(t, "Upper Shillong, Meghalaya", first.Address)
		assert.Equal(t, 4.4, first.Rating)
		assert.Equal(t, types.CategoryAttraction, first.Category)
		assert.Equal(t, 25.3176, first.Coordinates.Lat)
		assert.Contains(t, first.PhotoURL, "ref123")

		// Missing rating defaults, missing photos stay empty.
		second := places[1]
		assert.Equal(t, 4.0, second.Rating)
		assert.Empty(t, second.PhotoURL)
	})

	t.Run("category drives the search query", func(t *testing.T) {
		var gotQuery atomic.Value
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery.Store(r.URL.Query().Get("query"))
			_, _ = w.Write([]byte(`{"status": "OK", "results": []}`))
		})

		_, err := svc.FetchPlaces(ctx, "Gangtok", types.CategoryRestaurant)
		require.NoError(t, err)
		assert.Equal(t, "restaurant in Gangtok", gotQuery.Load())

		_, err = svc.FetchPlaces(ctx, "Gangtok", types.CategoryHotel)
		require.NoError(t, err)
		assert.Equal(t, "hotel in Gangtok", gotQuery.Load())
	})

	t.Run("provider failure degrades to an empty list", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		places, err := svc.FetchPlaces(ctx, "Shillong", types.CategoryAttraction)
		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("missing API key degrades to an empty list", func(t *testing.T) {
		t.Setenv("GOOGLE_MAPS_API_KEY", "")
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := NewServiceImpl(logger)

		places, err := svc.FetchPlaces(ctx, "Shillong", types.CategoryAttraction)
		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("empty destination is a validation error", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := svc.FetchPlaces(ctx, "", types.CategoryAttraction)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("unknown category is a validation error", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := svc.FetchPlaces(ctx, "Shillong", types.PlaceCategory("museum"))
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("results are capped at maxResults", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "OK", "results": [
				{"name": "A"}, {"name": "B"}, {"name": "C"}
			]}`))
		})
		svc.maxResults = 2

		places, err := svc.FetchPlaces(ctx, "Shillong", types.CategoryAttraction)
		require.NoError(t, err)
		assert.Len(t, places, 2)
	})
}

func TestFetchPlaceSet(t *testing.T) {
	ctx := context.Background()

	var calls atomic.Int32
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(searchPayload))
	})

	set, err := svc.FetchPlaceSet(ctx, "Shillong")
	require.NoError(t, err)

	assert.EqualValues(t, 3, calls.Load())
	assert.Len(t, set.Attractions, 2)
	assert.Len(t, set.Restaurants, 2)
	assert.Len(t, set.Hotels, 2)
	assert.Equal(t, types.CategoryRestaurant, set.Restaurants[0].Category)
}

func TestExplorePlaces(t *testing.T) {
	ctx := context.Background()

	t.Run("returns top places and caches the result", func(t *testing.T) {
		var calls atomic.Int32
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(searchPayload))
		})

		first, err := svc.ExplorePlaces(ctx, "Shillong", types.CategoryAttraction)
		require.NoError(t, err)
		require.Len(t, first, 2)

		second, err := svc.ExplorePlaces(ctx, "Shillong", types.CategoryAttraction)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.EqualValues(t, 1, calls.Load(), "second call should be served from cache")
	})

	t.Run("empty destination is a validation error", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := svc.ExplorePlaces(ctx, "", types.CategoryAttraction)
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}
