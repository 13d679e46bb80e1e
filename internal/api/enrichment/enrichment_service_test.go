package enrichment

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const imagesPayload = `{
	"results": [
		{
			"urls": {"regular": "https://img.example/shillong.jpg", "small": "https://img.example/shillong_s.jpg"},
			"user": {"name": "Jane Photographer"},
			"description": "",
			"alt_description": "Hills around Shillong"
		}
	]
}`

const summaryPayload = `{
	"title": "Shillong",
	"extract": "Shillong is a hill station in Meghalaya, India.",
	"thumbnail": {"source": "https://wiki.example/shillong.jpg"},
	"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Shillong"}}
}`

const geoPayload = `[{"lat": 25.5788, "lon": 91.8933}]`

const forecastPayload = `{
	"city": {"name": "Shillong", "country": "IN"},
	"list": [
		{"dt_txt": "2026-10-01 09:00:00", "main": {"temp": 18.6, "feels_like": 17.4, "temp_min": 15.2, "temp_max": 19.8, "humidity": 80}, "weather": [{"description": "light rain", "icon": "10d"}], "wind": {"speed": 3.1}},
		{"dt_txt": "2026-10-01 12:00:00", "main": {"temp": 20.1, "feels_like": 19.5, "temp_min": 17.0, "temp_max": 21.0, "humidity": 75}, "weather": [{"description": "clouds", "icon": "03d"}], "wind": {"speed": 2.4}}
	]
}`

func newTestService(t *testing.T, images, summary, geo, weather http.HandlerFunc) *ServiceImpl {
	t.Helper()
	t.Setenv("UNSPLASH_ACCESS_KEY", "unsplash-key")
	t.Setenv("OPENWEATHER_API_KEY", "weather-key")

	imagesSrv := httptest.NewServer(images)
	summarySrv := httptest.NewServer(summary)
	geoSrv := httptest.NewServer(geo)
	weatherSrv := httptest.NewServer(weather)
	t.Cleanup(func() {
		imagesSrv.Close()
		summarySrv.Close()
		geoSrv.Close()
		weatherSrv.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// The summary URL is a prefix the city name gets appended to.
	return NewServiceImpl(logger,
		WithBaseURLs(imagesSrv.URL, summarySrv.URL+"/", geoSrv.URL, weatherSrv.URL))
}

func serve(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}
}

func failWith(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

func TestEnrich(t *testing.T) {
	ctx := context.Background()

	t.Run("all providers healthy fills the full snapshot", func(t *testing.T) {
		svc := newTestService(t, serve(imagesPayload), serve(summaryPayload), serve(geoPayload), serve(forecastPayload))

		snapshot, err := svc.Enrich(ctx, "Shillong, Meghalaya")
		require.NoError(t, err)

		require.Len(t, snapshot.Images, 1)
		assert.Equal(t, "https://img.example/shillong.jpg", snapshot.Images[0].URL)
		assert.Equal(t, "Jane Photographer", snapshot.Images[0].Photographer)
		// alt_description fills in for a missing description.
		assert.Equal(t, "Hills around Shillong", snapshot.Images[0].Description)

		require.NotNil(t, snapshot.DestinationInfo)
		assert.Equal(t, "Shillong", snapshot.DestinationInfo.Title)
		assert.Equal(t, "Shillong is a hill station in Meghalaya, India.", snapshot.DestinationInfo.Description)

		require.NotNil(t, snapshot.Weather)
		assert.Equal(t, "Shillong", snapshot.Weather.City)
		assert.Equal(t, 19, snapshot.Weather.Current.Temp) // 18.6 rounded
		assert.Equal(t, "light rain", snapshot.Weather.Current.Description)
		assert.Len(t, snapshot.Weather.Daily, 2)
	})

	t.Run("one degraded provider does not fail the others", func(t *testing.T) {
		svc := newTestService(t, failWith(http.StatusInternalServerError), serve(summaryPayload), serve(geoPayload), serve(forecastPayload))

		snapshot, err := svc.Enrich(ctx, "Shillong")
		require.NoError(t, err)

		assert.Empty(t, snapshot.Images)
		require.NotNil(t, snapshot.DestinationInfo)
		assert.NotNil(t, snapshot.Weather)
	})

	t.Run("degraded summary falls back to a non-empty description", func(t *testing.T) {
		svc := newTestService(t, serve(imagesPayload), failWith(http.StatusNotFound), serve(geoPayload), serve(forecastPayload))

		snapshot, err := svc.Enrich(ctx, "Atlantis")
		require.NoError(t, err)

		require.NotNil(t, snapshot.DestinationInfo)
		assert.Equal(t, "Atlantis", snapshot.DestinationInfo.Title)
		assert.Equal(t, "Explore the beautiful destination of Atlantis.", snapshot.DestinationInfo.Description)
	})

	t.Run("everything degraded still yields a valid snapshot", func(t *testing.T) {
		svc := newTestService(t,
			failWith(http.StatusInternalServerError),
			failWith(http.StatusInternalServerError),
			failWith(http.StatusInternalServerError),
			failWith(http.StatusInternalServerError))

		snapshot, err := svc.Enrich(ctx, "Nowhere")
		require.NoError(t, err)

		assert.NotNil(t, snapshot.Images)
		assert.Empty(t, snapshot.Images)
		require.NotNil(t, snapshot.DestinationInfo)
		assert.NotEmpty(t, snapshot.DestinationInfo.Description)
		assert.Nil(t, snapshot.Weather)
	})

	t.Run("missing provider keys degrade silently", func(t *testing.T) {
		t.Setenv("UNSPLASH_ACCESS_KEY", "")
		t.Setenv("OPENWEATHER_API_KEY", "")
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		summarySrv := httptest.NewServer(serve(summaryPayload))
		t.Cleanup(summarySrv.Close)
		svc := NewServiceImpl(logger, WithBaseURLs("http://127.0.0.1:0", summarySrv.URL+"/", "http://127.0.0.1:0", "http://127.0.0.1:0"))

		snapshot, err := svc.Enrich(ctx, "Shillong")
		require.NoError(t, err)
		assert.Empty(t, snapshot.Images)
		assert.Nil(t, snapshot.Weather)
		require.NotNil(t, snapshot.DestinationInfo)
	})

	t.Run("empty destination is a validation error", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := NewServiceImpl(logger)
		_, err := svc.Enrich(ctx, "")
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}

func TestCityOf(t *testing.T) {
	assert.Equal(t, "Shillong", cityOf("Shillong, Meghalaya"))
	assert.Equal(t, "Gangtok", cityOf("Gangtok"))
	assert.Equal(t, "Paris", cityOf(" Paris , France"))
}
