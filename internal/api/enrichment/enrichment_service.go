package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service assembles the destination context stored on a trip: images, a short
// description and a weather forecast. Every sub-fetch is independently
// fault-tolerant; a missing provider key or a failed call never fails Enrich.
type Service interface {
	Enrich(ctx context.Context, destination string) (types.EnrichmentSnapshot, error)
}

const (
	unsplashSearchURL   = "https://api.unsplash.com/search/photos"
	wikipediaSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	openWeatherGeoURL   = "https://api.openweathermap.org/geo/1.0/direct"
	openWeatherURL      = "https://api.openweathermap.org/data/2.5/forecast"

	userAgent = "go-trip-planner/1.0"
)

type ServiceImpl struct {
	logger *slog.Logger
	client *http.Client

	unsplashKey    string
	openWeatherKey string

	imagesURL  string
	summaryURL string
	geoURL     string
	weatherURL string
}

type Option func(*ServiceImpl)

// WithBaseURLs points the adapter at test servers.
func WithBaseURLs(images, summary, geo, weather string) Option {
	return func(s *ServiceImpl) {
		s.imagesURL = images
		s.summaryURL = summary
		s.geoURL = geo
		s.weatherURL = weather
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *ServiceImpl) { s.client = c }
}

func NewServiceImpl(logger *slog.Logger, opts ...Option) *ServiceImpl {
	s := &ServiceImpl{
		logger:         logger,
		client:         &http.Client{Timeout: 10 * time.Second},
		unsplashKey:    os.Getenv("UNSPLASH_ACCESS_KEY"),
		openWeatherKey: os.Getenv("OPENWEATHER_API_KEY"),
		imagesURL:      unsplashSearchURL,
		summaryURL:     wikipediaSummaryURL,
		geoURL:         openWeatherGeoURL,
		weatherURL:     openWeatherURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ServiceImpl) Enrich(ctx context.Context, destination string) (types.EnrichmentSnapshot, error) {
	ctx, span := otel.Tracer("EnrichmentService").Start(ctx, "Enrich")
	defer span.End()
	span.SetAttributes(attribute.String("enrichment.destination", destination))

	if destination == "" {
		return types.EnrichmentSnapshot{}, fmt.Errorf("destination is required: %w", types.ErrValidation)
	}

	snapshot := types.EnrichmentSnapshot{Images: []types.Image{}}

	// The three fetches are independent; each closure swallows its own
	// failure so one degraded provider cannot fail the others.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		images, err := s.fetchImages(gctx, destination)
		if err != nil {
			s.logger.WarnContext(gctx, "Image search degraded", slog.Any("error", err))
			return nil
		}
		snapshot.Images = images
		return nil
	})
	g.Go(func() error {
		info, err := s.fetchInfo(gctx, destination)
		if err != nil {
			s.logger.WarnContext(gctx, "Destination summary degraded", slog.Any("error", err))
			info = fallbackInfo(destination)
		}
		snapshot.DestinationInfo = info
		return nil
	})
	g.Go(func() error {
		weather, err := s.fetchWeather(gctx, cityOf(destination))
		if err != nil {
			s.logger.WarnContext(gctx, "Weather forecast degraded", slog.Any("error", err))
			return nil
		}
		snapshot.Weather = weather
		return nil
	})
	_ = g.Wait()

	if snapshot.DestinationInfo == nil {
		snapshot.DestinationInfo = fallbackInfo(destination)
	}
	return snapshot, nil
}

func countProviderRequest(ctx context.Context, provider string) {
	if m := metrics.Get(); m != nil {
		m.ProviderRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("provider", provider)))
	}
}

// cityOf strips any region suffix ("Shillong, Meghalaya" -> "Shillong").
func cityOf(destination string) string {
	return strings.TrimSpace(strings.Split(destination, ",")[0])
}

// fallbackInfo guarantees the description field is never empty.
func fallbackInfo(destination string) *types.DestinationInfo {
	return &types.DestinationInfo{
		Title:       destination,
		Description: fmt.Sprintf("Explore the beautiful destination of %s.", destination),
	}
}

func (s *ServiceImpl) fetchImages(ctx context.Context, destination string) ([]types.Image, error) {
	if s.unsplashKey == "" {
		return nil, fmt.Errorf("UNSPLASH_ACCESS_KEY is not configured")
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s travel landmark", destination))
	params.Set("per_page", "5")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.imagesURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Client-ID "+s.unsplashKey)

	countProviderRequest(ctx, "unsplash")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image search request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
				Small   string `json:"small"`
			} `json:"urls"`
			User struct {
				Name string `json:"name"`
			} `json:"user"`
			Description    string `json:"description"`
			AltDescription string `json:"alt_description"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode image search response: %w", err)
	}

	images := make([]types.Image, 0, len(raw.Results))
	for _, r := range raw.Results {
		desc := r.Description
		if desc == "" {
			desc = r.AltDescription
		}
		images = append(images, types.Image{
			URL:          r.URLs.Regular,
			Thumbnail:    r.URLs.Small,
			Photographer: r.User.Name,
			Description:  desc,
		})
	}
	return images, nil
}

func (s *ServiceImpl) fetchInfo(ctx context.Context, destination string) (*types.DestinationInfo, error) {
	searchTerm := cityOf(destination)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.summaryURL+url.PathEscape(searchTerm), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	countProviderRequest(ctx, "wikipedia")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summary returned status %d", resp.StatusCode)
	}

	var raw struct {
		Title     string `json:"title"`
		Extract   string `json:"extract"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode summary response: %w", err)
	}
	if raw.Extract == "" {
		return nil, fmt.Errorf("summary provider returned no extract for %q", searchTerm)
	}

	return &types.DestinationInfo{
		Title:       raw.Title,
		Description: raw.Extract,
		ImageURL:    raw.Thumbnail.Source,
		PageURL:     raw.ContentURLs.Desktop.Page,
	}, nil
}

func (s *ServiceImpl) fetchWeather(ctx context.Context, city string) (*types.WeatherForecast, error) {
	// No key means weather is simply absent from the snapshot, which is a
	// documented valid state.
	if s.openWeatherKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is not configured")
	}

	lat, lon, err := s.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("appid", s.openWeatherKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.weatherURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	countProviderRequest(ctx, "openweather")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast returned status %d", resp.StatusCode)
	}

	var raw struct {
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"city"`
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp      float64 `json:"temp"`
				FeelsLike float64 `json:"feels_like"`
				TempMin   float64 `json:"temp_min"`
				TempMax   float64 `json:"temp_max"`
				Humidity  int     `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	if len(raw.List) == 0 {
		return nil, fmt.Errorf("forecast provider returned no data for %q", city)
	}

	forecast := &types.WeatherForecast{
		City:    raw.City.Name,
		Country: raw.City.Country,
	}

	first := raw.List[0]
	forecast.Current = types.WeatherCurrent{
		Temp:      int(math.Round(first.Main.Temp)),
		FeelsLike: int(math.Round(first.Main.FeelsLike)),
		Humidity:  first.Main.Humidity,
		WindSpeed: first.Wind.Speed,
	}
	if len(first.Weather) > 0 {
		forecast.Current.Description = first.Weather[0].Description
		forecast.Current.Icon = first.Weather[0].Icon
	}

	daily := raw.List
	if len(daily) > 5 {
		daily = daily[:5]
	}
	for _, d := range daily {
		day := types.WeatherDay{
			Date:    d.DtTxt,
			Temp:    int(math.Round(d.Main.Temp)),
			TempMin: int(math.Round(d.Main.TempMin)),
			TempMax: int(math.Round(d.Main.TempMax)),
		}
		if len(d.Weather) > 0 {
			day.Description = d.Weather[0].Description
			day.Icon = d.Weather[0].Icon
		}
		forecast.Daily = append(forecast.Daily, day)
	}
	return forecast, nil
}

func (s *ServiceImpl) geocode(ctx context.Context, city string) (float64, float64, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("limit", "1")
	params.Set("appid", s.openWeatherKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.geoURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode returned status %d", resp.StatusCode)
	}

	var raw []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, 0, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(raw) == 0 {
		return 0, 0, fmt.Errorf("no geocode result for %q", city)
	}
	return raw[0].Lat, raw[0].Lon, nil
}
