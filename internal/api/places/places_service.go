package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the place data provider contract. Provider failures degrade to
// empty lists; an error is only returned for invalid input.
type Service interface {
	// FetchPlaces returns up to maxResults candidate places for one category.
	FetchPlaces(ctx context.Context, destination string, category types.PlaceCategory) ([]types.Place, error)
	// FetchPlaceSet fetches the three candidate categories concurrently.
	FetchPlaceSet(ctx context.Context, destination string) (types.PlaceSet, error)
	// ExplorePlaces returns the top places for the dashboard explore panel.
	// Results are cached since they are pure provider data.
	ExplorePlaces(ctx context.Context, destination string, category types.PlaceCategory) ([]types.Place, error)
}

const (
	defaultMaxResults = 12
	exploreResults    = 6
	textSearchURL     = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	photoURLFormat    = "https://maps.googleapis.com/maps/api/place/photo?maxwidth=400&photoreference=%s&key=%s"
)

type ServiceImpl struct {
	logger     *slog.Logger
	client     *http.Client
	apiKey     string
	baseURL    string
	maxResults int
	cache      *cache.Cache
}

// Option configures a ServiceImpl. Tests use WithBaseURL to point the adapter
// at an httptest server.
type Option func(*ServiceImpl)

func WithBaseURL(u string) Option {
	return func(s *ServiceImpl) { s.baseURL = u }
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *ServiceImpl) { s.client = c }
}

func WithMaxResults(n int) Option {
	return func(s *ServiceImpl) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

func NewServiceImpl(logger *slog.Logger, opts ...Option) *ServiceImpl {
	s := &ServiceImpl{
		logger:     logger,
		client:     &http.Client{Timeout: 10 * time.Second},
		apiKey:     os.Getenv("GOOGLE_MAPS_API_KEY"),
		baseURL:    textSearchURL,
		maxResults: defaultMaxResults,
		cache:      cache.New(15*time.Minute, 30*time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// rawSearchResponse mirrors the provider's text search payload.
type rawSearchResponse struct {
	Results []struct {
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
	Status string `json:"status"`
}

func searchQuery(destination string, category types.PlaceCategory) string {
	switch category {
	case types.CategoryRestaurant:
		return fmt.Sprintf("restaurant in %s", destination)
	case types.CategoryHotel:
		return fmt.Sprintf("hotel in %s", destination)
	default:
		return fmt.Sprintf("tourist attraction in %s", destination)
	}
}

func validCategory(category types.PlaceCategory) bool {
	switch category {
	case types.CategoryAttraction, types.CategoryRestaurant, types.CategoryHotel:
		return true
	}
	return false
}

func (s *ServiceImpl) FetchPlaces(ctx context.Context, destination string, category types.PlaceCategory) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "FetchPlaces")
	defer span.End()
	span.SetAttributes(
		attribute.String("places.destination", destination),
		attribute.String("places.category", string(category)),
	)

	if destination == "" {
		err := fmt.Errorf("destination is required: %w", types.ErrValidation)
		span.RecordError(err)
		return nil, err
	}
	if !validCategory(category) {
		err := fmt.Errorf("unknown place category %q: %w", category, types.ErrValidation)
		span.RecordError(err)
		return nil, err
	}

	results, err := s.textSearch(ctx, searchQuery(destination, category), s.maxResults)
	if err != nil {
		// Degraded provider data is not an error for callers; an empty list
		// means "no data available" and generation continues.
		s.logger.WarnContext(ctx, "Place search degraded, returning empty list",
			slog.String("destination", destination),
			slog.String("category", string(category)),
			slog.Any("error", err))
		span.SetStatus(codes.Error, "provider degraded")
		return []types.Place{}, nil
	}

	for i := range results {
		results[i].Category = category
	}
	span.SetAttributes(attribute.Int("places.count", len(results)))
	return results, nil
}

func (s *ServiceImpl) FetchPlaceSet(ctx context.Context, destination string) (types.PlaceSet, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "FetchPlaceSet")
	defer span.End()

	var set types.PlaceSet
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		set.Attractions, err = s.FetchPlaces(gctx, destination, types.CategoryAttraction)
		return err
	})
	g.Go(func() (err error) {
		set.Restaurants, err = s.FetchPlaces(gctx, destination, types.CategoryRestaurant)
		return err
	})
	g.Go(func() (err error) {
		set.Hotels, err = s.FetchPlaces(gctx, destination, types.CategoryHotel)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return types.PlaceSet{}, err
	}
	return set, nil
}

func (s *ServiceImpl) ExplorePlaces(ctx context.Context, destination string, category types.PlaceCategory) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "ExplorePlaces")
	defer span.End()

	if destination == "" {
		return nil, fmt.Errorf("destination is required: %w", types.ErrValidation)
	}
	if !validCategory(category) {
		return nil, fmt.Errorf("unknown place category %q: %w", category, types.ErrValidation)
	}

	cacheKey := fmt.Sprintf("explore:%s:%s", destination, category)
	if cached, found := s.cache.Get(cacheKey); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached.([]types.Place), nil
	}

	var query string
	switch category {
	case types.CategoryHotel:
		query = fmt.Sprintf("Top rated hotels in %s", destination)
	case types.CategoryRestaurant:
		query = fmt.Sprintf("Best restaurants in %s", destination)
	default:
		query = fmt.Sprintf("Top tourist attractions in %s", destination)
	}

	results, err := s.textSearch(ctx, query, exploreResults)
	if err != nil {
		s.logger.WarnContext(ctx, "Explore search degraded", slog.Any("error", err))
		return []types.Place{}, nil
	}
	for i := range results {
		results[i].Category = category
	}

	s.cache.Set(cacheKey, results, cache.DefaultExpiration)
	return results, nil
}

func (s *ServiceImpl) textSearch(ctx context.Context, query string, limit int) ([]types.Place, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build place search request: %w", err)
	}

	if m := metrics.Get(); m != nil {
		m.ProviderRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("provider", "google_places")))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("place search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place search returned status %d", resp.StatusCode)
	}

	var raw rawSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode place search response: %w", err)
	}

	if len(raw.Results) > limit {
		raw.Results = raw.Results[:limit]
	}

	places := make([]types.Place, 0, len(raw.Results))
	for _, r := range raw.Results {
		rating := r.Rating
		if rating == 0 {
			rating = 4.0
		}
		p := types.Place{
			Name:    r.Name,
			Address: r.FormattedAddress,
			Rating:  rating,
			Coordinates: types.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		}
		if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
			p.PhotoURL = fmt.Sprintf(photoURLFormat, r.Photos[0].PhotoReference, s.apiKey)
		}
		places = append(places, p)
	}
	return places, nil
}
