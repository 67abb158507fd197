package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"librarybox.klederson.com/internal/geo"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "librarybox"
	maxCandidates    = 5
)

// Option configures the Nominatim client.
type Option func(*NominatimClient)

// WithBaseURL points the client at another Nominatim instance.
func WithBaseURL(u string) Option {
	return func(c *NominatimClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *NominatimClient) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second budget. Public Nominatim
// allows one request per second. Non-positive values keep the default.
func WithRateLimit(rps float64) Option {
	return func(c *NominatimClient) {
		if rps <= 0 {
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent identifies the application, required by the usage policy.
func WithUserAgent(ua string) Option {
	return func(c *NominatimClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NominatimClient geocodes against the OpenStreetMap Nominatim API.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Geocoder = (*NominatimClient)(nil)

// NewNominatim creates a client with the given options.
func NewNominatim(opts ...Option) *NominatimClient {
	c := &NominatimClient{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimPlace is one entry of a jsonv2 response.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Forward resolves a free-text address.
func (c *NominatimClient) Forward(ctx context.Context, address string) (Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Result{Status: StatusNotFound}, nil
	}
	params := url.Values{
		"q":      {address},
		"format": {"jsonv2"},
		"limit":  {strconv.Itoa(maxCandidates)},
	}

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return Result{}, err
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return Result{}, eris.Wrap(err, "geocode: parse search response")
	}
	return toResult(places), nil
}

// Reverse resolves a location to the nearest address.
func (c *NominatimClient) Reverse(ctx context.Context, loc geo.Location) (Result, error) {
	params := url.Values{
		"lat":    {strconv.FormatFloat(loc.Lat, 'f', -1, 64)},
		"lon":    {strconv.FormatFloat(loc.Lng, 'f', -1, 64)},
		"format": {"jsonv2"},
	}

	body, err := c.get(ctx, "/reverse", params)
	if err != nil {
		return Result{}, err
	}

	var place nominatimPlace
	if err := json.Unmarshal(body, &place); err != nil {
		return Result{}, eris.Wrap(err, "geocode: parse reverse response")
	}
	if place.Error != "" {
		zap.L().Debug("geocode: reverse miss", zap.String("location", loc.String()), zap.String("reason", place.Error))
		return Result{Status: StatusNotFound}, nil
	}
	return toResult([]nominatimPlace{place}), nil
}

func (c *NominatimClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limit")
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "geocode: request")
		}
		return nil, eris.Wrapf(ErrTransient, "geocode: request %s: %v", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, eris.Wrapf(ErrTransient, "geocode: %s returned status %d", path, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, eris.Errorf("geocode: %s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(ErrTransient, "geocode: read body: %v", err)
	}
	return body, nil
}

func toResult(places []nominatimPlace) Result {
	var candidates []Candidate
	for _, p := range places {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lng, errLng := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLng != nil {
			zap.L().Debug("geocode: skipping place with bad coordinates",
				zap.String("lat", p.Lat), zap.String("lon", p.Lon))
			continue
		}
		loc := geo.Location{Lat: lat, Lng: lng}
		if !loc.Valid() {
			continue
		}
		candidates = append(candidates, Candidate{Address: p.DisplayName, Location: loc})
	}
	if len(candidates) == 0 {
		return Result{Status: StatusNotFound}
	}
	return Result{Status: StatusFound, Candidates: candidates}
}
