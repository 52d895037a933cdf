package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portal/internal/store"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrAssetNotFound is returned for lookups by unknown id.
var ErrAssetNotFound = errors.New("asset not found")

// QRService builds the deep link for an asset and fetches its QR code from a
// third-party rendering endpoint. The response is treated as an opaque PNG;
// no local QR encoding happens here. Fetched images are cached with a TTL so
// repeat views of the same detail page skip the remote round-trip.
type QRService interface {
	Image(ctx context.Context, id string) ([]byte, string, error)
	DeepLink(id string) string
}

type QRConfig struct {
	Endpoint      string
	PublicBaseURL string
	Timeout       time.Duration
	CacheSize     int
	CacheTTL      time.Duration
}

type qrService struct {
	assets *store.AssetStore
	cfg    QRConfig
	client *http.Client
	cache  *expirable.LRU[string, []byte]
}

func NewQRService(assets *store.AssetStore, cfg QRConfig) QRService {
	return &qrService{
		assets: assets,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  expirable.NewLRU[string, []byte](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// DeepLink builds the URL a scanned code resolves to.
func (s *qrService) DeepLink(id string) string {
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/assets/" + id
}

// Image returns the QR PNG and its download name (<id>.png).
func (s *qrService) Image(ctx context.Context, id string) ([]byte, string, error) {
	if _, ok := s.assets.Get(id); !ok {
		return nil, "", ErrAssetNotFound
	}

	name := id + ".png"
	if img, ok := s.cache.Get(id); ok {
		return img, name, nil
	}

	reqURL := s.cfg.Endpoint + "?size=150x150&data=" + url.QueryEscape(s.DeepLink(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build QR request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch QR code: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("QR endpoint returned status %d", resp.StatusCode)
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read QR response: %w", err)
	}

	s.cache.Add(id, img)
	return img, name, nil
}
