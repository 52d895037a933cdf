package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"portal/internal/model"
	"portal/internal/service"
	"portal/internal/store"
)

func TestQRService(t *testing.T) {
	ctx := context.Background()

	newFixture := func(endpoint string) (service.QRService, *store.AssetStore) {
		assets := store.New(newMemKV())
		svc := service.NewQRService(assets, service.QRConfig{
			Endpoint:      endpoint,
			PublicBaseURL: "http://localhost:5173/web-portal",
			Timeout:       2 * time.Second,
			CacheSize:     8,
			CacheTTL:      time.Minute,
		})
		return svc, assets
	}

	t.Run("Unknown ID", func(t *testing.T) {
		svc, _ := newFixture("http://unused.invalid")
		_, _, err := svc.Image(ctx, "nonexistent-id")
		if !errors.Is(err, service.ErrAssetNotFound) {
			t.Errorf("expected ErrAssetNotFound, got %v", err)
		}
	})

	t.Run("Deep Link Shape", func(t *testing.T) {
		svc, _ := newFixture("http://unused.invalid")
		if got := svc.DeepLink("abc123"); got != "http://localhost:5173/web-portal/assets/abc123" {
			t.Errorf("unexpected deep link: %s", got)
		}
	})

	t.Run("Fetches And Caches Image", func(t *testing.T) {
		var hits atomic.Int64
		var gotData string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			gotData = r.URL.Query().Get("data")
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		}))
		defer srv.Close()

		svc, assets := newFixture(srv.URL)
		asset := assets.Add(ctx, "Laptop", model.StatusAvailable)

		img, name, err := svc.Image(ctx, asset.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(img) != "png-bytes" {
			t.Errorf("unexpected image body: %q", img)
		}
		if name != asset.ID+".png" {
			t.Errorf("unexpected download name: %s", name)
		}
		wantLink := "http://localhost:5173/web-portal/assets/" + asset.ID
		if gotData != wantLink {
			t.Errorf("endpoint received data=%q, want %q", gotData, wantLink)
		}

		if _, _, err := svc.Image(ctx, asset.ID); err != nil {
			t.Fatalf("unexpected error on cached fetch: %v", err)
		}
		if hits.Load() != 1 {
			t.Errorf("expected 1 remote hit thanks to cache, got %d", hits.Load())
		}
	})

	t.Run("Remote Failure Degrades That Request Only", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc, assets := newFixture(srv.URL)
		asset := assets.Add(ctx, "Laptop", model.StatusAvailable)

		if _, _, err := svc.Image(ctx, asset.ID); err == nil {
			t.Errorf("expected error on non-200 response")
		}
	})

	t.Run("Link Is URL Encoded", func(t *testing.T) {
		var rawQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
			_, _ = w.Write([]byte("png"))
		}))
		defer srv.Close()

		svc, assets := newFixture(srv.URL)
		asset := assets.Add(ctx, "Laptop", model.StatusAvailable)

		if _, _, err := svc.Image(ctx, asset.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "data=" + url.QueryEscape("http://localhost:5173/web-portal/assets/"+asset.ID)
		if rawQuery != "size=150x150&"+want {
			t.Errorf("unexpected query %q", rawQuery)
		}
	})
}
