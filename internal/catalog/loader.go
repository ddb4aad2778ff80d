package catalog

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"sync"

	"github.com/fhuszti/asset-portal-go/internal/logger"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"

	// Registered decoders for image dimension probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

type Loader interface {
	LoadCatalog(ctx context.Context) ([]model.Asset, error)
}

type loaderSrv struct {
	backend      port.Backend
	cache        port.Cache
	http         *http.Client
	assetBaseURL string
}

// compile-time check: *loaderSrv must satisfy port.CatalogLoader
var _ port.CatalogLoader = (*loaderSrv)(nil)

func NewLoader(backend port.Backend, cache port.Cache, httpClient *http.Client, assetBaseURL string) Loader {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &loaderSrv{backend: backend, cache: cache, http: httpClient, assetBaseURL: assetBaseURL}
}

// LoadCatalog builds the asset catalog from the backend manifest. Each file
// is probed with a HEAD request for mime type and size; images are decoded
// for pixel dimensions. A failed probe marks that one asset as broken
// without failing the load. A cache error only means a fresh probe.
func (s *loaderSrv) LoadCatalog(ctx context.Context) ([]model.Asset, error) {
	if cached, err := s.cache.GetCatalog(ctx); err == nil && cached != nil {
		logger.Debugf(ctx, "serving catalog from cache (%d assets)", len(cached))
		return cached, nil
	} else if err != nil {
		logger.Warnf(ctx, "⚠️  Catalog cache read failed, probing fresh: %v", err)
	}

	manifest, err := s.backend.FetchManifest(ctx)
	if err != nil {
		return nil, err
	}

	type entry struct {
		file string
		kind model.AssetKind
		dir  string
	}
	var entries []entry
	for _, f := range manifest.Images {
		entries = append(entries, entry{f, model.AssetKindImage, "images"})
	}
	for _, f := range manifest.Videos {
		entries = append(entries, entry{f, model.AssetKindVideo, "videos"})
	}
	for _, f := range manifest.Audios {
		entries = append(entries, entry{f, model.AssetKindAudio, "audios"})
	}

	assets := make([]model.Asset, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Add(1)
		go func(i int, e entry) {
			defer wg.Done()
			url := fmt.Sprintf("%s/%s/%s", s.assetBaseURL, e.dir, e.file)
			assets[i] = s.probe(ctx, e.kind, e.file, url)
		}(i, e)
	}
	wg.Wait()

	s.cache.SetCatalog(ctx, assets)

	logger.Infof(ctx, "✅  Catalog loaded with %d assets", len(assets))
	return assets, nil
}

func (s *loaderSrv) probe(ctx context.Context, kind model.AssetKind, file, url string) model.Asset {
	asset := model.Asset{
		ID:    model.AssetID(kind, file),
		Kind:  kind,
		URL:   url,
		Title: file,
	}

	mimeType, size, err := s.probeHead(ctx, url)
	if err != nil {
		logger.Errorf(ctx, "❌  Error fetching metadata for %q: %v", file, err)
		asset.MimeType = model.MimeTypeError
		return asset
	}
	asset.MimeType = mimeType
	asset.SizeBytes = size

	if kind == model.AssetKindImage {
		if dims, err := s.probeDimensions(ctx, url); err != nil {
			logger.Warnf(ctx, "⚠️  Could not get dimensions for %q: %v", file, err)
		} else {
			asset.Dimensions = dims
		}
	}

	return asset
}

func (s *loaderSrv) probeHead(ctx context.Context, url string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", 0, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, fmt.Errorf("HEAD %s answered with status %d", url, resp.StatusCode)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = string(model.AssetKindUnknown)
	}
	size, _ := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if size < 0 {
		size = 0
	}

	return mimeType, size, nil
}

func (s *loaderSrv) probeDimensions(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("GET %s answered with status %d", url, resp.StatusCode)
	}

	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not decode image: %w", err)
	}

	return fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), nil
}
