package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/domain/repository"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/domain/service"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/metrics"
)

// ErrNoModelObjects is returned when the remote prefix holds no objects
var ErrNoModelObjects = errors.New("no model objects found under prefix")

// markerFile indicates a complete prior download in the cache directory
const markerFile = "config.cfg"

// ModelProvider yields a ready-to-use classifier, provisioning the model
// artifact if needed
type ModelProvider interface {
	Ensure(ctx context.Context) (service.Classifier, error)
	Loaded() bool
}

// Provisioner ensures a usable model is present in the local cache
// directory, fetching it from the object store only when absent. A
// successfully loaded classifier is held for the remainder of the
// process lifetime; any failure resets the load state so the next call
// retries from scratch.
type Provisioner struct {
	store    repository.ObjectStore
	loader   service.ModelLoader
	cacheDir string
	log      *zap.Logger

	mu         sync.Mutex
	classifier service.Classifier
	loaded     bool
}

// NewProvisioner creates a new Provisioner
func NewProvisioner(store repository.ObjectStore, loader service.ModelLoader, cacheDir string, log *zap.Logger) *Provisioner {
	return &Provisioner{
		store:    store,
		loader:   loader,
		cacheDir: cacheDir,
		log:      log,
	}
}

// Ensure returns the cached classifier, loading the model first if no
// usable handle is held. Safe to call repeatedly and cheap after the
// first success.
func (p *Provisioner) Ensure(ctx context.Context) (service.Classifier, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded && p.classifier != nil {
		p.log.Debug("Using cached model")
		return p.classifier, nil
	}

	start := time.Now()
	classifier, source, err := p.provision(ctx)
	if err != nil {
		// Full reset: a retry on the next invocation must start clean
		p.classifier = nil
		p.loaded = false
		metrics.ModelLoaded.Set(0)
		return nil, err
	}

	p.classifier = classifier
	p.loaded = true
	metrics.ModelLoaded.Set(1)
	metrics.ModelLoadSeconds.WithLabelValues(source).Observe(time.Since(start).Seconds())
	p.log.Info("Model loaded",
		zap.String("source", source),
		zap.Duration("took", time.Since(start)))

	return classifier, nil
}

// Loaded reports whether a usable model handle is held
func (p *Provisioner) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *Provisioner) provision(ctx context.Context) (service.Classifier, string, error) {
	// Warm start: a marker file means a prior download completed in
	// this execution environment, so skip the remote fetch.
	if _, err := os.Stat(filepath.Join(p.cacheDir, markerFile)); err == nil {
		p.log.Info("Found existing model in cache", zap.String("cache_dir", p.cacheDir))
		classifier, err := p.loader.Load(p.cacheDir)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load cached model: %w", err)
		}
		return classifier, "local", nil
	}

	p.log.Info("Model not found locally, downloading",
		zap.String("prefix", p.store.Prefix()),
		zap.String("cache_dir", p.cacheDir))

	if err := p.fetchRemote(ctx); err != nil {
		return nil, "", err
	}

	classifier, err := p.loader.Load(p.cacheDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load downloaded model: %w", err)
	}

	return classifier, "remote", nil
}

// fetchRemote mirrors the artifact tree into a staging directory and
// promotes it to the cache directory only once every object downloaded.
// A failed download therefore never leaves a half-populated cache behind
// the marker file.
func (p *Provisioner) fetchRemote(ctx context.Context) (err error) {
	keys, err := p.store.List(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: %s", ErrNoModelObjects, p.store.Prefix())
	}

	parent := filepath.Dir(p.cacheDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("failed to create cache parent directory: %w", err)
	}

	stage, err := os.MkdirTemp(parent, ".model-download-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(stage)
		}
	}()

	prefix := p.store.Prefix()
	for _, key := range keys {
		rel, ok := relativeKeyPath(key, prefix)
		if !ok {
			return fmt.Errorf("object key %q escapes the cache directory", key)
		}
		if rel == "" {
			continue
		}
		if err := p.store.Download(ctx, key, filepath.Join(stage, rel)); err != nil {
			return err
		}
	}

	if err := os.RemoveAll(p.cacheDir); err != nil {
		return fmt.Errorf("failed to clear cache directory: %w", err)
	}
	if err := os.Rename(stage, p.cacheDir); err != nil {
		return fmt.Errorf("failed to promote downloaded model: %w", err)
	}

	p.log.Info("Model downloaded", zap.Int("objects", len(keys)))
	return nil
}

// relativeKeyPath maps an object key onto a path relative to the mirror
// root. Keys are not trusted: a key whose cleaned path is absolute or
// climbs out of the root is rejected.
func relativeKeyPath(key, prefix string) (string, bool) {
	rel := strings.TrimPrefix(key, prefix)
	if rel == "" {
		return "", true
	}

	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == "." {
		return "", true
	}
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return rel, true
}
