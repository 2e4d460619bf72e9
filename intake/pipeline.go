package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/store"
)

var (
	// ErrStoreRequired indicates the pipeline was built without a store.
	ErrStoreRequired = errors.New("store is required")

	// ErrCompressorRequired indicates the pipeline was built without a compressor.
	ErrCompressorRequired = errors.New("compressor is required")

	// ErrNoImages indicates a request with no before and no after images.
	ErrNoImages = errors.New("at least one image is required")
)

// Compressor converts a raw image file into a self-contained encoded-image
// string (a data URL), downscaled to maxWidth at the given quality. Pure: no
// side effects on storage.
type Compressor interface {
	Compress(ctx context.Context, file []byte, maxWidth, quality int) (string, error)
}

// Request describes a project to be created.
type Request struct {
	Name        string
	Date        string
	Notes       string
	FolderId    core.ID
	BeforeFiles [][]byte
	AfterFiles  [][]byte
	MaxWidth    int // 0 uses DefaultMaxWidth
	Quality     int // 0 uses DefaultQuality
}

const (
	// DefaultMaxWidth bounds the longest image edge after compression.
	DefaultMaxWidth = 1600
	// DefaultQuality is the compression quality passed to the Compressor.
	DefaultQuality = 80
)

// Pipeline builds and persists new projects, compressing images concurrently.
type Pipeline struct {
	store      *store.Store
	compressor Compressor
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent compression.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an intake pipeline.
func NewPipeline(st *store.Store, compressor Compressor, opts ...Option) (*Pipeline, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}
	if compressor == nil {
		return nil, ErrCompressorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:      st,
		compressor: compressor,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Create compresses the request's images, builds a project and saves it.
// Any single compression failure fails the whole intake; nothing is persisted
// in that case.
func (p *Pipeline) Create(ctx context.Context, req *Request) (*core.Project, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidProject, core.ErrEmptyName)
	}
	if len(req.BeforeFiles) == 0 && len(req.AfterFiles) == 0 {
		return nil, ErrNoImages
	}

	maxWidth := req.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	quality := req.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}

	before, err := p.compressAll(ctx, req.BeforeFiles, maxWidth, quality)
	if err != nil {
		return nil, fmt.Errorf("compressing before images: %w", err)
	}
	after, err := p.compressAll(ctx, req.AfterFiles, maxWidth, quality)
	if err != nil {
		return nil, fmt.Errorf("compressing after images: %w", err)
	}

	createdAt := time.Now().UTC()
	project := &core.Project{
		Id:           core.NewProjectID(req.Name, createdAt),
		Name:         req.Name,
		Date:         req.Date,
		Notes:        req.Notes,
		FolderId:     req.FolderId,
		BeforeImages: before,
		AfterImages:  after,
		CreatedAt:    createdAt,
	}

	if err := p.store.SaveProject(ctx, project); err != nil {
		return nil, err
	}

	p.logger.Info("project created",
		"id", project.Id, "name", project.Name,
		"before", len(before), "after", len(after))
	return project, nil
}

// compressAll compresses files concurrently on the worker pool, preserving
// order. The first error wins; remaining results are discarded.
func (p *Pipeline) compressAll(ctx context.Context, files [][]byte, maxWidth, quality int) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	results := make([]string, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup

	for i, file := range files {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = p.compressor.Compress(ctx, file, maxWidth, quality)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
	}
	return results, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
