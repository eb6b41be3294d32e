package service

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/pricing"
)

// ErrImageNotFound is returned for picture names the catalog does not reference
var ErrImageNotFound = errors.New("image not found")

// CatalogService exposes the fixed item and access-issue catalogs and their pictures
type CatalogService struct {
	imageDir  string
	optimizer *ImageOptimizer
	images    map[string]bool
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService reading source pictures from imageDir
func NewCatalogService(imageDir string, optimizer *ImageOptimizer) *CatalogService {
	images := make(map[string]bool)
	for _, item := range models.ClearanceItems {
		images[path.Base(item.Image)] = true
	}
	for _, issue := range models.AccessIssues {
		images[path.Base(issue.Image)] = true
	}

	return &CatalogService{
		imageDir:  imageDir,
		optimizer: optimizer,
		images:    images,
	}
}

// Catalog returns both catalogs in display order plus the pricing rates
func (s *CatalogService) Catalog() models.CatalogResponse {
	items := make([]models.CatalogItem, len(models.ClearanceItems))
	copy(items, models.ClearanceItems)
	issues := make([]models.AccessIssue, len(models.AccessIssues))
	copy(issues, models.AccessIssues)

	return models.CatalogResponse{
		Items:            items,
		AccessIssues:     issues,
		MileRate:         pricing.MileRate,
		ComplicationRate: pricing.ComplicationRate,
	}
}

// Image returns an optimized JPEG of a catalog picture, served from cache when possible.
// Only names referenced by the catalogs are accepted.
func (s *CatalogService) Image(name string, size string) ([]byte, error) {
	if !s.images[name] {
		return nil, ErrImageNotFound
	}
	if size != SizeThumb {
		size = SizeMedium
	}

	cachePath := s.optimizer.CachePath(name, size)
	if data, ok := s.optimizer.ReadFromCache(cachePath); ok {
		log.Printf("✓ Image cache hit: %s", cachePath)
		return data, nil
	}

	source, err := os.ReadFile(filepath.Join(s.imageDir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to read catalog image: %w", err)
	}

	optimized, err := s.optimizer.Optimize(source, size)
	if err != nil {
		return nil, err
	}

	if err := s.optimizer.SaveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  Image: Could not cache %s: %v", cachePath, err)
	}
	return optimized, nil
}
