package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Soborbo/bristolhouseclearances/service"
)

// CatalogController handles HTTP requests for the item catalog
type CatalogController struct {
	service service.CatalogServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(svc service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		service: svc,
	}
}

// GetCatalog handles GET /api/catalog
// Example response:
// {
//   "items": [{"code": "garden_qty", "label": "Garden waste", "unitLabel": "ton bag", "unitPrice": 40, "image": "/img/calculator/garden-waste-clearance.webp"}, ...],
//   "accessIssues": [{"code": "restricted-parking", "label": "Restricted or distant parking", "image": "..."}, ...],
//   "mileRate": 1.5,
//   "complicationRate": 0.2
// }
func (c *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeFailure(w, http.StatusMethodNotAllowed, messageMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, c.service.Catalog())
}

// GetImage handles GET /api/catalog/images/{name}?size=thumb|medium
// Returns an optimized JPEG of a catalog picture
func (c *CatalogController) GetImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetImage: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		writeFailure(w, http.StatusMethodNotAllowed, messageMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/catalog/images/")
	size := r.URL.Query().Get("size")
	if size == "" {
		size = service.SizeMedium
	}

	data, err := c.service.Image(name, size)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			writeFailure(w, http.StatusNotFound, messageImageNotAvailable)
			return
		}
		log.Printf("❌ GetImage: Error optimizing %s: %v", name, err)
		writeFailure(w, http.StatusInternalServerError, messageServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ GetImage: Error writing response: %v", err)
	}
}
