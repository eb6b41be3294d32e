package router

import (
	"net/http"

	"github.com/Soborbo/bristolhouseclearances/app/controller"
)

type Controllers struct {
	Quote    *controller.QuoteController
	Distance *controller.DistanceController
	Contact  *controller.ContactController
	Catalog  *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every endpoint on a new mux
func SetupRoutes(controllers *Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Quote wizard endpoints
	mux.HandleFunc("/api/submit", controllers.Quote.Submit)
	mux.HandleFunc("/api/distance", controllers.Distance.Calculate)

	// Contact form
	mux.HandleFunc("/api/contact", controllers.Contact.Submit)

	// Catalog and its pictures
	mux.HandleFunc("/api/catalog", controllers.Catalog.GetCatalog)
	mux.HandleFunc("/api/catalog/images/", controllers.Catalog.GetImage)

	return mux
}
