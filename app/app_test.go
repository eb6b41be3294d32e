package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/bristolhouseclearances/config"
)

func TestInitialize_WithoutCollaborators(t *testing.T) {
	cfg := &config.Config{
		Port:            "8080",
		CatalogImageDir: t.TempDir(),
		ImageCacheDir:   t.TempDir(),
		DispatchTimeout: time.Second,
		DispatchWorkers: 2,
	}

	application, err := Initialize(cfg)
	require.NoError(t, err)
	defer application.Close()

	rec := httptest.NewRecorder()
	application.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	body := `{"address":"1 High Street","postcode":"BS1 1AA"}`
	application.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/distance", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "~5 miles (estimated)")
}

func TestInitialize_RejectsBadServiceAccountKey(t *testing.T) {
	cfg := &config.Config{
		SheetsID:                 "sheet",
		ServiceAccountEmail:      "svc@example.iam.gserviceaccount.com",
		ServiceAccountPrivateKey: "not a key",
		ImageCacheDir:            t.TempDir(),
		DispatchTimeout:          time.Second,
		DispatchWorkers:          1,
	}

	_, err := Initialize(cfg)
	assert.Error(t, err)
}
