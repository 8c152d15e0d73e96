package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/importer"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/routes"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/services"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/testutil"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

func newImportRouter() (*mux.Router, *testutil.FakePropertyRepository) {
	props := testutil.NewFakePropertyRepository()
	images := testutil.NewFakePropertyImageRepository()
	svc := services.NewImportService(props, images, utils.NewMemoryCache(time.Minute))
	ctrl := NewImportController(svc)

	r := mux.NewRouter()
	r.HandleFunc(routes.AdminImportCSV, ctrl.ImportCSVHandler).Methods(http.MethodPost)
	r.HandleFunc(routes.AdminImportJSON, ctrl.ImportJSONHandler).Methods(http.MethodPost)
	return r, props
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestImportCSVUpload(t *testing.T) {
	router, props := newImportRouter()

	csvBody := strings.Join([]string{
		"titulo,precio,ubicacion,url",
		"Piso en Igualada,\"240.000 €\",\"Igualada, Barcelona\",https://e/1",
		"Casa en Calaf,no-disponible,Calaf,https://e/2",
	}, "\n")
	body, contentType := multipartCSV(t, "listings.csv", csvBody)

	req := httptest.NewRequest(http.MethodPost, routes.AdminImportCSV, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report importer.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.Equal(t, 1, report.Summary.Success)
	require.Equal(t, 1, report.Summary.Errors)
	require.Len(t, props.Props, 1)
}

func TestImportCSVRejectsWrongExtension(t *testing.T) {
	router, _ := newImportRouter()

	body, contentType := multipartCSV(t, "listings.xlsx", "titulo,precio,ubicacion,url\n")
	req := httptest.NewRequest(http.MethodPost, routes.AdminImportCSV, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportCSVMissingColumn(t *testing.T) {
	router, _ := newImportRouter()

	body, contentType := multipartCSV(t, "listings.csv", "titulo,precio\nPiso,1000\n")
	req := httptest.NewRequest(http.MethodPost, routes.AdminImportCSV, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errBody))
	require.Equal(t, utils.ErrCodeBadImport, errBody.Code)
}

func TestImportJSONUpload(t *testing.T) {
	router, _ := newImportRouter()

	payload := `{
		"timestamp": "2025-06-01T10:00:00Z",
		"url": "https://source/list",
		"total": 2,
		"particulares": "1",
		"inmobiliarias": 1,
		"viviendas": {
			"todas": [
				{"titulo": "Piso uno", "precio": "100.000 €", "ubicacion": "Igualada, Barcelona", "url": "https://e/1"},
				{"titulo": "Piso dos", "precio": 200000, "ubicacion": "Calaf, Barcelona", "url": "https://e/2"}
			]
		}
	}`

	req := httptest.NewRequest(http.MethodPost, routes.AdminImportJSON, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report importer.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.Equal(t, 2, report.Summary.Success)
	require.NotNil(t, report.Metadata)
	require.Equal(t, "https://source/list", report.Metadata.URL)
	require.Equal(t, 1, report.Metadata.Particulares)
}

func TestImportJSONMalformedBody(t *testing.T) {
	router, _ := newImportRouter()

	for _, payload := range []string{
		"{not json",
		`{"total": 3}`,
		`{"viviendas": {"todas": []}}`,
	} {
		req := httptest.NewRequest(http.MethodPost, routes.AdminImportJSON, strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "payload: %s", payload)
		var errBody utils.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&errBody))
		require.Equal(t, utils.ErrCodeBadImport, errBody.Code)
	}
}
