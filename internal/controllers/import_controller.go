package controllers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/importer"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/services"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

// Uploads beyond this are almost certainly not listing exports.
const maxImportUploadBytes = 20 << 20

type ImportController struct {
	importService *services.ImportService
}

func NewImportController(is *services.ImportService) *ImportController {
	return &ImportController{importService: is}
}

// ----------------------------------------------------------------
// POST /api/v1/admin/import/csv  (multipart, field "file")
// ----------------------------------------------------------------
func (c *ImportController) ImportCSVHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportUploadBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Expected a multipart upload", nil, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Missing file field", nil, err)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Expected a .csv file", nil)
		return
	}

	report, err := c.importService.ImportCSV(r.Context(), file)
	if err != nil {
		c.respondImportError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}

// ----------------------------------------------------------------
// POST /api/v1/admin/import/json  (scraper envelope body)
// ----------------------------------------------------------------
func (c *ImportController) ImportJSONHandler(w http.ResponseWriter, r *http.Request) {
	report, err := c.importService.ImportJSON(r.Context(), http.MaxBytesReader(w, r.Body, maxImportUploadBytes))
	if err != nil {
		c.respondImportError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}

// Structural parser failures are the caller's problem (4xx); anything
// else leaking out of the pipeline is ours.
func (c *ImportController) respondImportError(w http.ResponseWriter, err error) {
	if errors.Is(err, importer.ErrMalformed) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeBadImport,
			err.Error(), nil, err)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
		"Import failed", nil, err)
}
