package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/dtos"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/services"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

var validate = validator.New()

type PropertiesController struct {
	propertyService *services.PropertyService
}

func NewPropertiesController(ps *services.PropertyService) *PropertiesController {
	return &PropertiesController{propertyService: ps}
}

// ----------------------------------------------------------------
// GET /api/v1/properties  (public catalog search)
// ----------------------------------------------------------------
func (c *PropertiesController) ListPublicHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repositories.PropertyFilter{
		Query:    q.Get("q"),
		Province: q.Get("provincia"),
		Locality: q.Get("poblacion"),
		Dwelling: models.DwellingType(q.Get("tipoVivienda")),
		Listing:  models.ListingType(q.Get("tipoAnuncio")),
		MinPrice: intQuery(q.Get("minPrice")),
		MaxPrice: intQuery(q.Get("maxPrice")),
		MinRooms: intQuery(q.Get("rooms")),
		Page:     intQuery(q.Get("page")),
		PageSize: intQuery(q.Get("pageSize")),
	}

	resp, err := c.propertyService.ListPublic(r.Context(), f)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"Failed to list properties", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{id}
// ----------------------------------------------------------------
func (c *PropertiesController) GetPublicHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := c.propertyService.GetPublic(r.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrPropertyNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound,
				"Property not found", nil)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"Failed to fetch property", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// ----------------------------------------------------------------
// GET /api/v1/admin/properties
// ----------------------------------------------------------------
func (c *PropertiesController) ListAdminHandler(w http.ResponseWriter, r *http.Request) {
	props, err := c.propertyService.ListAll(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"Failed to list properties", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// ----------------------------------------------------------------
// GET /api/v1/admin/properties/{id}
// ----------------------------------------------------------------
func (c *PropertiesController) GetAdminHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := c.propertyService.Get(r.Context(), id)
	if err != nil {
		c.respondServiceError(w, err, "Failed to fetch property")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// ----------------------------------------------------------------
// POST /api/v1/admin/properties
// ----------------------------------------------------------------
func (c *PropertiesController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUpsert(w, r)
	if !ok {
		return
	}

	p, err := c.propertyService.Create(r.Context(), req)
	if err != nil {
		c.respondServiceError(w, err, "Failed to create property")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, p)
}

// ----------------------------------------------------------------
// PUT /api/v1/admin/properties/{id}
// ----------------------------------------------------------------
func (c *PropertiesController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeUpsert(w, r)
	if !ok {
		return
	}

	p, err := c.propertyService.Update(r.Context(), id, req)
	if err != nil {
		c.respondServiceError(w, err, "Failed to update property")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// ----------------------------------------------------------------
// DELETE /api/v1/admin/properties/{id}
// ----------------------------------------------------------------
func (c *PropertiesController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.propertyService.Delete(r.Context(), id); err != nil {
		c.respondServiceError(w, err, "Failed to delete property")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ----------------------------------------------------------------
// POST /api/v1/admin/properties/{id}/images
// ----------------------------------------------------------------
func (c *PropertiesController) AddImageHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.AddImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"A valid image url is required", nil, err)
		return
	}

	img, err := c.propertyService.AddImage(r.Context(), id, req.URL)
	if err != nil {
		c.respondServiceError(w, err, "Failed to add image")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, img)
}

// ----------------------------------------------------------------
// PUT /api/v1/admin/properties/{id}/images/order
// ----------------------------------------------------------------
func (c *PropertiesController) ReorderImagesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.ReorderImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"imageIds must list every image of the property", nil, err)
		return
	}

	if err := c.propertyService.ReorderImages(r.Context(), id, req.ImageIDs); err != nil {
		if errors.Is(err, utils.ErrOrderMismatch) {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict,
				"imageIds does not match the property's images", nil, err)
			return
		}
		c.respondServiceError(w, err, "Failed to reorder images")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// ----------------------------------------------------------------
// DELETE /api/v1/admin/images/{id}
// ----------------------------------------------------------------
func (c *PropertiesController) DeleteImageHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.propertyService.DeleteImage(r.Context(), id); err != nil {
		if errors.Is(err, utils.ErrImageNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound,
				"Image not found", nil)
			return
		}
		c.respondServiceError(w, err, "Failed to delete image")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

/* ------------------------------------------------------------------
   shared helpers
------------------------------------------------------------------ */

func (c *PropertiesController) respondServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, utils.ErrPropertyNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound,
			"Property not found", nil)
	case errors.Is(err, utils.ErrInvalidSaleState):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Invalid sale state", nil)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
			msg, nil, err)
	}
}

func decodeUpsert(w http.ResponseWriter, r *http.Request) (*dtos.PropertyUpsertRequest, bool) {
	var req dtos.PropertyUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON payload", nil, err)
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Property payload failed validation", nil, err)
		return nil, false
	}
	return &req, true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid id", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
