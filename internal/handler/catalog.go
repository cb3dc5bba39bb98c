package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/RomanVol/hagada-catering/internal/catalog"
	"github.com/RomanVol/hagada-catering/internal/enum"
)

// CatalogLoader provides the assembled catalog snapshot.
// Satisfied by *service.CatalogService.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogHandler handles catalog read endpoints.
type CatalogHandler struct {
	loader CatalogLoader
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(loader CatalogLoader) *CatalogHandler {
	return &CatalogHandler{loader: loader}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog/items", h.ListItems)
	r.Get("/catalog/volumes", h.ListVolumes)
}

// --- Response types ---

type catalogVariationResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type catalogAddOnResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type catalogVolumeResponse struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

type catalogItemResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Name              string                     `json:"name"`
	Category          string                     `json:"category"`
	MeasurementType   string                     `json:"measurement_type"`
	Discipline        string                     `json:"discipline"`
	Variations        []catalogVariationResponse `json:"variations,omitempty"`
	AddOns            []catalogAddOnResponse     `json:"add_ons,omitempty"`
	Volumes           []catalogVolumeResponse    `json:"volumes,omitempty"`
	PortionMultiplier int32                      `json:"portion_multiplier,omitempty"`
	PortionUnit       string                     `json:"portion_unit,omitempty"`
}

type catalogCategoryResponse struct {
	Category string                `json:"category"`
	Items    []catalogItemResponse `json:"items"`
}

type catalogResponse struct {
	Categories   []catalogCategoryResponse `json:"categories"`
	Preparations []catalogPrepResponse     `json:"preparations"`
}

type catalogPrepResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// --- Handlers ---

// ListItems handles GET /catalog/items: the full menu grouped by category,
// each item carrying the inputs its measurement discipline requires.
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	cat, err := h.loader.Load(r.Context())
	if err != nil {
		log.Printf("ERROR: load catalog: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := catalogResponse{Preparations: []catalogPrepResponse{}}
	for _, category := range enum.Categories {
		cr := catalogCategoryResponse{Category: category, Items: []catalogItemResponse{}}
		for _, it := range cat.ItemsByCategory(category) {
			cr.Items = append(cr.Items, toCatalogItemResponse(cat, it))
		}
		resp.Categories = append(resp.Categories, cr)
	}
	for _, p := range cat.Preparations() {
		resp.Preparations = append(resp.Preparations, catalogPrepResponse{ID: p.ID, Name: p.Name})
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListVolumes handles GET /catalog/volumes: the global volume labels.
func (h *CatalogHandler) ListVolumes(w http.ResponseWriter, r *http.Request) {
	cat, err := h.loader.Load(r.Context())
	if err != nil {
		log.Printf("ERROR: load catalog: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := []catalogVolumeResponse{}
	for _, v := range cat.GlobalVolumes() {
		if !v.Active {
			continue
		}
		resp = append(resp, catalogVolumeResponse{ID: v.ID, Label: v.Label})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toCatalogItemResponse(cat *catalog.Catalog, it catalog.Item) catalogItemResponse {
	resp := catalogItemResponse{
		ID:                it.ID,
		Name:              it.Name,
		Category:          it.Category,
		MeasurementType:   it.MeasurementType,
		Discipline:        it.Discipline(),
		PortionMultiplier: it.PortionMultiplier,
		PortionUnit:       it.PortionUnit,
	}
	for _, v := range it.Variations {
		resp.Variations = append(resp.Variations, catalogVariationResponse{ID: v.ID, Name: v.Name})
	}
	for _, a := range it.AddOns {
		resp.AddOns = append(resp.AddOns, catalogAddOnResponse{ID: a.ID, Name: a.Name})
	}
	if it.Discipline() == catalog.DisciplineLiters {
		for _, v := range cat.VolumesFor(it) {
			resp.Volumes = append(resp.Volumes, catalogVolumeResponse{ID: v.ID, Label: v.Label})
		}
	}
	return resp
}
