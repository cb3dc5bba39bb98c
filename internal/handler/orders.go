package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/RomanVol/hagada-catering/internal/catalog"
	"github.com/RomanVol/hagada-catering/internal/database"
	"github.com/RomanVol/hagada-catering/internal/enum"
	"github.com/RomanVol/hagada-catering/internal/middleware"
	"github.com/RomanVol/hagada-catering/internal/order"
	"github.com/RomanVol/hagada-catering/internal/selection"
	"github.com/RomanVol/hagada-catering/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.SaveOrderRequest, createdBy uuid.UUID) (*service.OrderResult, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, req service.SaveOrderRequest) (*service.OrderResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*service.OrderResult, error)
	ListOrders(ctx context.Context, req service.ListOrdersRequest) ([]database.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

// Broadcaster pushes order lifecycle events to connected operator clients.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastOrderEvent(event string, orderID uuid.UUID)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc OrderServicer
	hub Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, hub Broadcaster) *OrderHandler {
	return &OrderHandler{svc: svc, hub: hub}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/price", h.Price)
}

// --- Request / Response types ---

type volumeRequest struct {
	VolumeID string `json:"volume_id"`
	Quantity int32  `json:"quantity"`
}

type variationRequest struct {
	VariationID string `json:"variation_id"`
	Big         int32  `json:"big"`
	Small       int32  `json:"small"`
}

type addOnRequest struct {
	AddOnID  string          `json:"add_on_id"`
	Quantity int32           `json:"quantity"`
	Volumes  []volumeRequest `json:"volumes"`
}

type itemRequest struct {
	ItemID        string             `json:"item_id"`
	Selected      bool               `json:"selected"`
	Quantity      *int32             `json:"quantity"`
	SizeBig       *int32             `json:"size_big"`
	SizeSmall     *int32             `json:"size_small"`
	Volumes       []volumeRequest    `json:"volumes"`
	Variations    []variationRequest `json:"variations"`
	AddOns        []addOnRequest     `json:"add_ons"`
	PreparationID string             `json:"preparation_id"`
	Note          string             `json:"note"`
	Price         string             `json:"price"`
}

type extraRequest struct {
	SourceItemID    string             `json:"source_item_id"`
	Quantity        *int32             `json:"quantity"`
	SizeBig         *int32             `json:"size_big"`
	SizeSmall       *int32             `json:"size_small"`
	Variations      []variationRequest `json:"variations"`
	Price           string             `json:"price"`
	Note            string             `json:"note"`
	PreparationName string             `json:"preparation_name"`
}

type linkageRequest struct {
	SourceItemID string          `json:"source_item_id"`
	LinkedItemID string          `json:"linked_item_id"`
	Quantity     int32           `json:"quantity"`
	Volumes      []volumeRequest `json:"volumes"`
}

type saveOrderRequest struct {
	CustomerName    string           `json:"customer_name"`
	Phone           string           `json:"phone"`
	Address         string           `json:"address"`
	EventDate       string           `json:"event_date"`
	TotalPortions   int32            `json:"total_portions"`
	PricePerPortion string           `json:"price_per_portion"`
	DeliveryFee     string           `json:"delivery_fee"`
	Notes           string           `json:"notes"`
	Items           []itemRequest    `json:"items"`
	Extras          []extraRequest   `json:"extras"`
	Linkages        []linkageRequest `json:"linkages"`
}

type orderResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderNumber     int32      `json:"order_number"`
	CustomerName    string     `json:"customer_name"`
	Phone           string     `json:"phone"`
	Address         *string    `json:"address"`
	EventDate       *time.Time `json:"event_date"`
	TotalPortions   int32      `json:"total_portions"`
	PricePerPortion string     `json:"price_per_portion"`
	DeliveryFee     string     `json:"delivery_fee"`
	Notes           *string    `json:"notes"`
	CreatedBy       uuid.UUID  `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type volumeStateResponse struct {
	VolumeID uuid.UUID `json:"volume_id"`
	Label    string    `json:"label"`
	Quantity int32     `json:"quantity"`
}

type variationStateResponse struct {
	VariationID uuid.UUID `json:"variation_id"`
	Name        string    `json:"name"`
	Big         int32     `json:"big"`
	Small       int32     `json:"small"`
}

type addOnStateResponse struct {
	AddOnID  uuid.UUID             `json:"add_on_id"`
	Name     string                `json:"name"`
	Quantity int32                 `json:"quantity"`
	Volumes  []volumeStateResponse `json:"volumes,omitempty"`
}

type itemStateResponse struct {
	ItemID          uuid.UUID                `json:"item_id"`
	Name            string                   `json:"name"`
	Category        string                   `json:"category"`
	Quantity        *int32                   `json:"quantity,omitempty"`
	SizeBig         *int32                   `json:"size_big,omitempty"`
	SizeSmall       *int32                   `json:"size_small,omitempty"`
	Volumes         []volumeStateResponse    `json:"volumes,omitempty"`
	Variations      []variationStateResponse `json:"variations,omitempty"`
	AddOns          []addOnStateResponse     `json:"add_ons,omitempty"`
	PreparationID   *uuid.UUID               `json:"preparation_id,omitempty"`
	PreparationName string                   `json:"preparation_name,omitempty"`
	Note            string                   `json:"note,omitempty"`
	Price           *string                  `json:"price,omitempty"`
	PortionTotal    string                   `json:"portion_total,omitempty"`
}

type extraStateResponse struct {
	ID              uuid.UUID                `json:"id"`
	SourceItemID    uuid.UUID                `json:"source_item_id"`
	SourceCategory  string                   `json:"source_category"`
	Name            string                   `json:"name"`
	Quantity        *int32                   `json:"quantity,omitempty"`
	SizeBig         *int32                   `json:"size_big,omitempty"`
	SizeSmall       *int32                   `json:"size_small,omitempty"`
	Variations      []variationStateResponse `json:"variations,omitempty"`
	Price           string                   `json:"price"`
	Note            string                   `json:"note,omitempty"`
	PreparationName string                   `json:"preparation_name,omitempty"`
}

type breakdownResponse struct {
	PortionsTotal string `json:"portions_total"`
	DeliveryFee   string `json:"delivery_fee"`
	OverlayTotal  string `json:"overlay_total"`
	ExtrasTotal   string `json:"extras_total"`
	Total         string `json:"total"`
}

type orderDetailResponse struct {
	orderResponse
	Items     []itemStateResponse  `json:"items"`
	Extras    []extraStateResponse `json:"extras"`
	Breakdown breakdownResponse    `json:"breakdown"`
	Warnings  []string             `json:"warnings,omitempty"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req saveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.CreateOrder(r.Context(), toServiceRequest(req), claims.UserID)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.hub.BroadcastOrderEvent("order.created", result.Order.ID)
	writeJSON(w, http.StatusCreated, toDetailResponse(result))
}

// Update handles PUT /orders/{id}.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req saveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.UpdateOrder(r.Context(), id, toServiceRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: update order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.hub.BroadcastOrderEvent("order.updated", result.Order.ID)
	writeJSON(w, http.StatusOK, toDetailResponse(result))
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	result, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	for _, warn := range result.Warnings {
		log.Printf("WARN: order %s: %s", id, warn)
	}

	writeJSON(w, http.StatusOK, toDetailResponse(result))
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	req := service.ListOrdersRequest{
		Limit:  int32(limit),
		Offset: int32(offset),
	}
	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date format, use YYYY-MM-DD"})
			return
		}
		req.StartDate = t.Format(time.RFC3339)
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date format, use YYYY-MM-DD"})
			return
		}
		req.EndDate = t.AddDate(0, 0, 1).Format(time.RFC3339)
	}

	orders, err := h.svc.ListOrders(r.Context(), req)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = dbOrderToResponse(o)
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: resp,
		Limit:  limit,
		Offset: offset,
	})
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	if err := h.svc.DeleteOrder(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: delete order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.hub.BroadcastOrderEvent("order.deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// Price handles GET /orders/{id}/price.
func (h *OrderHandler) Price(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	result, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: price order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toBreakdownResponse(result.Breakdown))
}

// --- Mapping ---

func toServiceRequest(req saveOrderRequest) service.SaveOrderRequest {
	out := service.SaveOrderRequest{
		CustomerName:    req.CustomerName,
		Phone:           req.Phone,
		Address:         req.Address,
		EventDate:       req.EventDate,
		TotalPortions:   req.TotalPortions,
		PricePerPortion: req.PricePerPortion,
		DeliveryFee:     req.DeliveryFee,
		Notes:           req.Notes,
	}
	for _, item := range req.Items {
		out.Selection.Items = append(out.Selection.Items, service.ItemInput{
			ItemID:        item.ItemID,
			Selected:      item.Selected,
			Quantity:      item.Quantity,
			SizeBig:       item.SizeBig,
			SizeSmall:     item.SizeSmall,
			Volumes:       toVolumeInputs(item.Volumes),
			Variations:    toVariationInputs(item.Variations),
			AddOns:        toAddOnInputs(item.AddOns),
			PreparationID: item.PreparationID,
			Note:          item.Note,
			Price:         item.Price,
		})
	}
	for _, x := range req.Extras {
		out.Selection.Extras = append(out.Selection.Extras, service.ExtraInput{
			SourceItemID:    x.SourceItemID,
			Quantity:        x.Quantity,
			SizeBig:         x.SizeBig,
			SizeSmall:       x.SizeSmall,
			Variations:      toVariationInputs(x.Variations),
			Price:           x.Price,
			Note:            x.Note,
			PreparationName: x.PreparationName,
		})
	}
	for _, l := range req.Linkages {
		out.Selection.Linkages = append(out.Selection.Linkages, service.LinkageInput{
			SourceItemID: l.SourceItemID,
			LinkedItemID: l.LinkedItemID,
			Quantity:     l.Quantity,
			Volumes:      toVolumeInputs(l.Volumes),
		})
	}
	return out
}

func toVolumeInputs(in []volumeRequest) []service.VolumeInput {
	out := make([]service.VolumeInput, len(in))
	for i, v := range in {
		out[i] = service.VolumeInput{VolumeID: v.VolumeID, Quantity: v.Quantity}
	}
	return out
}

func toVariationInputs(in []variationRequest) []service.VariationInput {
	out := make([]service.VariationInput, len(in))
	for i, v := range in {
		out[i] = service.VariationInput{VariationID: v.VariationID, Big: v.Big, Small: v.Small}
	}
	return out
}

func toAddOnInputs(in []addOnRequest) []service.AddOnInput {
	out := make([]service.AddOnInput, len(in))
	for i, a := range in {
		out[i] = service.AddOnInput{AddOnID: a.AddOnID, Quantity: a.Quantity, Volumes: toVolumeInputs(a.Volumes)}
	}
	return out
}

func dbOrderToResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		Phone:           o.Phone,
		TotalPortions:   o.TotalPortions,
		PricePerPortion: numericString(o.PricePerPortion),
		DeliveryFee:     numericString(o.DeliveryFee),
		CreatedBy:       o.CreatedBy,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.Address.Valid {
		resp.Address = &o.Address.String
	}
	if o.EventDate.Valid {
		t := o.EventDate.Time
		resp.EventDate = &t
	}
	if o.Notes.Valid {
		resp.Notes = &o.Notes.String
	}
	return resp
}

// toDetailResponse renders the full order: header, selected item states per
// the session, overlay extras, and the derived price.
func toDetailResponse(result *service.OrderResult) orderDetailResponse {
	resp := orderDetailResponse{
		orderResponse: dbOrderToResponse(result.Order),
		Items:         []itemStateResponse{},
		Extras:        []extraStateResponse{},
		Breakdown:     toBreakdownResponse(result.Breakdown),
	}

	cat := result.Session.Catalog()
	for _, category := range enum.Categories {
		for _, e := range result.Session.Store(category).Entries() {
			if !e.Selected {
				continue
			}
			resp.Items = append(resp.Items, toItemStateResponse(cat, e))
		}
	}
	for _, oe := range result.Session.Overlay.Entries() {
		resp.Extras = append(resp.Extras, toExtraStateResponse(oe))
	}
	for _, warn := range result.Warnings {
		resp.Warnings = append(resp.Warnings, warn.String())
	}
	return resp
}

func toItemStateResponse(cat *catalog.Catalog, e *selection.Entry) itemStateResponse {
	resp := itemStateResponse{
		ItemID:          e.ItemID,
		Name:            e.Name,
		Category:        e.Category,
		PreparationID:   e.PreparationID,
		PreparationName: e.PreparationName,
		Note:            e.Note,
	}

	switch m := e.Measure.(type) {
	case *selection.QuantityMeasure:
		q := m.Quantity
		resp.Quantity = &q
		if it, ok := cat.Item(e.ItemID); ok {
			if total, ok := it.PortionTotal(m.Quantity); ok {
				resp.PortionTotal = total
			}
		}
	case *selection.LitersMeasure:
		for _, v := range m.Volumes {
			if v.Quantity > 0 {
				resp.Volumes = append(resp.Volumes, volumeStateResponse{
					VolumeID: v.VolumeID,
					Label:    v.Label,
					Quantity: v.Quantity,
				})
			}
		}
	case *selection.SizeMeasure:
		big, small := m.Big, m.Small
		resp.SizeBig = &big
		resp.SizeSmall = &small
	case *selection.VariationsMeasure:
		for _, v := range m.Variations {
			if v.Big > 0 || v.Small > 0 {
				resp.Variations = append(resp.Variations, variationStateResponse{
					VariationID: v.VariationID,
					Name:        v.Name,
					Big:         v.Big,
					Small:       v.Small,
				})
			}
		}
	}

	for _, a := range e.AddOns {
		if a.Quantity == 0 && len(a.Volumes) == 0 {
			continue
		}
		ar := addOnStateResponse{AddOnID: a.AddOnID, Name: a.Name, Quantity: a.Quantity}
		for _, v := range a.Volumes {
			if v.Quantity > 0 {
				ar.Volumes = append(ar.Volumes, volumeStateResponse{
					VolumeID: v.VolumeID,
					Label:    v.Label,
					Quantity: v.Quantity,
				})
			}
		}
		resp.AddOns = append(resp.AddOns, ar)
	}

	if e.Price != nil {
		p := e.Price.StringFixed(2)
		resp.Price = &p
	}
	return resp
}

func toExtraStateResponse(oe *selection.OverlayEntry) extraStateResponse {
	resp := extraStateResponse{
		ID:              oe.ID,
		SourceItemID:    oe.SourceItemID,
		SourceCategory:  oe.SourceCategory,
		Name:            oe.Name,
		Quantity:        oe.Quantity,
		SizeBig:         oe.SizeBig,
		SizeSmall:       oe.SizeSmall,
		Price:           oe.Price.StringFixed(2),
		Note:            oe.Note,
		PreparationName: oe.PreparationName,
	}
	for _, v := range oe.Variations {
		resp.Variations = append(resp.Variations, variationStateResponse{
			VariationID: v.VariationID,
			Name:        v.Name,
			Big:         v.Big,
			Small:       v.Small,
		})
	}
	return resp
}

func toBreakdownResponse(b order.Breakdown) breakdownResponse {
	return breakdownResponse{
		PortionsTotal: b.PortionsTotal.StringFixed(2),
		DeliveryFee:   b.DeliveryFee.StringFixed(2),
		OverlayTotal:  b.OverlayTotal.StringFixed(2),
		ExtrasTotal:   b.ExtrasTotal.StringFixed(2),
		Total:         b.Total.StringFixed(2),
	}
}

func numericString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

// isValidationError reports whether the error maps to a 400 response.
func isValidationError(err error) bool {
	validationErrors := []error{
		service.ErrCustomerNameRequired,
		service.ErrPhoneRequired,
		service.ErrInvalidPortions,
		service.ErrInvalidPricePerPortion,
		service.ErrInvalidDeliveryFee,
		service.ErrInvalidEventDate,
		service.ErrInvalidItemID,
		service.ErrInvalidVolumeID,
		service.ErrInvalidVariationID,
		service.ErrInvalidAddOnID,
		service.ErrInvalidPreparationID,
		service.ErrPreparationNotFound,
		service.ErrInvalidPrice,
		selection.ErrItemNotFound,
		selection.ErrWrongMeasure,
		selection.ErrVolumeNotFound,
		selection.ErrVariationNotFound,
		selection.ErrAddOnNotFound,
		selection.ErrInvalidSize,
		selection.ErrNegativeQuantity,
		selection.ErrNoPriceField,
	}
	for _, ve := range validationErrors {
		if errors.Is(err, ve) {
			return true
		}
	}
	return false
}
