// Package service holds the business logic between handlers and the database:
// catalog assembly, selection session construction from request input, and
// atomic order persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/RomanVol/hagada-catering/internal/catalog"
	"github.com/RomanVol/hagada-catering/internal/database"
	"github.com/RomanVol/hagada-catering/internal/enum"
	"github.com/RomanVol/hagada-catering/internal/order"
	"github.com/RomanVol/hagada-catering/internal/selection"
)

const maxOrderNumberRetries = 3

// Errors returned by the order service.
var (
	ErrCustomerNameRequired   = errors.New("customer_name is required")
	ErrPhoneRequired          = errors.New("phone is required")
	ErrInvalidPortions        = errors.New("total_portions must be >= 0")
	ErrInvalidPricePerPortion = errors.New("invalid price_per_portion")
	ErrInvalidDeliveryFee     = errors.New("invalid delivery_fee")
	ErrInvalidEventDate       = errors.New("invalid event_date")
	ErrInvalidItemID          = errors.New("invalid item_id")
	ErrInvalidVolumeID        = errors.New("invalid volume_id")
	ErrInvalidVariationID     = errors.New("invalid variation_id")
	ErrInvalidAddOnID         = errors.New("invalid add_on_id")
	ErrInvalidPreparationID   = errors.New("invalid preparation_id")
	ErrPreparationNotFound    = errors.New("preparation not found")
	ErrInvalidPrice           = errors.New("invalid price")
	ErrOrderNotFound          = errors.New("order not found")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to persist and load orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetNextOrderNumber(ctx context.Context) (int32, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	CreateOrderRow(ctx context.Context, arg database.CreateOrderRowParams) (database.OrderRow, error)
	ListOrderRowsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderRow, error)
	DeleteOrderRowsByOrder(ctx context.Context, orderID uuid.UUID) error
	CreateOrderExtra(ctx context.Context, arg database.CreateOrderExtraParams) (database.OrderExtra, error)
	ListOrderExtrasByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderExtra, error)
	DeleteOrderExtrasByOrder(ctx context.Context, orderID uuid.UUID) error
	CreateOrderExtraVariation(ctx context.Context, arg database.CreateOrderExtraVariationParams) (database.OrderExtraVariation, error)
	ListOrderExtraVariationsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderExtraVariation, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// CatalogLoader provides the catalog snapshot sessions are built from.
// Satisfied by *CatalogService.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// VolumeInput is one volume quantity in a request.
type VolumeInput struct {
	VolumeID string
	Quantity int32
}

// VariationInput is one variation's Big/Small counts in a request.
type VariationInput struct {
	VariationID string
	Big         int32
	Small       int32
}

// AddOnInput is one companion add-on selection in a request.
type AddOnInput struct {
	AddOnID  string
	Quantity int32
	Volumes  []VolumeInput
}

// ItemInput is the full selection state of one catalog item in a request.
// The quantity fields an item accepts depend on its measurement discipline;
// fields for other disciplines must stay empty.
type ItemInput struct {
	ItemID        string
	Selected      bool
	Quantity      *int32
	SizeBig       *int32
	SizeSmall     *int32
	Volumes       []VolumeInput
	Variations    []VariationInput
	AddOns        []AddOnInput
	PreparationID string
	Note          string
	Price         string // extras-category items only
}

// ExtraInput is one extras-overlay entry in a request.
type ExtraInput struct {
	SourceItemID    string
	Quantity        *int32
	SizeBig         *int32
	SizeSmall       *int32
	Variations      []VariationInput
	Price           string
	Note            string
	PreparationName string
}

// LinkageInput folds an add-on amount of a source item into a linked item.
type LinkageInput struct {
	SourceItemID string
	LinkedItemID string
	Quantity     int32
	Volumes      []VolumeInput
}

// SelectionInput is the complete editing state submitted with a save.
type SelectionInput struct {
	Items    []ItemInput
	Extras   []ExtraInput
	Linkages []LinkageInput
}

// SaveOrderRequest is the validated input for creating or updating an order.
type SaveOrderRequest struct {
	CustomerName    string
	Phone           string
	Address         string
	EventDate       string // RFC3339, optional
	TotalPortions   int32
	PricePerPortion string
	DeliveryFee     string
	Notes           string
	Selection       SelectionInput
}

// OrderResult is an order with its rebuilt selection state and derived price.
type OrderResult struct {
	Order     database.Order
	Session   *selection.Session
	Warnings  []order.Warning
	Breakdown order.Breakdown
}

// OrderService handles order business logic.
type OrderService struct {
	pool     TxBeginner
	store    OrderStore
	newStore NewOrderStore
	catalog  CatalogLoader
}

// NewOrderService creates a new OrderService. store serves reads outside
// transactions; newStore binds writes to a transaction.
func NewOrderService(pool TxBeginner, store OrderStore, newStore NewOrderStore, catalog CatalogLoader) *OrderService {
	return &OrderService{pool: pool, store: store, newStore: newStore, catalog: catalog}
}

// orderScalars holds the parsed order-level fields of a save request.
type orderScalars struct {
	eventDate       pgtype.Timestamptz
	pricePerPortion decimal.Decimal
	deliveryFee     decimal.Decimal
}

// CreateOrder validates the request, builds the selection session, and
// persists the order with its flattened rows atomically. Retries up to
// maxOrderNumberRetries times on order_number unique constraint violations
// (race condition where concurrent transactions get the same MAX).
func (s *OrderService) CreateOrder(ctx context.Context, req SaveOrderRequest, createdBy uuid.UUID) (*OrderResult, error) {
	scalars, err := validateScalars(req)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sess, err := buildSession(cat, req.Selection)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		result, err := s.createOrderTx(ctx, req, scalars, sess, createdBy)
		if err == nil {
			return result, nil
		}
		if isOrderNumberConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// isOrderNumberConflict checks if the error is a unique constraint violation
// on the order number (pgconn error code 23505).
func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "orders_order_number_key"
	}
	return false
}

func (s *OrderService) createOrderTx(ctx context.Context, req SaveOrderRequest, scalars orderScalars, sess *selection.Session, createdBy uuid.UUID) (*OrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	nextNum, err := store.GetNextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("get next order number: %w", err)
	}

	dbOrder, err := store.CreateOrder(ctx, database.CreateOrderParams{
		OrderNumber:     nextNum,
		CustomerName:    req.CustomerName,
		Phone:           req.Phone,
		Address:         textOrNull(req.Address),
		EventDate:       scalars.eventDate,
		TotalPortions:   req.TotalPortions,
		PricePerPortion: decimalToNumeric(scalars.pricePerPortion),
		DeliveryFee:     decimalToNumeric(scalars.deliveryFee),
		Notes:           textOrNull(req.Notes),
		CreatedBy:       createdBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := insertSessionRows(ctx, store, dbOrder.ID, sess); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s.result(dbOrder, sess, nil), nil
}

// UpdateOrder replaces the order's scalars and its entire row set. Rows are
// deleted and reinserted from the submitted session; partial row edits do not
// exist at this layer.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req SaveOrderRequest) (*OrderResult, error) {
	scalars, err := validateScalars(req)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sess, err := buildSession(cat, req.Selection)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	dbOrder, err := store.UpdateOrder(ctx, database.UpdateOrderParams{
		ID:              id,
		CustomerName:    req.CustomerName,
		Phone:           req.Phone,
		Address:         textOrNull(req.Address),
		EventDate:       scalars.eventDate,
		TotalPortions:   req.TotalPortions,
		PricePerPortion: decimalToNumeric(scalars.pricePerPortion),
		DeliveryFee:     decimalToNumeric(scalars.deliveryFee),
		Notes:           textOrNull(req.Notes),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}

	if err := store.DeleteOrderRowsByOrder(ctx, id); err != nil {
		return nil, fmt.Errorf("delete order rows: %w", err)
	}
	if err := store.DeleteOrderExtrasByOrder(ctx, id); err != nil {
		return nil, fmt.Errorf("delete order extras: %w", err)
	}
	if err := insertSessionRows(ctx, store, id, sess); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s.result(dbOrder, sess, nil), nil
}

// GetOrder loads an order and reconciles its persisted rows back into a
// selection session. Reconciliation warnings are returned alongside, never
// swallowed.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResult, error) {
	dbOrder, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	dbRows, err := s.store.ListOrderRowsByOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list order rows: %w", err)
	}
	dbExtras, err := s.store.ListOrderExtrasByOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list order extras: %w", err)
	}
	dbExtraVars, err := s.store.ListOrderExtraVariationsByOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list extra variations: %w", err)
	}

	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	rows := make([]order.Row, 0, len(dbRows))
	for _, r := range dbRows {
		rows = append(rows, rowFromDB(r))
	}
	extras := extrasFromDB(dbExtras, dbExtraVars)

	sess, warnings := order.Reconcile(cat, rows, extras)
	return s.result(dbOrder, sess, warnings), nil
}

// ListOrdersRequest filters and pages the order list.
type ListOrdersRequest struct {
	Limit     int32
	Offset    int32
	StartDate string // RFC3339, optional
	EndDate   string // RFC3339, optional
}

// ListOrders returns order headers only; selection state is loaded per order.
func (s *OrderService) ListOrders(ctx context.Context, req ListOrdersRequest) ([]database.Order, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidEventDate
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidEventDate
	}
	return s.store.ListOrders(ctx, database.ListOrdersParams{
		Limit:     limit,
		Offset:    req.Offset,
		StartDate: start,
		EndDate:   end,
	})
}

// DeleteOrder removes an order and, through the schema cascade, its rows.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// result derives the price breakdown from the order's stored scalars and the
// session's current extras.
func (s *OrderService) result(dbOrder database.Order, sess *selection.Session, warnings []order.Warning) *OrderResult {
	breakdown := order.Price(order.PricingFields{
		TotalPortions:   dbOrder.TotalPortions,
		PricePerPortion: numericToDecimal(dbOrder.PricePerPortion),
		DeliveryFee:     numericToDecimal(dbOrder.DeliveryFee),
	}, sess)
	return &OrderResult{
		Order:     dbOrder,
		Session:   sess,
		Warnings:  warnings,
		Breakdown: breakdown,
	}
}

// --- Request validation ---

func validateScalars(req SaveOrderRequest) (orderScalars, error) {
	var sc orderScalars
	if req.CustomerName == "" {
		return sc, ErrCustomerNameRequired
	}
	if req.Phone == "" {
		return sc, ErrPhoneRequired
	}
	if req.TotalPortions < 0 {
		return sc, ErrInvalidPortions
	}

	var err error
	sc.pricePerPortion, err = parseDecimal(req.PricePerPortion)
	if err != nil {
		return sc, ErrInvalidPricePerPortion
	}
	sc.deliveryFee, err = parseDecimal(req.DeliveryFee)
	if err != nil {
		return sc, ErrInvalidDeliveryFee
	}
	sc.eventDate, err = parseDate(req.EventDate)
	if err != nil {
		return sc, ErrInvalidEventDate
	}
	return sc, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseDate(s string) (pgtype.Timestamptz, error) {
	if s == "" {
		return pgtype.Timestamptz{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return pgtype.Timestamptz{}, err
	}
	return pgtype.Timestamptz{Time: t, Valid: true}, nil
}

// --- Session construction ---

// buildSession replays the submitted selection state into a fresh session,
// going through the session handlers so every discipline and range check
// applies to request data exactly as it does to interactive edits.
func buildSession(cat *catalog.Catalog, in SelectionInput) (*selection.Session, error) {
	sess := selection.NewSession(cat)

	for i, item := range in.Items {
		if err := applyItemInput(cat, sess, item); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	for i, x := range in.Extras {
		if err := applyExtraInput(cat, sess, x); err != nil {
			return nil, fmt.Errorf("extras[%d]: %w", i, err)
		}
	}
	for i, l := range in.Linkages {
		if err := applyLinkageInput(cat, sess, l); err != nil {
			return nil, fmt.Errorf("linkages[%d]: %w", i, err)
		}
	}
	return sess, nil
}

func applyItemInput(cat *catalog.Catalog, sess *selection.Session, item ItemInput) error {
	itemID, err := uuid.Parse(item.ItemID)
	if err != nil {
		return ErrInvalidItemID
	}

	if item.Quantity != nil {
		if err := sess.SetQuantity(itemID, *item.Quantity); err != nil {
			return err
		}
	}
	for _, v := range item.Volumes {
		volumeID, err := uuid.Parse(v.VolumeID)
		if err != nil {
			return ErrInvalidVolumeID
		}
		if err := sess.SetVolume(itemID, volumeID, v.Quantity); err != nil {
			return err
		}
	}
	if item.SizeBig != nil {
		if err := sess.SetSize(itemID, enum.SizeBig, *item.SizeBig); err != nil {
			return err
		}
	}
	if item.SizeSmall != nil {
		if err := sess.SetSize(itemID, enum.SizeSmall, *item.SizeSmall); err != nil {
			return err
		}
	}
	for _, v := range item.Variations {
		variationID, err := uuid.Parse(v.VariationID)
		if err != nil {
			return ErrInvalidVariationID
		}
		if err := sess.SetVariation(itemID, variationID, enum.SizeBig, v.Big); err != nil {
			return err
		}
		if err := sess.SetVariation(itemID, variationID, enum.SizeSmall, v.Small); err != nil {
			return err
		}
	}
	for _, a := range item.AddOns {
		addOnID, err := uuid.Parse(a.AddOnID)
		if err != nil {
			return ErrInvalidAddOnID
		}
		if a.Quantity > 0 {
			if err := sess.SetAddOnQuantity(itemID, addOnID, a.Quantity); err != nil {
				return err
			}
		}
		for _, v := range a.Volumes {
			volumeID, err := uuid.Parse(v.VolumeID)
			if err != nil {
				return ErrInvalidVolumeID
			}
			if err := sess.SetAddOnVolume(itemID, addOnID, volumeID, v.Quantity); err != nil {
				return err
			}
		}
	}

	if item.PreparationID != "" {
		prepID, err := uuid.Parse(item.PreparationID)
		if err != nil {
			return ErrInvalidPreparationID
		}
		prep, ok := cat.Preparation(prepID)
		if !ok {
			return ErrPreparationNotFound
		}
		if err := sess.SetPreparation(itemID, prep.ID, prep.Name); err != nil {
			return err
		}
	}
	if item.Note != "" {
		if err := sess.SetNote(itemID, item.Note); err != nil {
			return err
		}
	}
	if item.Price != "" {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return ErrInvalidPrice
		}
		if err := sess.SetPrice(itemID, price); err != nil {
			return err
		}
	}

	// Explicit toggle last: quantity handlers already derived the flag, this
	// covers toggle-only selection with no quantities.
	if item.Selected {
		if err := sess.Toggle(itemID, true); err != nil {
			return err
		}
	}
	return nil
}

func applyExtraInput(cat *catalog.Catalog, sess *selection.Session, x ExtraInput) error {
	sourceID, err := uuid.Parse(x.SourceItemID)
	if err != nil {
		return ErrInvalidItemID
	}
	it, ok := cat.Item(sourceID)
	if !ok {
		return selection.ErrItemNotFound
	}
	price := decimal.Zero
	if x.Price != "" {
		price, err = decimal.NewFromString(x.Price)
		if err != nil {
			return ErrInvalidPrice
		}
	}
	params := selection.AddExtraParams{
		SourceItemID:    sourceID,
		SourceCategory:  it.Category,
		Name:            it.Name,
		Quantity:        x.Quantity,
		SizeBig:         x.SizeBig,
		SizeSmall:       x.SizeSmall,
		Price:           price,
		Note:            x.Note,
		PreparationName: x.PreparationName,
	}
	for _, v := range x.Variations {
		variationID, err := uuid.Parse(v.VariationID)
		if err != nil {
			return ErrInvalidVariationID
		}
		name := variationName(it, variationID)
		params.Variations = append(params.Variations, selection.OverlayVariation{
			VariationID: variationID,
			Name:        name,
			Big:         v.Big,
			Small:       v.Small,
		})
	}
	sess.Overlay.Add(params)
	return nil
}

func applyLinkageInput(cat *catalog.Catalog, sess *selection.Session, l LinkageInput) error {
	sourceID, err := uuid.Parse(l.SourceItemID)
	if err != nil {
		return ErrInvalidItemID
	}
	linkedID, err := uuid.Parse(l.LinkedItemID)
	if err != nil {
		return ErrInvalidItemID
	}
	source, ok := cat.Item(sourceID)
	if !ok {
		return selection.ErrItemNotFound
	}
	payload := selection.LinkagePayload{
		SourceItemID: sourceID,
		SourceName:   source.Name,
		Quantity:     l.Quantity,
	}
	for _, v := range l.Volumes {
		volumeID, err := uuid.Parse(v.VolumeID)
		if err != nil {
			return ErrInvalidVolumeID
		}
		label, _ := cat.VolumeLabel(volumeID)
		payload.Volumes = append(payload.Volumes, selection.VolumeQuantity{
			VolumeID: volumeID,
			Label:    label,
			Quantity: v.Quantity,
		})
	}
	return sess.MergeToLinked(linkedID, payload)
}

func variationName(it catalog.Item, variationID uuid.UUID) string {
	for _, v := range it.Variations {
		if v.ID == variationID {
			return v.Name
		}
	}
	return ""
}

// --- Row persistence mapping ---

// insertSessionRows serializes the session and writes every row and extra
// within the caller's transaction.
func insertSessionRows(ctx context.Context, store OrderStore, orderID uuid.UUID, sess *selection.Session) error {
	rows, extras := order.Serialize(sess)

	for _, r := range rows {
		params := database.CreateOrderRowParams{
			OrderID:       orderID,
			FoodItemID:    r.FoodItemID,
			VolumeID:      uuidOrNull(r.VolumeID),
			VariationID:   uuidOrNull(r.VariationID),
			AddOnID:       uuidOrNull(r.AddOnID),
			Quantity:      r.Quantity,
			PreparationID: uuidOrNull(r.PreparationID),
		}
		if r.SizeType != nil {
			params.SizeType = pgtype.Text{String: *r.SizeType, Valid: true}
		}
		if r.Note != nil {
			params.Note = pgtype.Text{String: *r.Note, Valid: true}
		}
		if r.Price != nil {
			params.Price = decimalToNumeric(*r.Price)
		}
		if _, err := store.CreateOrderRow(ctx, params); err != nil {
			return fmt.Errorf("create order row: %w", err)
		}
	}

	for _, x := range extras {
		extra, err := store.CreateOrderExtra(ctx, database.CreateOrderExtraParams{
			OrderID:          orderID,
			SourceFoodItemID: x.SourceFoodItemID,
			SourceCategory:   x.SourceCategory,
			Name:             x.Name,
			Quantity:         int4OrNull(x.Quantity),
			SizeBig:          int4OrNull(x.SizeBig),
			SizeSmall:        int4OrNull(x.SizeSmall),
			Price:            decimalToNumeric(x.Price),
			Note:             textOrNullPtr(x.Note),
			PreparationName:  textOrNullPtr(x.PreparationName),
		})
		if err != nil {
			return fmt.Errorf("create order extra: %w", err)
		}
		for _, v := range x.Variations {
			_, err := store.CreateOrderExtraVariation(ctx, database.CreateOrderExtraVariationParams{
				OrderExtraID: extra.ID,
				VariationID:  v.VariationID,
				Name:         v.Name,
				SizeBig:      v.Big,
				SizeSmall:    v.Small,
			})
			if err != nil {
				return fmt.Errorf("create extra variation: %w", err)
			}
		}
	}
	return nil
}

func textOrNullPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func rowFromDB(r database.OrderRow) order.Row {
	row := order.Row{
		FoodItemID:    r.FoodItemID,
		VolumeID:      uuidPtr(r.VolumeID),
		VariationID:   uuidPtr(r.VariationID),
		AddOnID:       uuidPtr(r.AddOnID),
		Quantity:      r.Quantity,
		PreparationID: uuidPtr(r.PreparationID),
		Note:          textPtr(r.Note),
	}
	if r.SizeType.Valid {
		st := r.SizeType.String
		row.SizeType = &st
	}
	if r.Price.Valid {
		p := numericToDecimal(r.Price)
		row.Price = &p
	}
	return row
}

func extrasFromDB(dbExtras []database.OrderExtra, dbVars []database.OrderExtraVariation) []order.ExtraRow {
	varsByExtra := make(map[uuid.UUID][]order.ExtraRowVariation)
	for _, v := range dbVars {
		varsByExtra[v.OrderExtraID] = append(varsByExtra[v.OrderExtraID], order.ExtraRowVariation{
			VariationID: v.VariationID,
			Name:        v.Name,
			Big:         v.SizeBig,
			Small:       v.SizeSmall,
		})
	}
	extras := make([]order.ExtraRow, 0, len(dbExtras))
	for _, x := range dbExtras {
		extras = append(extras, order.ExtraRow{
			ID:               x.ID,
			SourceFoodItemID: x.SourceFoodItemID,
			SourceCategory:   x.SourceCategory,
			Name:             x.Name,
			Quantity:         int4Ptr(x.Quantity),
			SizeBig:          int4Ptr(x.SizeBig),
			SizeSmall:        int4Ptr(x.SizeSmall),
			Variations:       varsByExtra[x.ID],
			Price:            numericToDecimal(x.Price),
			Note:             textPtr(x.Note),
			PreparationName:  textPtr(x.PreparationName),
		})
	}
	return extras
}
