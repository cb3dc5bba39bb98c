package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/RomanVol/hagada-catering/internal/catalog"
	"github.com/RomanVol/hagada-catering/internal/database"
	"github.com/RomanVol/hagada-catering/internal/enum"
	"github.com/RomanVol/hagada-catering/internal/selection"
)

// --- Mock implementations ---

// mockTx implements pgx.Tx with only the methods we need.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	commitErr   error
	rollbackErr error
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error          { return m.commitErr }
func (m *mockTx) Rollback(ctx context.Context) error        { return m.rollbackErr }
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockTxBeginner implements TxBeginner.
type mockTxBeginner struct {
	tx  pgx.Tx
	err error
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.tx, m.err
}

// mockOrderStore implements OrderStore with configurable behavior.
type mockOrderStore struct {
	getNextOrderNumberFn     func(ctx context.Context) (int32, error)
	createOrderFn            func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	getOrderFn               func(ctx context.Context, id uuid.UUID) (database.Order, error)
	listOrdersFn             func(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	updateOrderFn            func(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
	deleteOrderFn            func(ctx context.Context, id uuid.UUID) error
	createOrderRowFn         func(ctx context.Context, arg database.CreateOrderRowParams) (database.OrderRow, error)
	listOrderRowsFn          func(ctx context.Context, orderID uuid.UUID) ([]database.OrderRow, error)
	deleteOrderRowsFn        func(ctx context.Context, orderID uuid.UUID) error
	createOrderExtraFn       func(ctx context.Context, arg database.CreateOrderExtraParams) (database.OrderExtra, error)
	listOrderExtrasFn        func(ctx context.Context, orderID uuid.UUID) ([]database.OrderExtra, error)
	deleteOrderExtrasFn      func(ctx context.Context, orderID uuid.UUID) error
	createExtraVariationFn   func(ctx context.Context, arg database.CreateOrderExtraVariationParams) (database.OrderExtraVariation, error)
	listExtraVariationsFn    func(ctx context.Context, orderID uuid.UUID) ([]database.OrderExtraVariation, error)
}

func (m *mockOrderStore) GetNextOrderNumber(ctx context.Context) (int32, error) {
	return m.getNextOrderNumberFn(ctx)
}
func (m *mockOrderStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	return m.createOrderFn(ctx, arg)
}
func (m *mockOrderStore) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	return m.getOrderFn(ctx, id)
}
func (m *mockOrderStore) ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
	return m.listOrdersFn(ctx, arg)
}
func (m *mockOrderStore) UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error) {
	return m.updateOrderFn(ctx, arg)
}
func (m *mockOrderStore) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.deleteOrderFn(ctx, id)
}
func (m *mockOrderStore) CreateOrderRow(ctx context.Context, arg database.CreateOrderRowParams) (database.OrderRow, error) {
	return m.createOrderRowFn(ctx, arg)
}
func (m *mockOrderStore) ListOrderRowsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderRow, error) {
	return m.listOrderRowsFn(ctx, orderID)
}
func (m *mockOrderStore) DeleteOrderRowsByOrder(ctx context.Context, orderID uuid.UUID) error {
	return m.deleteOrderRowsFn(ctx, orderID)
}
func (m *mockOrderStore) CreateOrderExtra(ctx context.Context, arg database.CreateOrderExtraParams) (database.OrderExtra, error) {
	return m.createOrderExtraFn(ctx, arg)
}
func (m *mockOrderStore) ListOrderExtrasByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderExtra, error) {
	return m.listOrderExtrasFn(ctx, orderID)
}
func (m *mockOrderStore) DeleteOrderExtrasByOrder(ctx context.Context, orderID uuid.UUID) error {
	return m.deleteOrderExtrasFn(ctx, orderID)
}
func (m *mockOrderStore) CreateOrderExtraVariation(ctx context.Context, arg database.CreateOrderExtraVariationParams) (database.OrderExtraVariation, error) {
	return m.createExtraVariationFn(ctx, arg)
}
func (m *mockOrderStore) ListOrderExtraVariationsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderExtraVariation, error) {
	return m.listExtraVariationsFn(ctx, orderID)
}

// mockCatalogLoader serves a fixed catalog snapshot.
type mockCatalogLoader struct {
	cat *catalog.Catalog
	err error
}

func (m *mockCatalogLoader) Load(ctx context.Context) (*catalog.Catalog, error) {
	return m.cat, m.err
}

// --- Test helpers ---

func makeNumeric(val string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(val)
	return n
}

func numericEquals(n pgtype.Numeric, expected string) bool {
	d := numericToDecimal(n)
	exp, _ := decimal.NewFromString(expected)
	return d.Equal(exp)
}

// testMenu is the fixed catalog the service tests run against.
type testMenu struct {
	cat     *catalog.Catalog
	zaaluk  catalog.Item
	pickles catalog.Item
	chicken catalog.Item
	fruit   catalog.Item
	volHalf catalog.Volume
	prep    catalog.Preparation
}

func newTestMenu() *testMenu {
	m := &testMenu{
		volHalf: catalog.Volume{ID: uuid.New(), Label: "חצי ליטר", Active: true},
		prep:    catalog.Preparation{ID: uuid.New(), Name: "אפוי"},
	}
	m.zaaluk = catalog.Item{
		ID: uuid.New(), Name: "זעלוק", Category: enum.CategorySalads,
		MeasurementType: enum.MeasurementLiters,
	}
	m.pickles = catalog.Item{
		ID: uuid.New(), Name: "חמוצים", Category: enum.CategorySalads,
		MeasurementType: enum.MeasurementQuantity,
	}
	m.chicken = catalog.Item{
		ID: uuid.New(), Name: "עוף בגריל", Category: enum.CategoryMains,
		MeasurementType: enum.MeasurementQuantity,
	}
	m.fruit = catalog.Item{
		ID: uuid.New(), Name: "מגש פירות", Category: enum.CategoryExtras,
		MeasurementType: enum.MeasurementQuantity,
	}
	m.cat = catalog.New(
		[]catalog.Item{m.zaaluk, m.pickles, m.chicken, m.fruit},
		[]catalog.Volume{m.volHalf},
		[]catalog.Preparation{m.prep},
		nil,
	)
	return m
}

// newTestService creates an OrderService with mocked dependencies.
// store is the mock returned both directly and by the NewOrderStore factory.
func newTestService(store *mockOrderStore, menu *testMenu) (*OrderService, *mockTx) {
	tx := &mockTx{}
	pool := &mockTxBeginner{tx: tx}
	newStore := func(db database.DBTX) OrderStore { return store }
	return NewOrderService(pool, store, newStore, &mockCatalogLoader{cat: menu.cat}), tx
}

// defaultStore returns a mockOrderStore with sensible defaults for a basic
// order. Individual tests override the functions they care about.
func defaultStore() *mockOrderStore {
	return &mockOrderStore{
		getNextOrderNumberFn: func(ctx context.Context) (int32, error) {
			return 1, nil
		},
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			return database.Order{
				ID:              uuid.New(),
				OrderNumber:     arg.OrderNumber,
				CustomerName:    arg.CustomerName,
				Phone:           arg.Phone,
				Address:         arg.Address,
				EventDate:       arg.EventDate,
				TotalPortions:   arg.TotalPortions,
				PricePerPortion: arg.PricePerPortion,
				DeliveryFee:     arg.DeliveryFee,
				Notes:           arg.Notes,
				CreatedBy:       arg.CreatedBy,
			}, nil
		},
		createOrderRowFn: func(ctx context.Context, arg database.CreateOrderRowParams) (database.OrderRow, error) {
			return database.OrderRow{ID: uuid.New(), OrderID: arg.OrderID, FoodItemID: arg.FoodItemID, Quantity: arg.Quantity}, nil
		},
		createOrderExtraFn: func(ctx context.Context, arg database.CreateOrderExtraParams) (database.OrderExtra, error) {
			return database.OrderExtra{ID: uuid.New(), OrderID: arg.OrderID, SourceFoodItemID: arg.SourceFoodItemID, Name: arg.Name, Price: arg.Price}, nil
		},
		createExtraVariationFn: func(ctx context.Context, arg database.CreateOrderExtraVariationParams) (database.OrderExtraVariation, error) {
			return database.OrderExtraVariation{ID: uuid.New(), OrderExtraID: arg.OrderExtraID, VariationID: arg.VariationID}, nil
		},
	}
}

func basicReq(menu *testMenu) SaveOrderRequest {
	qty := int32(10)
	return SaveOrderRequest{
		CustomerName:    "משפחת כהן",
		Phone:           "050-1234567",
		TotalPortions:   50,
		PricePerPortion: "85",
		DeliveryFee:     "100",
		Selection: SelectionInput{
			Items: []ItemInput{
				{ItemID: menu.chicken.ID.String(), Quantity: &qty},
			},
		},
	}
}

// =====================
// Validation tests
// =====================

func TestCreateOrder_MissingCustomerName(t *testing.T) {
	menu := newTestMenu()
	svc, _ := newTestService(defaultStore(), menu)

	req := basicReq(menu)
	req.CustomerName = ""
	_, err := svc.CreateOrder(context.Background(), req, uuid.New())
	if !errors.Is(err, ErrCustomerNameRequired) {
		t.Fatalf("expected ErrCustomerNameRequired, got: %v", err)
	}
}

func TestCreateOrder_MissingPhone(t *testing.T) {
	menu := newTestMenu()
	svc, _ := newTestService(defaultStore(), menu)

	req := basicReq(menu)
	req.Phone = ""
	_, err := svc.CreateOrder(context.Background(), req, uuid.New())
	if !errors.Is(err, ErrPhoneRequired) {
		t.Fatalf("expected ErrPhoneRequired, got: %v", err)
	}
}

func TestCreateOrder_InvalidPricePerPortion(t *testing.T) {
	menu := newTestMenu()
	svc, _ := newTestService(defaultStore(), menu)

	req := basicReq(menu)
	req.PricePerPortion = "eighty-five"
	_, err := svc.CreateOrder(context.Background(), req, uuid.New())
	if !errors.Is(err, ErrInvalidPricePerPortion) {
		t.Fatalf("expected ErrInvalidPricePerPortion, got: %v", err)
	}
}

func TestCreateOrder_InvalidEventDate(t *testing.T) {
	menu := newTestMenu()
	svc, _ := newTestService(defaultStore(), menu)

	req := basicReq(menu)
	req.EventDate = "31/12/2026"
	_, err := svc.CreateOrder(context.Background(), req, uuid.New())
	if !errors.Is(err, ErrInvalidEventDate) {
		t.Fatalf("expected ErrInvalidEventDate, got: %v", err)
	}
}

func TestCreateOrder_InvalidItemID(t *testing.T) {
	menu := newTestMenu()
	svc, _ := newTestService(defaultStore(), menu)

	qty := int32(1)
	req := basicReq(menu)
	req.Selection.Items = []ItemInput{{ItemID: "not-a-uuid", Quantity: &qty}}
	_, err := svc.CreateOrder(context.Background(), req, uuid.New())
	if !errors.Is(err, ErrInvalidItemID) {
		t.Fatalf("expected ErrInvalidItemID, got: %v", err)
	}
	if !strings.Contains(err.Error(), "items[0]") {
		t.Errorf("error should name the offending index, got: %v", err)
	}
}

// Request data goes through the same discipline checks as interactive edits.
func TestCreateOrder_WrongDisciplineRejected(t *testing.T) {
	menu := newTestMenu()
	svc, _ := newTestService(defaultStore(), menu)

	qty := int32(2)
	req := basicReq(menu)
	req.Selection.Items = []ItemInput{{ItemID: menu.zaaluk.ID.String(), Quantity: &qty}}
	_, err := svc.CreateOrder(context.Background(), req, uuid.New())
	if !errors.Is(err, selection.ErrWrongMeasure) {
		t.Fatalf("expected ErrWrongMeasure, got: %v", err)
	}
}

func TestCreateOrder_PriceOnNonExtrasItem(t *testing.T) {
	menu := newTestMenu()
	svc, _ := newTestService(defaultStore(), menu)

	qty := int32(2)
	req := basicReq(menu)
	req.Selection.Items = []ItemInput{{ItemID: menu.chicken.ID.String(), Quantity: &qty, Price: "50"}}
	_, err := svc.CreateOrder(context.Background(), req, uuid.New())
	if !errors.Is(err, selection.ErrNoPriceField) {
		t.Fatalf("expected ErrNoPriceField, got: %v", err)
	}
}

// =====================
// Create happy path
// =====================

func TestCreateOrder_HappyPath(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()

	var capturedOrder database.CreateOrderParams
	origCreate := store.createOrderFn
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		capturedOrder = arg
		return origCreate(ctx, arg)
	}
	var capturedRows []database.CreateOrderRowParams
	store.createOrderRowFn = func(ctx context.Context, arg database.CreateOrderRowParams) (database.OrderRow, error) {
		capturedRows = append(capturedRows, arg)
		return database.OrderRow{ID: uuid.New(), OrderID: arg.OrderID, FoodItemID: arg.FoodItemID, Quantity: arg.Quantity}, nil
	}
	store.getNextOrderNumberFn = func(ctx context.Context) (int32, error) { return 7, nil }

	svc, _ := newTestService(store, menu)

	req := basicReq(menu)
	req.Selection.Items[0].Note = "בלי מלח"
	req.Selection.Extras = []ExtraInput{{
		SourceItemID: menu.chicken.ID.String(),
		Quantity:     req.Selection.Items[0].Quantity,
		Price:        "75",
	}}

	createdBy := uuid.New()
	result, err := svc.CreateOrder(context.Background(), req, createdBy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedOrder.OrderNumber != 7 {
		t.Errorf("order number: got %d, want 7", capturedOrder.OrderNumber)
	}
	if capturedOrder.CustomerName != "משפחת כהן" {
		t.Errorf("customer name: got %q", capturedOrder.CustomerName)
	}
	if capturedOrder.CreatedBy != createdBy {
		t.Error("created_by not propagated")
	}
	if !numericEquals(capturedOrder.PricePerPortion, "85") {
		t.Errorf("price_per_portion: got %v, want 85", numericToDecimal(capturedOrder.PricePerPortion))
	}

	if len(capturedRows) != 1 {
		t.Fatalf("order rows: got %d, want 1", len(capturedRows))
	}
	if capturedRows[0].FoodItemID != menu.chicken.ID || capturedRows[0].Quantity != 10 {
		t.Errorf("row = %+v", capturedRows[0])
	}
	if !capturedRows[0].Note.Valid || capturedRows[0].Note.String != "בלי מלח" {
		t.Errorf("row note = %+v", capturedRows[0].Note)
	}

	// 50 × 85 + 100 + 75 = 4425
	if !result.Breakdown.Total.Equal(decimal.NewFromInt(4425)) {
		t.Errorf("breakdown total: got %s, want 4425", result.Breakdown.Total)
	}
}

// =====================
// Retry on unique constraint violation (race condition fix)
// =====================

func TestCreateOrder_RetryOnUniqueViolation(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()

	createCallCount := 0
	origCreate := store.createOrderFn
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		createCallCount++
		if createCallCount == 1 {
			// First attempt: unique constraint violation
			return database.Order{}, &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "orders_order_number_key",
			}
		}
		return origCreate(ctx, arg)
	}

	// GetNextOrderNumber should be called twice (once per attempt)
	orderNumCallCount := 0
	store.getNextOrderNumberFn = func(ctx context.Context) (int32, error) {
		orderNumCallCount++
		return int32(orderNumCallCount), nil
	}

	svc, _ := newTestService(store, menu)
	result, err := svc.CreateOrder(context.Background(), basicReq(menu), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if createCallCount != 2 {
		t.Errorf("expected 2 CreateOrder calls (1 fail + 1 success), got %d", createCallCount)
	}
	if orderNumCallCount != 2 {
		t.Errorf("expected 2 GetNextOrderNumber calls, got %d", orderNumCallCount)
	}
}

func TestCreateOrder_RetryExhausted(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()

	// Always return unique violation
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		return database.Order{}, &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "orders_order_number_key",
		}
	}

	svc, _ := newTestService(store, menu)
	_, err := svc.CreateOrder(context.Background(), basicReq(menu), uuid.New())
	if err == nil {
		t.Fatal("expected error after exhausting retries, got nil")
	}
	if !strings.Contains(err.Error(), "create order") {
		t.Errorf("expected 'create order' in error message, got: %v", err)
	}
}

func TestCreateOrder_NonUniqueErrorNotRetried(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()

	callCount := 0
	store.createOrderFn = func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
		callCount++
		return database.Order{}, errors.New("some other DB error")
	}

	svc, _ := newTestService(store, menu)
	_, err := svc.CreateOrder(context.Background(), basicReq(menu), uuid.New())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if callCount != 1 {
		t.Errorf("non-unique errors should not retry: expected 1 call, got %d", callCount)
	}
}

// =====================
// Update
// =====================

func TestUpdateOrder_ReplacesRowSet(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()
	orderID := uuid.New()

	store.updateOrderFn = func(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error) {
		return database.Order{
			ID:              arg.ID,
			OrderNumber:     3,
			CustomerName:    arg.CustomerName,
			Phone:           arg.Phone,
			TotalPortions:   arg.TotalPortions,
			PricePerPortion: arg.PricePerPortion,
			DeliveryFee:     arg.DeliveryFee,
		}, nil
	}
	rowsDeleted, extrasDeleted := false, false
	store.deleteOrderRowsFn = func(ctx context.Context, id uuid.UUID) error {
		rowsDeleted = id == orderID
		return nil
	}
	store.deleteOrderExtrasFn = func(ctx context.Context, id uuid.UUID) error {
		extrasDeleted = id == orderID
		return nil
	}
	var inserted []database.CreateOrderRowParams
	store.createOrderRowFn = func(ctx context.Context, arg database.CreateOrderRowParams) (database.OrderRow, error) {
		inserted = append(inserted, arg)
		return database.OrderRow{ID: uuid.New()}, nil
	}

	svc, _ := newTestService(store, menu)
	_, err := svc.UpdateOrder(context.Background(), orderID, basicReq(menu))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rowsDeleted || !extrasDeleted {
		t.Error("update must delete existing rows and extras before reinserting")
	}
	if len(inserted) != 1 {
		t.Errorf("reinserted rows = %d, want 1", len(inserted))
	}
}

func TestUpdateOrder_NotFound(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()
	store.updateOrderFn = func(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error) {
		return database.Order{}, pgx.ErrNoRows
	}

	svc, _ := newTestService(store, menu)
	_, err := svc.UpdateOrder(context.Background(), uuid.New(), basicReq(menu))
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got: %v", err)
	}
}

// =====================
// Get / List / Delete
// =====================

func TestGetOrder_ReconcilesRows(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()
	orderID := uuid.New()

	store.getOrderFn = func(ctx context.Context, id uuid.UUID) (database.Order, error) {
		return database.Order{
			ID:              orderID,
			OrderNumber:     12,
			CustomerName:    "משפחת לוי",
			Phone:           "052-7654321",
			TotalPortions:   50,
			PricePerPortion: makeNumeric("85.00"),
			DeliveryFee:     makeNumeric("100.00"),
		}, nil
	}
	store.listOrderRowsFn = func(ctx context.Context, id uuid.UUID) ([]database.OrderRow, error) {
		return []database.OrderRow{
			{ID: uuid.New(), OrderID: orderID, FoodItemID: menu.chicken.ID, Quantity: 10},
		}, nil
	}
	store.listOrderExtrasFn = func(ctx context.Context, id uuid.UUID) ([]database.OrderExtra, error) {
		return []database.OrderExtra{
			{
				ID:               uuid.New(),
				OrderID:          orderID,
				SourceFoodItemID: menu.chicken.ID,
				SourceCategory:   enum.CategoryMains,
				Name:             menu.chicken.Name,
				Quantity:         pgtype.Int4{Int32: 5, Valid: true},
				Price:            makeNumeric("75.00"),
			},
		}, nil
	}
	store.listExtraVariationsFn = func(ctx context.Context, id uuid.UUID) ([]database.OrderExtraVariation, error) {
		return nil, nil
	}

	svc, _ := newTestService(store, menu)
	result, err := svc.GetOrder(context.Background(), orderID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}

	e, ok := result.Session.Entry(menu.chicken.ID)
	if !ok || !e.Selected {
		t.Fatal("chicken entry not reconciled as selected")
	}
	if q := e.Measure.(*selection.QuantityMeasure).Quantity; q != 10 {
		t.Errorf("reconciled quantity = %d, want 10", q)
	}
	if !result.Breakdown.Total.Equal(decimal.NewFromInt(4425)) {
		t.Errorf("breakdown total = %s, want 4425", result.Breakdown.Total)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()
	store.getOrderFn = func(ctx context.Context, id uuid.UUID) (database.Order, error) {
		return database.Order{}, pgx.ErrNoRows
	}

	svc, _ := newTestService(store, menu)
	_, err := svc.GetOrder(context.Background(), uuid.New())
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got: %v", err)
	}
}

func TestListOrders_DefaultLimit(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()

	var captured database.ListOrdersParams
	store.listOrdersFn = func(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
		captured = arg
		return nil, nil
	}

	svc, _ := newTestService(store, menu)
	if _, err := svc.ListOrders(context.Background(), ListOrdersRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Limit != 50 {
		t.Errorf("default limit = %d, want 50", captured.Limit)
	}

	if _, err := svc.ListOrders(context.Background(), ListOrdersRequest{Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Limit != 50 {
		t.Errorf("capped limit = %d, want 50", captured.Limit)
	}
}

func TestDeleteOrder_NotFound(t *testing.T) {
	menu := newTestMenu()
	store := defaultStore()
	store.deleteOrderFn = func(ctx context.Context, id uuid.UUID) error {
		return pgx.ErrNoRows
	}

	svc, _ := newTestService(store, menu)
	if err := svc.DeleteOrder(context.Background(), uuid.New()); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got: %v", err)
	}
}
