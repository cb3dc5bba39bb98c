package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const getNextOrderNumber = `
SELECT COALESCE(MAX(order_number), 0) + 1 FROM orders
`

// GetNextOrderNumber returns the next sequential order number. Concurrent
// transactions can race on this; callers retry on the unique violation.
func (q *Queries) GetNextOrderNumber(ctx context.Context) (int32, error) {
	var n int32
	err := q.db.QueryRow(ctx, getNextOrderNumber).Scan(&n)
	return n, err
}

const createOrder = `
INSERT INTO orders (
	order_number, customer_name, phone, address, event_date,
	total_portions, price_per_portion, delivery_fee, notes, created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, order_number, customer_name, phone, address, event_date,
	total_portions, price_per_portion, delivery_fee, notes, created_by,
	created_at, updated_at
`

type CreateOrderParams struct {
	OrderNumber     int32
	CustomerName    string
	Phone           string
	Address         pgtype.Text
	EventDate       pgtype.Timestamptz
	TotalPortions   int32
	PricePerPortion pgtype.Numeric
	DeliveryFee     pgtype.Numeric
	Notes           pgtype.Text
	CreatedBy       uuid.UUID
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.OrderNumber, arg.CustomerName, arg.Phone, arg.Address, arg.EventDate,
		arg.TotalPortions, arg.PricePerPortion, arg.DeliveryFee, arg.Notes, arg.CreatedBy,
	)
	return scanOrder(row)
}

const getOrder = `
SELECT id, order_number, customer_name, phone, address, event_date,
	total_portions, price_per_portion, delivery_fee, notes, created_by,
	created_at, updated_at
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrder, id))
}

const listOrders = `
SELECT id, order_number, customer_name, phone, address, event_date,
	total_portions, price_per_portion, delivery_fee, notes, created_by,
	created_at, updated_at
FROM orders
WHERE ($3::timestamptz IS NULL OR event_date >= $3)
  AND ($4::timestamptz IS NULL OR event_date < $4)
ORDER BY event_date DESC NULLS LAST, order_number DESC
LIMIT $1 OFFSET $2
`

type ListOrdersParams struct {
	Limit     int32
	Offset    int32
	StartDate pgtype.Timestamptz
	EndDate   pgtype.Timestamptz
}

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrders, arg.Limit, arg.Offset, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const updateOrder = `
UPDATE orders SET
	customer_name = $2, phone = $3, address = $4, event_date = $5,
	total_portions = $6, price_per_portion = $7, delivery_fee = $8,
	notes = $9, updated_at = now()
WHERE id = $1
RETURNING id, order_number, customer_name, phone, address, event_date,
	total_portions, price_per_portion, delivery_fee, notes, created_by,
	created_at, updated_at
`

type UpdateOrderParams struct {
	ID              uuid.UUID
	CustomerName    string
	Phone           string
	Address         pgtype.Text
	EventDate       pgtype.Timestamptz
	TotalPortions   int32
	PricePerPortion pgtype.Numeric
	DeliveryFee     pgtype.Numeric
	Notes           pgtype.Text
}

func (q *Queries) UpdateOrder(ctx context.Context, arg UpdateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrder,
		arg.ID, arg.CustomerName, arg.Phone, arg.Address, arg.EventDate,
		arg.TotalPortions, arg.PricePerPortion, arg.DeliveryFee, arg.Notes,
	)
	return scanOrder(row)
}

const deleteOrder = `
DELETE FROM orders WHERE id = $1
`

// DeleteOrder removes an order; rows and extras cascade in the schema.
func (q *Queries) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, deleteOrder, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const createOrderRow = `
INSERT INTO order_rows (
	order_id, food_item_id, volume_id, size_type, variation_id, add_on_id,
	quantity, preparation_id, note, price
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, order_id, food_item_id, volume_id, size_type, variation_id,
	add_on_id, quantity, preparation_id, note, price
`

type CreateOrderRowParams struct {
	OrderID       uuid.UUID
	FoodItemID    uuid.UUID
	VolumeID      pgtype.UUID
	SizeType      pgtype.Text
	VariationID   pgtype.UUID
	AddOnID       pgtype.UUID
	Quantity      int32
	PreparationID pgtype.UUID
	Note          pgtype.Text
	Price         pgtype.Numeric
}

func (q *Queries) CreateOrderRow(ctx context.Context, arg CreateOrderRowParams) (OrderRow, error) {
	row := q.db.QueryRow(ctx, createOrderRow,
		arg.OrderID, arg.FoodItemID, arg.VolumeID, arg.SizeType, arg.VariationID,
		arg.AddOnID, arg.Quantity, arg.PreparationID, arg.Note, arg.Price,
	)
	var r OrderRow
	err := row.Scan(&r.ID, &r.OrderID, &r.FoodItemID, &r.VolumeID, &r.SizeType,
		&r.VariationID, &r.AddOnID, &r.Quantity, &r.PreparationID, &r.Note, &r.Price)
	return r, err
}

const listOrderRowsByOrder = `
SELECT id, order_id, food_item_id, volume_id, size_type, variation_id,
	add_on_id, quantity, preparation_id, note, price
FROM order_rows
WHERE order_id = $1
ORDER BY id
`

func (q *Queries) ListOrderRowsByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderRow, error) {
	rows, err := q.db.Query(ctx, listOrderRowsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderRow
	for rows.Next() {
		var r OrderRow
		if err := rows.Scan(&r.ID, &r.OrderID, &r.FoodItemID, &r.VolumeID, &r.SizeType,
			&r.VariationID, &r.AddOnID, &r.Quantity, &r.PreparationID, &r.Note, &r.Price); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

const deleteOrderRowsByOrder = `
DELETE FROM order_rows WHERE order_id = $1
`

func (q *Queries) DeleteOrderRowsByOrder(ctx context.Context, orderID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteOrderRowsByOrder, orderID)
	return err
}

const createOrderExtra = `
INSERT INTO order_extras (
	order_id, source_food_item_id, source_category, name,
	quantity, size_big, size_small, price, note, preparation_name
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, order_id, source_food_item_id, source_category, name,
	quantity, size_big, size_small, price, note, preparation_name
`

type CreateOrderExtraParams struct {
	OrderID          uuid.UUID
	SourceFoodItemID uuid.UUID
	SourceCategory   string
	Name             string
	Quantity         pgtype.Int4
	SizeBig          pgtype.Int4
	SizeSmall        pgtype.Int4
	Price            pgtype.Numeric
	Note             pgtype.Text
	PreparationName  pgtype.Text
}

func (q *Queries) CreateOrderExtra(ctx context.Context, arg CreateOrderExtraParams) (OrderExtra, error) {
	row := q.db.QueryRow(ctx, createOrderExtra,
		arg.OrderID, arg.SourceFoodItemID, arg.SourceCategory, arg.Name,
		arg.Quantity, arg.SizeBig, arg.SizeSmall, arg.Price, arg.Note, arg.PreparationName,
	)
	var x OrderExtra
	err := row.Scan(&x.ID, &x.OrderID, &x.SourceFoodItemID, &x.SourceCategory, &x.Name,
		&x.Quantity, &x.SizeBig, &x.SizeSmall, &x.Price, &x.Note, &x.PreparationName)
	return x, err
}

const listOrderExtrasByOrder = `
SELECT id, order_id, source_food_item_id, source_category, name,
	quantity, size_big, size_small, price, note, preparation_name
FROM order_extras
WHERE order_id = $1
ORDER BY id
`

func (q *Queries) ListOrderExtrasByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderExtra, error) {
	rows, err := q.db.Query(ctx, listOrderExtrasByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderExtra
	for rows.Next() {
		var x OrderExtra
		if err := rows.Scan(&x.ID, &x.OrderID, &x.SourceFoodItemID, &x.SourceCategory, &x.Name,
			&x.Quantity, &x.SizeBig, &x.SizeSmall, &x.Price, &x.Note, &x.PreparationName); err != nil {
			return nil, err
		}
		result = append(result, x)
	}
	return result, rows.Err()
}

const deleteOrderExtrasByOrder = `
DELETE FROM order_extras WHERE order_id = $1
`

func (q *Queries) DeleteOrderExtrasByOrder(ctx context.Context, orderID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteOrderExtrasByOrder, orderID)
	return err
}

const createOrderExtraVariation = `
INSERT INTO order_extra_variations (
	order_extra_id, variation_id, name, size_big, size_small
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, order_extra_id, variation_id, name, size_big, size_small
`

type CreateOrderExtraVariationParams struct {
	OrderExtraID uuid.UUID
	VariationID  uuid.UUID
	Name         string
	SizeBig      int32
	SizeSmall    int32
}

func (q *Queries) CreateOrderExtraVariation(ctx context.Context, arg CreateOrderExtraVariationParams) (OrderExtraVariation, error) {
	row := q.db.QueryRow(ctx, createOrderExtraVariation,
		arg.OrderExtraID, arg.VariationID, arg.Name, arg.SizeBig, arg.SizeSmall,
	)
	var v OrderExtraVariation
	err := row.Scan(&v.ID, &v.OrderExtraID, &v.VariationID, &v.Name, &v.SizeBig, &v.SizeSmall)
	return v, err
}

const listOrderExtraVariationsByOrder = `
SELECT v.id, v.order_extra_id, v.variation_id, v.name, v.size_big, v.size_small
FROM order_extra_variations v
JOIN order_extras x ON x.id = v.order_extra_id
WHERE x.order_id = $1
ORDER BY v.id
`

func (q *Queries) ListOrderExtraVariationsByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderExtraVariation, error) {
	rows, err := q.db.Query(ctx, listOrderExtraVariationsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderExtraVariation
	for rows.Next() {
		var v OrderExtraVariation
		if err := rows.Scan(&v.ID, &v.OrderExtraID, &v.VariationID, &v.Name, &v.SizeBig, &v.SizeSmall); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Phone, &o.Address,
		&o.EventDate, &o.TotalPortions, &o.PricePerPortion, &o.DeliveryFee,
		&o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
