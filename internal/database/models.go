package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// FoodItem is one catalog item row.
type FoodItem struct {
	ID                uuid.UUID
	Name              string
	Category          string
	MeasurementType   string
	PortionMultiplier pgtype.Int4
	PortionUnit       pgtype.Text
	SortOrder         int32
	IsActive          bool
}

// Volume is a volume label row. Global volumes have a null food_item_id;
// custom volumes belong to one item.
type Volume struct {
	ID         uuid.UUID
	FoodItemID pgtype.UUID
	Label      string
	SortOrder  int32
	IsActive   bool
}

// Variation is an item-defined sub-type row.
type Variation struct {
	ID         uuid.UUID
	FoodItemID uuid.UUID
	Name       string
	SortOrder  int32
	IsActive   bool
}

// AddOn is a companion add-on row (salad items only).
type AddOn struct {
	ID         uuid.UUID
	FoodItemID uuid.UUID
	Name       string
	SortOrder  int32
	IsActive   bool
}

// ImplicitPair marks a source→linked pairing whose merge note is suppressed.
type ImplicitPair struct {
	ID           uuid.UUID
	SourceItemID uuid.UUID
	LinkedItemID uuid.UUID
}

// Preparation is a named preparation style.
type Preparation struct {
	ID       uuid.UUID
	Name     string
	IsActive bool
}

// User is an operator account.
type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	HashedPassword string
	Role           string
	IsActive       bool
	CreatedAt      time.Time
}

// Order holds the customer and pricing scalars of one catering order. The
// payable total is derived, never stored.
type Order struct {
	ID              uuid.UUID
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
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderRow is one flat persisted quantity line. At most one discriminator
// among volume_id / size_type / variation_id / add_on_id is non-null.
type OrderRow struct {
	ID            uuid.UUID
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

// OrderExtra is one persisted extras-overlay entry.
type OrderExtra struct {
	ID               uuid.UUID
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

// OrderExtraVariation is a variation sub-row of a persisted extra.
type OrderExtraVariation struct {
	ID           uuid.UUID
	OrderExtraID uuid.UUID
	VariationID  uuid.UUID
	Name         string
	SizeBig      int32
	SizeSmall    int32
}
