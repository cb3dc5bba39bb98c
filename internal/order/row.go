// Package order is the flat-row codec of the engine: it flattens a selection
// session into the row shape the persistence boundary accepts, rebuilds a
// session from persisted rows, and derives the payable total.
package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row is the flat persisted shape of one quantity line. At most one of the
// optional discriminators (VolumeID, SizeType, VariationID, AddOnID) is set;
// which one decides the nested slot the quantity belongs to. Note is set on
// at most one row per logical item within a save.
type Row struct {
	FoodItemID    uuid.UUID
	VolumeID      *uuid.UUID
	SizeType      *string // enum.SizeBig / enum.SizeSmall
	VariationID   *uuid.UUID
	AddOnID       *uuid.UUID
	Quantity      int32
	PreparationID *uuid.UUID
	Note          *string
	Price         *decimal.Decimal
}

// ExtraRowVariation is a variation sub-row of a persisted extra.
type ExtraRowVariation struct {
	VariationID uuid.UUID
	Name        string
	Big         int32
	Small       int32
}

// ExtraRow is the persisted shape of one extras-overlay entry. Unlike Row it
// already carries an explicit shape, so reconciliation maps it directly
// without discriminator inference.
type ExtraRow struct {
	ID               uuid.UUID
	SourceFoodItemID uuid.UUID
	SourceCategory   string
	Name             string
	Quantity         *int32
	SizeBig          *int32
	SizeSmall        *int32
	Variations       []ExtraRowVariation
	Price            decimal.Decimal
	Note             *string
	PreparationName  *string
}
