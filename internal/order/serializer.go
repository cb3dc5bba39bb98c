package order

import (
	"github.com/google/uuid"

	"github.com/RomanVol/hagada-catering/internal/enum"
	"github.com/RomanVol/hagada-catering/internal/selection"
)

// Serialize flattens a session into persisted rows plus extra rows. Only
// selected entries emit rows, and only quantities above zero emit at all.
// The stored note and preparation reference attach to the first row emitted
// for an item; every later row of the same item carries them as null, so a
// multi-row item persists its note exactly once.
func Serialize(s *selection.Session) ([]Row, []ExtraRow) {
	var rows []Row
	w := rowWriter{}

	for _, category := range enum.Categories {
		for _, e := range s.Store(category).Entries() {
			if !e.Selected {
				continue
			}
			rows = append(rows, w.entryRows(e)...)
		}
	}

	extras := make([]ExtraRow, 0, len(s.Overlay.Entries()))
	for _, oe := range s.Overlay.Entries() {
		extras = append(extras, extraRow(oe))
	}
	return rows, extras
}

// rowWriter tracks which items already emitted their first row.
type rowWriter struct {
	noteAttached map[uuid.UUID]bool
}

func (w *rowWriter) entryRows(e *selection.Entry) []Row {
	var rows []Row

	switch m := e.Measure.(type) {
	case *selection.LitersMeasure:
		for _, v := range m.Volumes {
			if v.Quantity <= 0 {
				continue
			}
			id := v.VolumeID
			rows = append(rows, w.row(e, Row{VolumeID: &id, Quantity: v.Quantity}))
		}
	case *selection.SizeMeasure:
		if m.Big > 0 {
			rows = append(rows, w.sizeRow(e, enum.SizeBig, m.Big))
		}
		if m.Small > 0 {
			rows = append(rows, w.sizeRow(e, enum.SizeSmall, m.Small))
		}
	case *selection.VariationsMeasure:
		for _, v := range m.Variations {
			if v.Big > 0 {
				rows = append(rows, w.variationRow(e, v.VariationID, enum.SizeBig, v.Big))
			}
			if v.Small > 0 {
				rows = append(rows, w.variationRow(e, v.VariationID, enum.SizeSmall, v.Small))
			}
		}
	case *selection.QuantityMeasure:
		if m.Quantity > 0 {
			rows = append(rows, w.row(e, Row{Quantity: m.Quantity}))
		}
	}

	// Add-ons serialize as extra rows of the parent item: the parent's id
	// with the add-on discriminator set. An add-on never gets its own
	// top-level row.
	for _, a := range e.AddOns {
		if a.Quantity > 0 {
			addOnID := a.AddOnID
			rows = append(rows, w.row(e, Row{AddOnID: &addOnID, Quantity: a.Quantity}))
		}
		for _, v := range a.Volumes {
			if v.Quantity <= 0 {
				continue
			}
			addOnID := a.AddOnID
			volumeID := v.VolumeID
			rows = append(rows, w.row(e, Row{AddOnID: &addOnID, VolumeID: &volumeID, Quantity: v.Quantity}))
		}
	}

	return rows
}

func (w *rowWriter) sizeRow(e *selection.Entry, sizeType string, qty int32) Row {
	st := sizeType
	return w.row(e, Row{SizeType: &st, Quantity: qty})
}

func (w *rowWriter) variationRow(e *selection.Entry, variationID uuid.UUID, sizeType string, qty int32) Row {
	id := variationID
	st := sizeType
	return w.row(e, Row{VariationID: &id, SizeType: &st, Quantity: qty})
}

// row fills the per-item fields, attaching note/preparation only to the
// first row emitted for the item.
func (w *rowWriter) row(e *selection.Entry, r Row) Row {
	r.FoodItemID = e.ItemID
	if w.noteAttached == nil {
		w.noteAttached = make(map[uuid.UUID]bool)
	}
	if !w.noteAttached[e.ItemID] {
		w.noteAttached[e.ItemID] = true
		if e.Note != "" {
			note := e.Note
			r.Note = &note
		}
		if e.PreparationID != nil {
			id := *e.PreparationID
			r.PreparationID = &id
		}
		if e.Price != nil {
			p := *e.Price
			r.Price = &p
		}
	}
	return r
}

func extraRow(oe *selection.OverlayEntry) ExtraRow {
	r := ExtraRow{
		ID:               oe.ID,
		SourceFoodItemID: oe.SourceItemID,
		SourceCategory:   oe.SourceCategory,
		Name:             oe.Name,
		Quantity:         cloneInt32(oe.Quantity),
		SizeBig:          cloneInt32(oe.SizeBig),
		SizeSmall:        cloneInt32(oe.SizeSmall),
		Price:            oe.Price,
	}
	for _, v := range oe.Variations {
		r.Variations = append(r.Variations, ExtraRowVariation{
			VariationID: v.VariationID,
			Name:        v.Name,
			Big:         v.Big,
			Small:       v.Small,
		})
	}
	if oe.Note != "" {
		note := oe.Note
		r.Note = &note
	}
	if oe.PreparationName != "" {
		name := oe.PreparationName
		r.PreparationName = &name
	}
	return r
}

func cloneInt32(v *int32) *int32 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
