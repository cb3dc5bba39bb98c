package selection

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverlayVariation is a variation line of an overlay entry.
type OverlayVariation struct {
	VariationID uuid.UUID
	Name        string
	Big         int32
	Small       int32
}

// OverlayEntry is an independently priced quantity of a catalog item
// attached to the order outside its normal category selection. The quantity
// fields are pointers: absence, not a zero value, signals "not applicable
// for this item's discipline".
type OverlayEntry struct {
	ID              uuid.UUID
	SourceItemID    uuid.UUID
	SourceCategory  string
	Name            string
	Quantity        *int32
	SizeBig         *int32
	SizeSmall       *int32
	Variations      []OverlayVariation
	Price           decimal.Decimal
	Note            string
	PreparationName string
}

// AddExtraParams is the payload of an "add as extra" action.
type AddExtraParams struct {
	SourceItemID    uuid.UUID
	SourceCategory  string
	Name            string
	Quantity        *int32
	SizeBig         *int32
	SizeSmall       *int32
	Variations      []OverlayVariation
	Price           decimal.Decimal
	Note            string
	PreparationName string
}

// Overlay is the extras store of a session. Entries are keyed by source
// item: re-adding the same item accumulates into the existing entry instead
// of inserting a duplicate.
type Overlay struct {
	entries []*OverlayEntry
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Entries returns the overlay entries in insertion order.
func (o *Overlay) Entries() []*OverlayEntry {
	return o.entries
}

// Add merges the payload into the existing entry for the source item, or
// inserts a new entry when none exists. Merging sums quantity, both size
// counts, matching variation counts, and the price.
func (o *Overlay) Add(p AddExtraParams) *OverlayEntry {
	for _, e := range o.entries {
		if e.SourceItemID == p.SourceItemID {
			mergeCount(&e.Quantity, p.Quantity)
			mergeCount(&e.SizeBig, p.SizeBig)
			mergeCount(&e.SizeSmall, p.SizeSmall)
			for _, v := range p.Variations {
				e.addVariation(v)
			}
			e.Price = e.Price.Add(p.Price)
			if p.Note != "" {
				e.Note = p.Note
			}
			if p.PreparationName != "" {
				e.PreparationName = p.PreparationName
			}
			return e
		}
	}
	e := &OverlayEntry{
		ID:              uuid.New(),
		SourceItemID:    p.SourceItemID,
		SourceCategory:  p.SourceCategory,
		Name:            p.Name,
		Quantity:        cloneCount(p.Quantity),
		SizeBig:         cloneCount(p.SizeBig),
		SizeSmall:       cloneCount(p.SizeSmall),
		Variations:      append([]OverlayVariation(nil), p.Variations...),
		Price:           p.Price,
		Note:            p.Note,
		PreparationName: p.PreparationName,
	}
	o.entries = append(o.entries, e)
	return e
}

// Restore inserts a persisted entry as-is, without merging. Used by the
// reconciler: persisted orders may legitimately hold several entries per
// source item created under older flows, and reconciliation must not
// collapse them.
func (o *Overlay) Restore(e OverlayEntry) *OverlayEntry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	stored := e
	o.entries = append(o.entries, &stored)
	return &stored
}

// Remove deletes an entry by id.
func (o *Overlay) Remove(id uuid.UUID) bool {
	for i, e := range o.entries {
		if e.ID == id {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveBySource deletes every entry keyed to the source item and returns
// how many were removed. Cancel on a source-category item cascades here.
func (o *Overlay) RemoveBySource(sourceItemID uuid.UUID) int {
	removed := 0
	kept := o.entries[:0]
	for _, e := range o.entries {
		if e.SourceItemID == sourceItemID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	o.entries = kept
	return removed
}

// SetPrice overwrites an entry's price. Unlike Add this replaces: an
// explicit price edit is not an accumulation.
func (o *Overlay) SetPrice(id uuid.UUID, price decimal.Decimal) bool {
	for _, e := range o.entries {
		if e.ID == id {
			e.Price = price
			return true
		}
	}
	return false
}

// TotalPrice sums the prices of all overlay entries.
func (o *Overlay) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, e := range o.entries {
		total = total.Add(e.Price)
	}
	return total
}

// Summarize combines every entry against the source item into one view. A
// single entry is returned verbatim; multiple entries sum their quantity,
// size counts and price, with the first entry's variation lines kept as
// representative.
func (o *Overlay) Summarize(sourceItemID uuid.UUID) (OverlayEntry, bool) {
	var matches []*OverlayEntry
	for _, e := range o.entries {
		if e.SourceItemID == sourceItemID {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return OverlayEntry{}, false
	}
	if len(matches) == 1 {
		return *matches[0], true
	}
	sum := *matches[0]
	sum.Quantity = cloneCount(matches[0].Quantity)
	sum.SizeBig = cloneCount(matches[0].SizeBig)
	sum.SizeSmall = cloneCount(matches[0].SizeSmall)
	for _, e := range matches[1:] {
		mergeCount(&sum.Quantity, e.Quantity)
		mergeCount(&sum.SizeBig, e.SizeBig)
		mergeCount(&sum.SizeSmall, e.SizeSmall)
		sum.Price = sum.Price.Add(e.Price)
	}
	return sum, true
}

func (e *OverlayEntry) addVariation(v OverlayVariation) {
	for i := range e.Variations {
		if e.Variations[i].VariationID == v.VariationID {
			e.Variations[i].Big += v.Big
			e.Variations[i].Small += v.Small
			return
		}
	}
	e.Variations = append(e.Variations, v)
}

// mergeCount sums src into dst, materializing dst when only src is present.
// Both absent stays absent.
func mergeCount(dst **int32, src *int32) {
	if src == nil {
		return
	}
	if *dst == nil {
		v := *src
		*dst = &v
		return
	}
	**dst += *src
}

func cloneCount(v *int32) *int32 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
