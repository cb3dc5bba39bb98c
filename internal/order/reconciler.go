package order

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/RomanVol/hagada-catering/internal/catalog"
	"github.com/RomanVol/hagada-catering/internal/enum"
	"github.com/RomanVol/hagada-catering/internal/selection"
)

// Warning records a persisted row the reconciler could not fully apply. The
// row is dropped or adjusted and reconciliation continues; one bad row never
// prevents the rest of the order from loading.
type Warning struct {
	FoodItemID uuid.UUID
	Reason     string
}

func (w Warning) String() string {
	return fmt.Sprintf("item %s: %s", w.FoodItemID, w.Reason)
}

// rowRoute is the explicit classification of a flat row, derived once from
// its discriminator columns before any quantity is applied.
type rowRoute int

const (
	routeAddOnQuantity rowRoute = iota
	routeAddOnVolume
	routeVariation
	routeVolume
	routeSize
	routeQuantity
	routeSizeFallback // size-discipline row with no size label; defaults to Big
)

// classify resolves which nested slot a row's quantity belongs to, in
// discriminator priority order: add-on, variation, volume, size, plain.
func classify(r Row, discipline string) rowRoute {
	switch {
	case r.AddOnID != nil && r.VolumeID != nil:
		return routeAddOnVolume
	case r.AddOnID != nil:
		return routeAddOnQuantity
	case r.VariationID != nil:
		return routeVariation
	case r.VolumeID != nil:
		return routeVolume
	case r.SizeType != nil:
		return routeSize
	case discipline == catalog.DisciplineSize && r.Quantity > 0:
		// Historical rows exist with the size label missing on a sized
		// item. The value still has to land somewhere visible; it goes to
		// Big, and the caller is told.
		return routeSizeFallback
	default:
		return routeQuantity
	}
}

// Reconcile rebuilds a selection session from persisted rows: the inverse of
// Serialize. Each row's quantity is routed into the slot its discriminators
// name, the entry is marked selected on first touch, and notes/preparations
// reattach to the owning item. Extra rows map directly into the overlay.
func Reconcile(cat *catalog.Catalog, rows []Row, extras []ExtraRow) (*selection.Session, []Warning) {
	s := selection.NewSession(cat)
	var warnings []Warning

	touched := make(map[uuid.UUID]bool)
	for _, r := range rows {
		it, ok := cat.Item(r.FoodItemID)
		if !ok {
			warnings = append(warnings, Warning{FoodItemID: r.FoodItemID, Reason: "food item not in catalog, row dropped"})
			continue
		}
		e, ok := s.Entry(r.FoodItemID)
		if !ok {
			warnings = append(warnings, Warning{FoodItemID: r.FoodItemID, Reason: "no selection entry for category, row dropped"})
			continue
		}
		w, dropped := applyRow(cat, it, e, r)
		if w != nil {
			warnings = append(warnings, *w)
		}
		if dropped {
			continue
		}
		touched[r.FoodItemID] = true
		e.Selected = true
		applyRowAnnotations(cat, e, r)
	}

	// Consistency check: a touched entry whose rows summed to nothing keeps
	// the derived flag, not the touch.
	for id := range touched {
		if e, ok := s.Entry(id); ok && !e.HasQuantity() {
			warnings = append(warnings, Warning{FoodItemID: id, Reason: "rows carried no positive quantity, entry deselected"})
			e.Selected = false
		}
	}

	for _, x := range extras {
		s.Overlay.Restore(overlayEntry(x))
	}

	return s, warnings
}

// applyRow routes one row's quantity into the entry. A non-nil warning with
// dropped=true means the row could not be applied; dropped=false means the
// row was applied but deserves attention (the size fallback).
func applyRow(cat *catalog.Catalog, it catalog.Item, e *selection.Entry, r Row) (*Warning, bool) {
	drop := func(reason string) (*Warning, bool) {
		return &Warning{FoodItemID: r.FoodItemID, Reason: reason}, true
	}

	switch classify(r, it.Discipline()) {
	case routeAddOnVolume:
		a := findAddOn(e, *r.AddOnID)
		if a == nil {
			return drop("add-on not defined for item, row dropped")
		}
		label, _ := cat.VolumeLabel(*r.VolumeID)
		addAddOnVolume(a, *r.VolumeID, label, r.Quantity)

	case routeAddOnQuantity:
		a := findAddOn(e, *r.AddOnID)
		if a == nil {
			return drop("add-on not defined for item, row dropped")
		}
		a.Quantity += r.Quantity

	case routeVariation:
		m, ok := e.Measure.(*selection.VariationsMeasure)
		if !ok {
			return drop("variation row on item without variations, row dropped")
		}
		v := findVariation(m, *r.VariationID)
		if v == nil {
			return drop("variation not defined for item, row dropped")
		}
		if r.SizeType != nil && *r.SizeType == enum.SizeSmall {
			v.Small += r.Quantity
		} else {
			v.Big += r.Quantity
		}

	case routeVolume:
		m, ok := e.Measure.(*selection.LitersMeasure)
		if !ok {
			return drop("volume row on non-liters item, row dropped")
		}
		label, _ := cat.VolumeLabel(*r.VolumeID)
		m.AddVolume(*r.VolumeID, label, r.Quantity)

	case routeSize:
		m, ok := e.Measure.(*selection.SizeMeasure)
		if !ok {
			return drop("size row on non-size item, row dropped")
		}
		if *r.SizeType == enum.SizeSmall {
			m.Small += r.Quantity
		} else {
			m.Big += r.Quantity
		}

	case routeSizeFallback:
		m, ok := e.Measure.(*selection.SizeMeasure)
		if !ok {
			return drop("size row on non-size item, row dropped")
		}
		m.Big += r.Quantity
		// Deliberate decision, surfaced rather than silently absorbed.
		return &Warning{FoodItemID: r.FoodItemID, Reason: "size row without size label, quantity routed to Big"}, false

	case routeQuantity:
		m, ok := e.Measure.(*selection.QuantityMeasure)
		if !ok {
			return drop("plain quantity row on measured item, row dropped")
		}
		m.Quantity += r.Quantity
	}
	return nil, false
}

// applyRowAnnotations reattaches note, preparation and price onto the item.
// The serializer emits them on one row per item; stray duplicates from old
// data append rather than overwrite so nothing is lost.
func applyRowAnnotations(cat *catalog.Catalog, e *selection.Entry, r Row) {
	if r.Note != nil && *r.Note != "" {
		if e.Note != "" {
			e.Note += " | " + *r.Note
		} else {
			e.Note = *r.Note
		}
	}
	if r.PreparationID != nil {
		id := *r.PreparationID
		e.PreparationID = &id
		if p, ok := cat.Preparation(id); ok {
			e.PreparationName = p.Name
		}
	}
	if r.Price != nil && e.Category == enum.CategoryExtras {
		p := *r.Price
		e.Price = &p
	}
}

func overlayEntry(x ExtraRow) selection.OverlayEntry {
	oe := selection.OverlayEntry{
		ID:             x.ID,
		SourceItemID:   x.SourceFoodItemID,
		SourceCategory: x.SourceCategory,
		Name:           x.Name,
		Quantity:       cloneInt32(x.Quantity),
		SizeBig:        cloneInt32(x.SizeBig),
		SizeSmall:      cloneInt32(x.SizeSmall),
		Price:          x.Price,
	}
	for _, v := range x.Variations {
		oe.Variations = append(oe.Variations, selection.OverlayVariation{
			VariationID: v.VariationID,
			Name:        v.Name,
			Big:         v.Big,
			Small:       v.Small,
		})
	}
	if x.Note != nil {
		oe.Note = *x.Note
	}
	if x.PreparationName != nil {
		oe.PreparationName = *x.PreparationName
	}
	return oe
}

func findAddOn(e *selection.Entry, addOnID uuid.UUID) *selection.AddOnSelection {
	for i := range e.AddOns {
		if e.AddOns[i].AddOnID == addOnID {
			return &e.AddOns[i]
		}
	}
	return nil
}

func findVariation(m *selection.VariationsMeasure, variationID uuid.UUID) *selection.VariationQuantity {
	for i := range m.Variations {
		if m.Variations[i].VariationID == variationID {
			return &m.Variations[i]
		}
	}
	return nil
}

func addAddOnVolume(a *selection.AddOnSelection, volumeID uuid.UUID, label string, qty int32) {
	for i := range a.Volumes {
		if a.Volumes[i].VolumeID == volumeID {
			a.Volumes[i].Quantity += qty
			return
		}
	}
	a.Volumes = append(a.Volumes, selection.VolumeQuantity{VolumeID: volumeID, Label: label, Quantity: qty})
}
