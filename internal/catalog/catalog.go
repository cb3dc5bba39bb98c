// Package catalog holds the read-only reference data an order editing
// session is built from: food item descriptors, volume labels, and the
// implicit add-on pairings.
package catalog

import (
	"github.com/google/uuid"

	"github.com/RomanVol/hagada-catering/internal/enum"
)

// Normalized measurement disciplines. Persisted catalog rows declare one of
// the enum.Measurement* values, but an item that defines variations always
// measures through them regardless of its declared type.
const (
	DisciplineQuantity   = "QUANTITY"
	DisciplineLiters     = "LITERS"
	DisciplineSize       = "SIZE"
	DisciplineVariations = "VARIATIONS"
)

// Volume is a named liquid-measure option, e.g. "1 ליטר" or "חצי ליטר".
// Global volumes apply to every liters item; custom volumes belong to a
// single item.
type Volume struct {
	ID     uuid.UUID
	Label  string
	Active bool
}

// Variation is an item-defined sub-type (e.g. rice color). Each variation
// carries its own Big/Small quantities on an order.
type Variation struct {
	ID   uuid.UUID
	Name string
}

// AddOn is a companion item sold only alongside its parent (salads only).
type AddOn struct {
	ID   uuid.UUID
	Name string
}

// Preparation is a named preparation style an item can be ordered in.
type Preparation struct {
	ID   uuid.UUID
	Name string
}

// Item is a catalog food item descriptor.
type Item struct {
	ID              uuid.UUID
	Name            string
	Category        string // enum.Category*
	MeasurementType string // enum.Measurement*
	Variations      []Variation
	AddOns          []AddOn
	CustomVolumes   []Volume

	// PortionMultiplier/PortionUnit derive display totals, e.g. a multiplier
	// of 3 with unit "יח'" renders quantity 5 as "15 יח'". Zero multiplier
	// means no derived total.
	PortionMultiplier int32
	PortionUnit       string
}

// Discipline returns the item's normalized measurement discipline.
func (it Item) Discipline() string {
	if len(it.Variations) > 0 {
		return DisciplineVariations
	}
	switch it.MeasurementType {
	case enum.MeasurementLiters:
		return DisciplineLiters
	case enum.MeasurementSize:
		return DisciplineSize
	default:
		// QUANTITY and the legacy NONE both mean plain quantity.
		return DisciplineQuantity
	}
}

// ImplicitPair marks a source→linked item pairing whose merge note is
// suppressed (the kitchen treats the pairing as self-evident).
type ImplicitPair struct {
	SourceItemID uuid.UUID
	LinkedItemID uuid.UUID
}

// Catalog is an immutable snapshot of the reference data.
type Catalog struct {
	items         map[uuid.UUID]Item
	byCategory    map[string][]Item
	globalVolumes []Volume
	preparations  map[uuid.UUID]Preparation
	prepOrder     []Preparation
	implicitPairs map[[2]uuid.UUID]bool
}

// New builds a Catalog from descriptors. Item order within a category is
// preserved from the input slice (menu order).
func New(items []Item, globalVolumes []Volume, preparations []Preparation, pairs []ImplicitPair) *Catalog {
	c := &Catalog{
		items:         make(map[uuid.UUID]Item, len(items)),
		byCategory:    make(map[string][]Item),
		globalVolumes: globalVolumes,
		preparations:  make(map[uuid.UUID]Preparation, len(preparations)),
		implicitPairs: make(map[[2]uuid.UUID]bool, len(pairs)),
	}
	for _, it := range items {
		c.items[it.ID] = it
		c.byCategory[it.Category] = append(c.byCategory[it.Category], it)
	}
	for _, p := range preparations {
		c.preparations[p.ID] = p
	}
	c.prepOrder = preparations
	for _, p := range pairs {
		c.implicitPairs[[2]uuid.UUID{p.SourceItemID, p.LinkedItemID}] = true
	}
	return c
}

// Preparations returns the preparation styles in input order.
func (c *Catalog) Preparations() []Preparation {
	return c.prepOrder
}

// Preparation looks up a preparation style by id.
func (c *Catalog) Preparation(id uuid.UUID) (Preparation, bool) {
	p, ok := c.preparations[id]
	return p, ok
}

// Item looks up a descriptor by id.
func (c *Catalog) Item(id uuid.UUID) (Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// CategoryOf resolves the category an item belongs to.
func (c *Catalog) CategoryOf(id uuid.UUID) (string, bool) {
	it, ok := c.items[id]
	if !ok {
		return "", false
	}
	return it.Category, true
}

// ItemsByCategory returns the items of a category in menu order.
func (c *Catalog) ItemsByCategory(category string) []Item {
	return c.byCategory[category]
}

// GlobalVolumes returns the globally defined volume labels.
func (c *Catalog) GlobalVolumes() []Volume {
	return c.globalVolumes
}

// VolumesFor returns the active volumes applicable to an item: the global
// volumes followed by the item's own custom volumes.
func (c *Catalog) VolumesFor(it Item) []Volume {
	var vols []Volume
	for _, v := range c.globalVolumes {
		if v.Active {
			vols = append(vols, v)
		}
	}
	for _, v := range it.CustomVolumes {
		if v.Active {
			vols = append(vols, v)
		}
	}
	return vols
}

// VolumeLabel resolves a volume label by id, searching global volumes and
// every item's custom volumes.
func (c *Catalog) VolumeLabel(id uuid.UUID) (string, bool) {
	for _, v := range c.globalVolumes {
		if v.ID == id {
			return v.Label, true
		}
	}
	for _, it := range c.items {
		for _, v := range it.CustomVolumes {
			if v.ID == id {
				return v.Label, true
			}
		}
	}
	return "", false
}

// IsImplicitPair reports whether a source→linked merge should suppress its
// synthesized note.
func (c *Catalog) IsImplicitPair(sourceItemID, linkedItemID uuid.UUID) bool {
	return c.implicitPairs[[2]uuid.UUID{sourceItemID, linkedItemID}]
}
