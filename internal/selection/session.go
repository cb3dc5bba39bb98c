// Package selection implements the in-memory order editing model: one typed
// selection store per catalog category, an extras overlay for independently
// priced attachments, and the add-on linkage merge. A Session is created when
// an order editor opens and discarded on save or cancel; it never outlives
// the edit and is never shared between edits.
package selection

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RomanVol/hagada-catering/internal/catalog"
	"github.com/RomanVol/hagada-catering/internal/enum"
)

// Errors returned by selection handlers.
var (
	ErrItemNotFound      = errors.New("food item not in session")
	ErrWrongMeasure      = errors.New("operation does not match item measurement discipline")
	ErrVolumeNotFound    = errors.New("volume not defined for item")
	ErrVariationNotFound = errors.New("variation not defined for item")
	ErrAddOnNotFound     = errors.New("add-on not defined for item")
	ErrInvalidSize       = errors.New("invalid size label")
	ErrNegativeQuantity  = errors.New("quantity must be >= 0")
	ErrNoPriceField      = errors.New("item does not carry its own price")
)

// AddOnSelection tracks the quantities chosen for a companion add-on of a
// salad item. An add-on measures either by plain quantity or by volumes,
// mirroring the parent category's options.
type AddOnSelection struct {
	AddOnID  uuid.UUID
	Name     string
	Quantity int32
	Volumes  []VolumeQuantity
}

func (a *AddOnSelection) empty() bool {
	if a.Quantity != 0 {
		return false
	}
	for _, v := range a.Volumes {
		if v.Quantity != 0 {
			return false
		}
	}
	return true
}

// Entry is the selection state of one catalog item within a session.
type Entry struct {
	ItemID   uuid.UUID
	Name     string
	Category string
	Selected bool
	Measure  Measure
	AddOns   []AddOnSelection

	PreparationID   *uuid.UUID
	PreparationName string
	Note            string

	// Price is set only for extras-category items, which carry their own
	// price instead of being covered by the per-portion rate.
	Price *decimal.Decimal
}

// HasQuantity reports whether any quantity field of the entry is non-zero,
// add-ons included. Selected is derived from this for quantity-bearing
// categories.
func (e *Entry) HasQuantity() bool {
	if !e.Measure.Empty() {
		return true
	}
	for i := range e.AddOns {
		if !e.AddOns[i].empty() {
			return true
		}
	}
	return false
}

// addOn returns the add-on selection by id, if present.
func (e *Entry) addOn(addOnID uuid.UUID) *AddOnSelection {
	for i := range e.AddOns {
		if e.AddOns[i].AddOnID == addOnID {
			return &e.AddOns[i]
		}
	}
	return nil
}

// refreshSelected re-derives the selected flag after a quantity change.
// Toggle-only selection (an open editor with no quantities yet) is preserved:
// the flag is only forced on, never forced off unless the entry just lost its
// last quantity.
func (e *Entry) refreshSelected(hadQuantity bool) {
	if e.HasQuantity() {
		e.Selected = true
	} else if hadQuantity {
		e.Selected = false
	}
}

// Store holds the entries of one catalog category in menu order.
type Store struct {
	Category string
	entries  []*Entry
	byItem   map[uuid.UUID]*Entry
}

// Entries returns the store's entries in menu order.
func (s *Store) Entries() []*Entry {
	return s.entries
}

// Entry looks up an entry by item id.
func (s *Store) Entry(itemID uuid.UUID) (*Entry, bool) {
	e, ok := s.byItem[itemID]
	return e, ok
}

// Session is one order edit in progress: six category stores plus the extras
// overlay, all initialized unselected from the catalog snapshot.
type Session struct {
	cat     *catalog.Catalog
	stores  map[string]*Store
	Overlay *Overlay
}

// NewSession builds a fresh Session from a catalog snapshot. Every catalog
// item gets a zeroed entry with the measure variant its discipline dictates.
func NewSession(cat *catalog.Catalog) *Session {
	s := &Session{
		cat:     cat,
		stores:  make(map[string]*Store, len(enum.Categories)),
		Overlay: NewOverlay(),
	}
	for _, category := range enum.Categories {
		st := &Store{Category: category, byItem: make(map[uuid.UUID]*Entry)}
		for _, it := range cat.ItemsByCategory(category) {
			e := newEntry(cat, it)
			st.entries = append(st.entries, e)
			st.byItem[it.ID] = e
		}
		s.stores[category] = st
	}
	return s
}

func newEntry(cat *catalog.Catalog, it catalog.Item) *Entry {
	e := &Entry{
		ItemID:   it.ID,
		Name:     it.Name,
		Category: it.Category,
		Measure:  newMeasure(cat, it),
	}
	for _, a := range it.AddOns {
		e.AddOns = append(e.AddOns, AddOnSelection{AddOnID: a.ID, Name: a.Name})
	}
	return e
}

func newMeasure(cat *catalog.Catalog, it catalog.Item) Measure {
	switch it.Discipline() {
	case catalog.DisciplineLiters:
		m := &LitersMeasure{}
		for _, v := range cat.VolumesFor(it) {
			m.Volumes = append(m.Volumes, VolumeQuantity{VolumeID: v.ID, Label: v.Label})
		}
		return m
	case catalog.DisciplineSize:
		return &SizeMeasure{}
	case catalog.DisciplineVariations:
		m := &VariationsMeasure{}
		for _, v := range it.Variations {
			m.Variations = append(m.Variations, VariationQuantity{VariationID: v.ID, Name: v.Name})
		}
		return m
	default:
		return &QuantityMeasure{}
	}
}

// Catalog returns the catalog snapshot the session was built from.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Store returns the selection store of a category.
func (s *Session) Store(category string) *Store {
	return s.stores[category]
}

// Entry looks up an entry by item id across all category stores.
func (s *Session) Entry(itemID uuid.UUID) (*Entry, bool) {
	category, ok := s.cat.CategoryOf(itemID)
	if !ok {
		return nil, false
	}
	st, ok := s.stores[category]
	if !ok {
		return nil, false
	}
	return st.Entry(itemID)
}

func (s *Session) entry(itemID uuid.UUID) (*Entry, error) {
	e, ok := s.Entry(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	return e, nil
}

// SetQuantity sets the plain quantity of a quantity-discipline item.
func (s *Session) SetQuantity(itemID uuid.UUID, qty int32) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	m, ok := e.Measure.(*QuantityMeasure)
	if !ok {
		return ErrWrongMeasure
	}
	had := e.HasQuantity()
	m.Quantity = qty
	e.refreshSelected(had)
	return nil
}

// SetVolume sets the quantity of one volume label on a liters item.
func (s *Session) SetVolume(itemID, volumeID uuid.UUID, qty int32) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	m, ok := e.Measure.(*LitersMeasure)
	if !ok {
		return ErrWrongMeasure
	}
	v := m.volume(volumeID)
	if v == nil {
		return ErrVolumeNotFound
	}
	had := e.HasQuantity()
	v.Quantity = qty
	e.refreshSelected(had)
	return nil
}

// SetSize sets the Big or Small count of a size-discipline item.
func (s *Session) SetSize(itemID uuid.UUID, sizeType string, qty int32) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	m, ok := e.Measure.(*SizeMeasure)
	if !ok {
		return ErrWrongMeasure
	}
	had := e.HasQuantity()
	switch sizeType {
	case enum.SizeBig:
		m.Big = qty
	case enum.SizeSmall:
		m.Small = qty
	default:
		return ErrInvalidSize
	}
	e.refreshSelected(had)
	return nil
}

// SetVariation sets the Big or Small count of one variation of an item.
func (s *Session) SetVariation(itemID, variationID uuid.UUID, sizeType string, qty int32) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	m, ok := e.Measure.(*VariationsMeasure)
	if !ok {
		return ErrWrongMeasure
	}
	v := m.variation(variationID)
	if v == nil {
		return ErrVariationNotFound
	}
	had := e.HasQuantity()
	switch sizeType {
	case enum.SizeBig:
		v.Big = qty
	case enum.SizeSmall:
		v.Small = qty
	default:
		return ErrInvalidSize
	}
	e.refreshSelected(had)
	return nil
}

// SetAddOnQuantity sets the plain quantity of a companion add-on.
func (s *Session) SetAddOnQuantity(itemID, addOnID uuid.UUID, qty int32) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	a := e.addOn(addOnID)
	if a == nil {
		return ErrAddOnNotFound
	}
	had := e.HasQuantity()
	a.Quantity = qty
	e.refreshSelected(had)
	return nil
}

// SetAddOnVolume sets one volume quantity of a companion add-on. Add-on
// volume rows are created lazily from the item's applicable volumes.
func (s *Session) SetAddOnVolume(itemID, addOnID, volumeID uuid.UUID, qty int32) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	a := e.addOn(addOnID)
	if a == nil {
		return ErrAddOnNotFound
	}
	label, ok := s.cat.VolumeLabel(volumeID)
	if !ok {
		return ErrVolumeNotFound
	}
	had := e.HasQuantity()
	for i := range a.Volumes {
		if a.Volumes[i].VolumeID == volumeID {
			a.Volumes[i].Quantity = qty
			e.refreshSelected(had)
			return nil
		}
	}
	a.Volumes = append(a.Volumes, VolumeQuantity{VolumeID: volumeID, Label: label, Quantity: qty})
	e.refreshSelected(had)
	return nil
}

// Toggle sets the selected flag directly. Only meaningful for plain toggle
// categories where selection gates whether the item's editor is open;
// quantity-bearing entries keep deriving the flag from their quantities.
func (s *Session) Toggle(itemID uuid.UUID, selected bool) error {
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	if !selected && e.HasQuantity() {
		// Deselecting a quantity-bearing entry goes through Cancel.
		return nil
	}
	e.Selected = selected
	return nil
}

// SetPreparation attaches a preparation reference to an item.
func (s *Session) SetPreparation(itemID uuid.UUID, prepID uuid.UUID, name string) error {
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	id := prepID
	e.PreparationID = &id
	e.PreparationName = name
	return nil
}

// SetNote attaches a free-text note to an item.
func (s *Session) SetNote(itemID uuid.UUID, note string) error {
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	e.Note = note
	return nil
}

// SetPrice sets the item's own price. Only extras-category items carry one.
func (s *Session) SetPrice(itemID uuid.UUID, price decimal.Decimal) error {
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	if e.Category != enum.CategoryExtras {
		return ErrNoPriceField
	}
	p := price
	e.Price = &p
	return nil
}

// Cancel resets an entry completely: every quantity to zero, preparation,
// note, price and the selected flag cleared. For items in an extras source
// category the cancel cascades into the overlay, removing any extra entries
// keyed to the item.
func (s *Session) Cancel(itemID uuid.UUID) error {
	e, err := s.entry(itemID)
	if err != nil {
		return err
	}
	e.Measure.Reset()
	for i := range e.AddOns {
		e.AddOns[i].Quantity = 0
		e.AddOns[i].Volumes = nil
	}
	e.PreparationID = nil
	e.PreparationName = ""
	e.Note = ""
	e.Price = nil
	e.Selected = false
	if enum.IsExtraSourceCategory(e.Category) {
		s.Overlay.RemoveBySource(itemID)
	}
	return nil
}
