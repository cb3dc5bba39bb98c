package selection

import "github.com/google/uuid"

// Measure is the quantity payload of a selection entry. Exactly one concrete
// variant exists per entry, chosen from the item's measurement discipline at
// session construction, so a mixed or invalid combination of quantity fields
// cannot be represented.
type Measure interface {
	isMeasure()
	// Empty reports whether every quantity in the measure is zero.
	Empty() bool
	// Reset zeroes every quantity in place.
	Reset()
}

// VolumeQuantity is one volume row of a liters measure.
type VolumeQuantity struct {
	VolumeID uuid.UUID
	Label    string
	Quantity int32
}

// VariationQuantity is one variation row of a variations measure. Each
// variation carries its own Big/Small counts.
type VariationQuantity struct {
	VariationID uuid.UUID
	Name        string
	Big         int32
	Small       int32
}

// QuantityMeasure is a plain discrete quantity.
type QuantityMeasure struct {
	Quantity int32
}

func (m *QuantityMeasure) isMeasure()  {}
func (m *QuantityMeasure) Empty() bool { return m.Quantity == 0 }
func (m *QuantityMeasure) Reset()      { m.Quantity = 0 }

// LitersMeasure holds one quantity per volume label, in label order.
type LitersMeasure struct {
	Volumes []VolumeQuantity
}

func (m *LitersMeasure) isMeasure() {}

func (m *LitersMeasure) Empty() bool {
	for _, v := range m.Volumes {
		if v.Quantity != 0 {
			return false
		}
	}
	return true
}

func (m *LitersMeasure) Reset() {
	for i := range m.Volumes {
		m.Volumes[i].Quantity = 0
	}
}

// volume returns the volume row by id, if present.
func (m *LitersMeasure) volume(volumeID uuid.UUID) *VolumeQuantity {
	for i := range m.Volumes {
		if m.Volumes[i].VolumeID == volumeID {
			return &m.Volumes[i]
		}
	}
	return nil
}

// AddVolume sums qty into the matching volume row, appending a new row when
// the volume id is not yet present. This is how item-specific custom volumes
// enter an item that was initialized with the shared labels only.
func (m *LitersMeasure) AddVolume(volumeID uuid.UUID, label string, qty int32) {
	if v := m.volume(volumeID); v != nil {
		v.Quantity += qty
		return
	}
	m.Volumes = append(m.Volumes, VolumeQuantity{VolumeID: volumeID, Label: label, Quantity: qty})
}

// SizeMeasure is the dual Big/Small scheme for solid-measure items.
type SizeMeasure struct {
	Big   int32
	Small int32
}

func (m *SizeMeasure) isMeasure()  {}
func (m *SizeMeasure) Empty() bool { return m.Big == 0 && m.Small == 0 }
func (m *SizeMeasure) Reset()      { m.Big, m.Small = 0, 0 }

// VariationsMeasure holds per-variation Big/Small counts, in catalog order.
type VariationsMeasure struct {
	Variations []VariationQuantity
}

func (m *VariationsMeasure) isMeasure() {}

func (m *VariationsMeasure) Empty() bool {
	for _, v := range m.Variations {
		if v.Big != 0 || v.Small != 0 {
			return false
		}
	}
	return true
}

func (m *VariationsMeasure) Reset() {
	for i := range m.Variations {
		m.Variations[i].Big = 0
		m.Variations[i].Small = 0
	}
}

// variation returns the variation row by id, if present.
func (m *VariationsMeasure) variation(variationID uuid.UUID) *VariationQuantity {
	for i := range m.Variations {
		if m.Variations[i].VariationID == variationID {
			return &m.Variations[i]
		}
	}
	return nil
}
