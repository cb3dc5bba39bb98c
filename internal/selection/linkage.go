package selection

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const noteSeparator = " | "

// LinkagePayload is the partial selection of a companion add-on being folded
// into a different, already-chosen catalog item. Exactly one of Quantity and
// Volumes is expected to carry data, matching the source add-on's own
// measurement.
type LinkagePayload struct {
	SourceItemID uuid.UUID
	SourceName   string
	Quantity     int32
	Volumes      []VolumeQuantity
}

// MergeToLinked folds an add-on's partial selection into the linked item:
// volume quantities sum onto matching volume ids (inserting rows for volume
// ids the linked item did not carry yet), a plain quantity sums onto a
// quantity measure, and a human-readable note fragment is appended so the
// kitchen sheet shows where the extra amount came from. The linked item is
// always left selected.
//
// Pairings configured as implicit in the catalog skip the note: for those
// the combination is standard practice and annotating it would only clutter
// the sheet.
func (s *Session) MergeToLinked(linkedItemID uuid.UUID, p LinkagePayload) error {
	e, err := s.entry(linkedItemID)
	if err != nil {
		return err
	}

	switch m := e.Measure.(type) {
	case *LitersMeasure:
		for _, v := range p.Volumes {
			if v.Quantity == 0 {
				continue
			}
			m.AddVolume(v.VolumeID, v.Label, v.Quantity)
		}
		if p.Quantity > 0 {
			// A plain-quantity source merging into a liters item has no
			// volume to land on; the amount survives in the note only.
			break
		}
	case *QuantityMeasure:
		m.Quantity += p.Quantity
	default:
		return ErrWrongMeasure
	}

	if !s.cat.IsImplicitPair(p.SourceItemID, linkedItemID) {
		fragment := linkageNote(p)
		if fragment != "" {
			if e.Note != "" {
				e.Note += noteSeparator + fragment
			} else {
				e.Note = fragment
			}
		}
	}

	e.Selected = true
	return nil
}

// linkageNote renders the merge annotation, e.g.
// "תוספת מ-זעלוק: ×2 חצי ליטר, ×1 1 ליטר" or "תוספת מ-חמוצים: ×3".
func linkageNote(p LinkagePayload) string {
	var parts []string
	for _, v := range p.Volumes {
		if v.Quantity > 0 {
			parts = append(parts, fmt.Sprintf("×%d %s", v.Quantity, v.Label))
		}
	}
	if len(parts) == 0 && p.Quantity > 0 {
		parts = append(parts, fmt.Sprintf("×%d", p.Quantity))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("תוספת מ-%s: %s", p.SourceName, strings.Join(parts, ", "))
}
