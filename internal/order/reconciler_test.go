package order

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RomanVol/hagada-catering/internal/enum"
	"github.com/RomanVol/hagada-catering/internal/selection"
)

// Serialize → Reconcile must restore the exact session state, across every
// measurement discipline at once.
func TestRoundTrip(t *testing.T) {
	m := newMenu()
	s := selection.NewSession(m.cat)

	if err := s.SetVolume(m.zaaluk.ID, m.volHalf.ID, 2); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	if err := s.SetAddOnVolume(m.zaaluk.ID, m.zaalukAddOn.ID, m.volLiter.ID, 1); err != nil {
		t.Fatalf("SetAddOnVolume: %v", err)
	}
	if err := s.SetNote(m.zaaluk.ID, "חריף"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	if err := s.SetQuantity(m.pickles.ID, 3); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.SetVariation(m.rice.ID, m.riceWhite.ID, enum.SizeBig, 2); err != nil {
		t.Fatalf("SetVariation: %v", err)
	}
	if err := s.SetVariation(m.rice.ID, m.riceYellow.ID, enum.SizeSmall, 1); err != nil {
		t.Fatalf("SetVariation: %v", err)
	}
	if err := s.SetSize(m.pie.ID, enum.SizeBig, 1); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	if err := s.SetSize(m.pie.ID, enum.SizeSmall, 2); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	if err := s.SetPreparation(m.pie.ID, m.prepBaked.ID, m.prepBaked.Name); err != nil {
		t.Fatalf("SetPreparation: %v", err)
	}
	if err := s.SetQuantity(m.fruit.ID, 1); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.SetPrice(m.fruit.ID, decimal.NewFromInt(120)); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	qty := int32(5)
	s.Overlay.Add(selection.AddExtraParams{
		SourceItemID:   m.chicken.ID,
		SourceCategory: m.chicken.Category,
		Name:           m.chicken.Name,
		Quantity:       &qty,
		Price:          decimal.NewFromInt(75),
	})

	rows, extras := Serialize(s)
	got, warnings := Reconcile(m.cat, rows, extras)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}

	ze, _ := got.Entry(m.zaaluk.ID)
	if !ze.Selected {
		t.Error("zaaluk not selected")
	}
	zm := ze.Measure.(*selection.LitersMeasure)
	if zm.Volumes[0].Quantity != 2 || zm.Volumes[1].Quantity != 0 {
		t.Errorf("zaaluk volumes = %d/%d, want 2/0", zm.Volumes[0].Quantity, zm.Volumes[1].Quantity)
	}
	if ze.Note != "חריף" {
		t.Errorf("zaaluk note = %q", ze.Note)
	}
	if len(ze.AddOns[0].Volumes) != 1 || ze.AddOns[0].Volumes[0].Quantity != 1 {
		t.Errorf("zaaluk add-on volumes = %+v", ze.AddOns[0].Volumes)
	}

	pe, _ := got.Entry(m.pickles.ID)
	if q := pe.Measure.(*selection.QuantityMeasure).Quantity; q != 3 {
		t.Errorf("pickles quantity = %d, want 3", q)
	}

	re, _ := got.Entry(m.rice.ID)
	rm := re.Measure.(*selection.VariationsMeasure)
	if rm.Variations[0].Big != 2 || rm.Variations[1].Small != 1 {
		t.Errorf("rice variations = %+v", rm.Variations)
	}

	ie, _ := got.Entry(m.pie.ID)
	im := ie.Measure.(*selection.SizeMeasure)
	if im.Big != 1 || im.Small != 2 {
		t.Errorf("pie sizes = %d/%d, want 1/2", im.Big, im.Small)
	}
	if ie.PreparationID == nil || *ie.PreparationID != m.prepBaked.ID || ie.PreparationName != "אפוי" {
		t.Errorf("pie preparation = %v %q", ie.PreparationID, ie.PreparationName)
	}

	fe, _ := got.Entry(m.fruit.ID)
	if fe.Price == nil || !fe.Price.Equal(decimal.NewFromInt(120)) {
		t.Errorf("fruit price = %v, want 120", fe.Price)
	}

	oe := got.Overlay.Entries()
	if len(oe) != 1 {
		t.Fatalf("overlay entries = %d, want 1", len(oe))
	}
	if *oe[0].Quantity != 5 || !oe[0].Price.Equal(decimal.NewFromInt(75)) {
		t.Errorf("overlay entry = %+v", oe[0])
	}
}

// End to end through the liters discipline: fill, persist, reload, and check
// the note lands back on the owning item only.
func TestLitersEndToEnd(t *testing.T) {
	m := newMenu()
	s := selection.NewSession(m.cat)

	if err := s.SetVolume(m.zaaluk.ID, m.volHalf.ID, 3); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	if err := s.SetVolume(m.zaaluk.ID, m.volLiter.ID, 1); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	if err := s.SetNote(m.zaaluk.ID, "בלי שום"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}

	rows, extras := Serialize(s)
	got, warnings := Reconcile(m.cat, rows, extras)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}

	e, _ := got.Entry(m.zaaluk.ID)
	lm := e.Measure.(*selection.LitersMeasure)
	if lm.Volumes[0].Quantity != 3 || lm.Volumes[1].Quantity != 1 {
		t.Errorf("volumes = %d/%d, want 3/1", lm.Volumes[0].Quantity, lm.Volumes[1].Quantity)
	}
	// Two rows were stored; the note must come back once, not doubled.
	if e.Note != "בלי שום" {
		t.Errorf("note = %q, want בלי שום", e.Note)
	}
}

func TestReconcileUnknownItemDropsRowWithWarning(t *testing.T) {
	m := newMenu()
	ghost := uuid.New()

	rows := []Row{
		{FoodItemID: ghost, Quantity: 2},
		{FoodItemID: m.pickles.ID, Quantity: 1},
	}
	got, warnings := Reconcile(m.cat, rows, nil)

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", warnings)
	}
	if warnings[0].FoodItemID != ghost || !strings.Contains(warnings[0].Reason, "not in catalog") {
		t.Errorf("warning = %+v", warnings[0])
	}
	e, _ := got.Entry(m.pickles.ID)
	if !e.Selected {
		t.Error("healthy row dropped alongside the bad one")
	}
}

func TestReconcileSizeRowWithoutLabelFallsBackToBig(t *testing.T) {
	m := newMenu()

	rows := []Row{{FoodItemID: m.pie.ID, Quantity: 3}}
	got, warnings := Reconcile(m.cat, rows, nil)

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", warnings)
	}
	if !strings.Contains(warnings[0].Reason, "routed to Big") {
		t.Errorf("warning = %q", warnings[0].Reason)
	}
	e, _ := got.Entry(m.pie.ID)
	sm := e.Measure.(*selection.SizeMeasure)
	if sm.Big != 3 || sm.Small != 0 {
		t.Errorf("sizes = %d/%d, want 3/0", sm.Big, sm.Small)
	}
	if !e.Selected {
		t.Error("entry not selected; fallback rows still count")
	}
}

func TestReconcileZeroSumRowsDeselect(t *testing.T) {
	m := newMenu()

	rows := []Row{{FoodItemID: m.pickles.ID, Quantity: 0}}
	got, warnings := Reconcile(m.cat, rows, nil)

	if len(warnings) != 1 || !strings.Contains(warnings[0].Reason, "no positive quantity") {
		t.Fatalf("warnings = %v", warnings)
	}
	e, _ := got.Entry(m.pickles.ID)
	if e.Selected {
		t.Error("entry selected with no quantity anywhere")
	}
}

func TestReconcileMismatchedDisciplineDropsRow(t *testing.T) {
	m := newMenu()
	vol := m.volHalf.ID

	// A volume row pointed at a quantity item cannot land anywhere.
	rows := []Row{{FoodItemID: m.pickles.ID, VolumeID: &vol, Quantity: 2}}
	got, warnings := Reconcile(m.cat, rows, nil)

	if len(warnings) != 1 || !strings.Contains(warnings[0].Reason, "non-liters") {
		t.Fatalf("warnings = %v", warnings)
	}
	e, _ := got.Entry(m.pickles.ID)
	if e.Selected {
		t.Error("entry selected from a dropped row")
	}
}

// Persisted orders may hold several extra rows for the same source item;
// reconciliation restores them verbatim instead of collapsing them.
func TestReconcileExtrasRestoredWithoutMerging(t *testing.T) {
	m := newMenu()
	q1, q2 := int32(2), int32(1)

	extras := []ExtraRow{
		{ID: uuid.New(), SourceFoodItemID: m.chicken.ID, SourceCategory: enum.CategoryMains, Name: m.chicken.Name, Quantity: &q1, Price: decimal.NewFromInt(40)},
		{ID: uuid.New(), SourceFoodItemID: m.chicken.ID, SourceCategory: enum.CategoryMains, Name: m.chicken.Name, Quantity: &q2, Price: decimal.NewFromInt(20)},
	}
	got, warnings := Reconcile(m.cat, nil, extras)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if n := len(got.Overlay.Entries()); n != 2 {
		t.Fatalf("overlay entries = %d, want 2", n)
	}
	if !got.Overlay.TotalPrice().Equal(decimal.NewFromInt(60)) {
		t.Errorf("overlay total = %s, want 60", got.Overlay.TotalPrice())
	}
}
