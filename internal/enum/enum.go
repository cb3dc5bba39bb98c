package enum

// ── Catalog categories (CHECK constrained in DB) ──

const (
	CategorySalads        = "SALADS"
	CategoryMiddleCourses = "MIDDLE_COURSES"
	CategorySides         = "SIDES"
	CategoryMains         = "MAINS"
	CategoryExtras        = "EXTRAS"
	CategoryBakery        = "BAKERY"
)

// Categories lists every catalog category in menu order.
var Categories = []string{
	CategorySalads,
	CategoryMiddleCourses,
	CategorySides,
	CategoryMains,
	CategoryExtras,
	CategoryBakery,
}

// ── Measurement disciplines (CHECK constrained in DB) ──
//
// NONE is a legacy alias for plain quantity; catalog rows that predate the
// QUANTITY value still carry it. Items with variations ignore this field
// entirely (see catalog.Item.Discipline).

const (
	MeasurementQuantity = "QUANTITY"
	MeasurementLiters   = "LITERS"
	MeasurementSize     = "SIZE"
	MeasurementNone     = "NONE"
)

// ── Size labels (ג/ק on the printed order sheet) ──

const (
	SizeBig   = "BIG"
	SizeSmall = "SMALL"
)

// ── User roles ──

const (
	UserRoleAdmin    = "ADMIN"
	UserRoleOperator = "OPERATOR"
)

// IsExtraSourceCategory reports whether items of the category may be
// attached to an order as independently priced extras.
func IsExtraSourceCategory(category string) bool {
	switch category {
	case CategoryMains, CategorySides, CategoryMiddleCourses:
		return true
	}
	return false
}

// IsValidCategory reports whether s is a known catalog category.
func IsValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// IsValidSize reports whether s is a known size label.
func IsValidSize(s string) bool {
	return s == SizeBig || s == SizeSmall
}
