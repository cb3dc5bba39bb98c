package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const listFoodItems = `
SELECT id, name, category, measurement_type, portion_multiplier, portion_unit,
	sort_order, is_active
FROM food_items
WHERE is_active = true
ORDER BY category, sort_order, name
`

func (q *Queries) ListFoodItems(ctx context.Context) ([]FoodItem, error) {
	rows, err := q.db.Query(ctx, listFoodItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (FoodItem, error) {
		var f FoodItem
		err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.MeasurementType,
			&f.PortionMultiplier, &f.PortionUnit, &f.SortOrder, &f.IsActive)
		return f, err
	})
}

const listVolumes = `
SELECT id, food_item_id, label, sort_order, is_active
FROM volumes
ORDER BY sort_order, label
`

// ListVolumes returns global and custom volumes together; inactive rows are
// included so persisted orders referencing them still resolve labels.
func (q *Queries) ListVolumes(ctx context.Context) ([]Volume, error) {
	rows, err := q.db.Query(ctx, listVolumes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (Volume, error) {
		var v Volume
		err := rows.Scan(&v.ID, &v.FoodItemID, &v.Label, &v.SortOrder, &v.IsActive)
		return v, err
	})
}

const listVariations = `
SELECT id, food_item_id, name, sort_order, is_active
FROM variations
WHERE is_active = true
ORDER BY food_item_id, sort_order, name
`

func (q *Queries) ListVariations(ctx context.Context) ([]Variation, error) {
	rows, err := q.db.Query(ctx, listVariations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (Variation, error) {
		var v Variation
		err := rows.Scan(&v.ID, &v.FoodItemID, &v.Name, &v.SortOrder, &v.IsActive)
		return v, err
	})
}

const listAddOns = `
SELECT id, food_item_id, name, sort_order, is_active
FROM add_ons
WHERE is_active = true
ORDER BY food_item_id, sort_order, name
`

func (q *Queries) ListAddOns(ctx context.Context) ([]AddOn, error) {
	rows, err := q.db.Query(ctx, listAddOns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (AddOn, error) {
		var a AddOn
		err := rows.Scan(&a.ID, &a.FoodItemID, &a.Name, &a.SortOrder, &a.IsActive)
		return a, err
	})
}

const listImplicitPairs = `
SELECT id, source_item_id, linked_item_id
FROM implicit_pairs
`

func (q *Queries) ListImplicitPairs(ctx context.Context) ([]ImplicitPair, error) {
	rows, err := q.db.Query(ctx, listImplicitPairs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (ImplicitPair, error) {
		var p ImplicitPair
		err := rows.Scan(&p.ID, &p.SourceItemID, &p.LinkedItemID)
		return p, err
	})
}

const listPreparations = `
SELECT id, name, is_active
FROM preparations
ORDER BY name
`

func (q *Queries) ListPreparations(ctx context.Context) ([]Preparation, error) {
	rows, err := q.db.Query(ctx, listPreparations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (Preparation, error) {
		var p Preparation
		err := rows.Scan(&p.ID, &p.Name, &p.IsActive)
		return p, err
	})
}

func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	var result []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
