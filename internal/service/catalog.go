package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/RomanVol/hagada-catering/internal/catalog"
	"github.com/RomanVol/hagada-catering/internal/database"
)

// CatalogStore defines the DB methods needed to load the catalog snapshot.
// Satisfied by *database.Queries.
type CatalogStore interface {
	ListFoodItems(ctx context.Context) ([]database.FoodItem, error)
	ListVolumes(ctx context.Context) ([]database.Volume, error)
	ListVariations(ctx context.Context) ([]database.Variation, error)
	ListAddOns(ctx context.Context) ([]database.AddOn, error)
	ListImplicitPairs(ctx context.Context) ([]database.ImplicitPair, error)
	ListPreparations(ctx context.Context) ([]database.Preparation, error)
}

// CatalogService assembles the reference-data snapshot sessions are built on.
type CatalogService struct {
	store CatalogStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Load reads the full catalog and assembles the immutable snapshot: items with
// their variations, add-ons and custom volumes attached, the global volume
// list, preparation styles, and the implicit pairings.
func (s *CatalogService) Load(ctx context.Context) (*catalog.Catalog, error) {
	foodItems, err := s.store.ListFoodItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}
	volumes, err := s.store.ListVolumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}
	variations, err := s.store.ListVariations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	addOns, err := s.store.ListAddOns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list add-ons: %w", err)
	}
	pairs, err := s.store.ListImplicitPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list implicit pairs: %w", err)
	}
	preparations, err := s.store.ListPreparations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list preparations: %w", err)
	}

	variationsByItem := make(map[uuid.UUID][]catalog.Variation)
	for _, v := range variations {
		variationsByItem[v.FoodItemID] = append(variationsByItem[v.FoodItemID], catalog.Variation{
			ID:   v.ID,
			Name: v.Name,
		})
	}
	addOnsByItem := make(map[uuid.UUID][]catalog.AddOn)
	for _, a := range addOns {
		addOnsByItem[a.FoodItemID] = append(addOnsByItem[a.FoodItemID], catalog.AddOn{
			ID:   a.ID,
			Name: a.Name,
		})
	}

	var globalVolumes []catalog.Volume
	customVolumesByItem := make(map[uuid.UUID][]catalog.Volume)
	for _, v := range volumes {
		cv := catalog.Volume{ID: v.ID, Label: v.Label, Active: v.IsActive}
		if v.FoodItemID.Valid {
			itemID := uuid.UUID(v.FoodItemID.Bytes)
			customVolumesByItem[itemID] = append(customVolumesByItem[itemID], cv)
		} else {
			globalVolumes = append(globalVolumes, cv)
		}
	}

	items := make([]catalog.Item, 0, len(foodItems))
	for _, f := range foodItems {
		it := catalog.Item{
			ID:              f.ID,
			Name:            f.Name,
			Category:        f.Category,
			MeasurementType: f.MeasurementType,
			Variations:      variationsByItem[f.ID],
			AddOns:          addOnsByItem[f.ID],
			CustomVolumes:   customVolumesByItem[f.ID],
		}
		if f.PortionMultiplier.Valid {
			it.PortionMultiplier = f.PortionMultiplier.Int32
		}
		if f.PortionUnit.Valid {
			it.PortionUnit = f.PortionUnit.String
		}
		items = append(items, it)
	}

	catPairs := make([]catalog.ImplicitPair, 0, len(pairs))
	for _, p := range pairs {
		catPairs = append(catPairs, catalog.ImplicitPair{
			SourceItemID: p.SourceItemID,
			LinkedItemID: p.LinkedItemID,
		})
	}

	catPreps := make([]catalog.Preparation, 0, len(preparations))
	for _, p := range preparations {
		if !p.IsActive {
			continue
		}
		catPreps = append(catPreps, catalog.Preparation{ID: p.ID, Name: p.Name})
	}

	return catalog.New(items, globalVolumes, catPreps, catPairs), nil
}
