package merge

import (
	"log/slog"
	"time"

	appError "github.com/aminati-ec/catalog-studio/internal/errors"
	"github.com/aminati-ec/catalog-studio/internal/models"
)

// Merger folds a batch of freshly generated catalog entries into the
// published snapshot. Merging only ever adds or replaces entries; products
// missing from a batch stay published, so partial re-imports are safe.
type Merger struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Merger {
	return &Merger{logger: logger}
}

// Merge upserts the batch into the existing snapshot, keyed by product
// number. Existing entries keep their position, updated in place; new
// entries are appended in batch order. A nil snapshot is treated as a
// first run over an empty catalog.
func (m *Merger) Merge(existing *models.Snapshot, batch []models.CatalogEntry, now time.Time) *models.Snapshot {
	var current []models.CatalogEntry
	if existing != nil {
		current = existing.Products
	}

	position := make(map[string]int, len(current))
	merged := make([]models.CatalogEntry, len(current))
	copy(merged, current)
	for i, entry := range merged {
		position[entry.ProductNumber] = i
	}

	updated, added := 0, 0
	for _, entry := range batch {
		if i, ok := position[entry.ProductNumber]; ok {
			merged[i] = entry
			updated++
			continue
		}
		position[entry.ProductNumber] = len(merged)
		merged = append(merged, entry)
		added++
	}

	m.logger.Info("merged catalog snapshot",
		slog.Int("existing", len(current)),
		slog.Int("updated", updated),
		slog.Int("added", added),
		slog.Int("total", len(merged)))

	return &models.Snapshot{
		Generated: now.UTC(),
		Count:     len(merged),
		Products:  merged,
	}
}

// SyncPlan is the outcome of planning a full synchronization: which entries
// survive and which product numbers would be removed. Nothing is deleted
// until the caller applies the plan.
type SyncPlan struct {
	Keep   []models.CatalogEntry
	Remove []string
}

// PlanFullSync computes the entries that would be dropped because they are
// absent from the valid product list. An empty valid list is rejected: a
// caller that lost its product data must never be able to wipe the catalog.
func (m *Merger) PlanFullSync(existing *models.Snapshot, validNumbers []string) (*SyncPlan, error) {
	if len(validNumbers) == 0 {
		return nil, appError.ValidationError("full sync requires a non-empty list of valid product numbers")
	}

	valid := make(map[string]struct{}, len(validNumbers))
	for _, number := range validNumbers {
		valid[number] = struct{}{}
	}

	plan := &SyncPlan{}
	if existing == nil {
		return plan, nil
	}

	for _, entry := range existing.Products {
		if _, ok := valid[entry.ProductNumber]; ok {
			plan.Keep = append(plan.Keep, entry)
		} else {
			plan.Remove = append(plan.Remove, entry.ProductNumber)
		}
	}

	m.logger.Info("planned full sync",
		slog.Int("keep", len(plan.Keep)),
		slog.Int("remove", len(plan.Remove)))

	return plan, nil
}

// ApplySync rebuilds the snapshot from a plan's surviving entries.
func (m *Merger) ApplySync(plan *SyncPlan, now time.Time) *models.Snapshot {
	return &models.Snapshot{
		Generated: now.UTC(),
		Count:     len(plan.Keep),
		Products:  plan.Keep,
	}
}
