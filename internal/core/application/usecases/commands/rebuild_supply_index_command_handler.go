package commands

import (
	"context"

	"logistics/internal/core/domain/model/supply"
	"logistics/internal/core/ports"
)

// RebuildSupplyIndexCommandHandler scans every inventory-carrying entity
// and rebuilds the supply catalog from the snapshot. Reservations reset to
// zero on rebuild, so the sweep runs between planning passes, not inside
// one.
type RebuildSupplyIndexCommandHandler struct {
	index   *supply.Index
	scanner ports.InventoryScanner
}

// NewRebuildSupplyIndexCommandHandler creates a handler over the index and
// the world's inventory scanner.
func NewRebuildSupplyIndexCommandHandler(
	index *supply.Index,
	scanner ports.InventoryScanner,
) RebuildSupplyIndexCommandHandler {
	return RebuildSupplyIndexCommandHandler{
		index:   index,
		scanner: scanner,
	}
}

// Handle rebuilds the catalog and returns how many supplier records were
// ingested.
func (h *RebuildSupplyIndexCommandHandler) Handle(_ context.Context, cmd RebuildSupplyIndexCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var records []supply.SupplierRecord
	for _, inventory := range h.scanner.Inventories() {
		for res, quantity := range inventory.Stock() {
			if quantity <= 0 {
				continue
			}
			records = append(records, supply.SupplierRecord{
				Node:     inventory.Node(),
				Resource: res,
				Quantity: quantity,
				Position: inventory.Position(),
			})
		}
	}

	h.index.Rebuild(records)
	return len(records), nil
}
