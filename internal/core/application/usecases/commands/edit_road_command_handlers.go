package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/roadnet"
	"logistics/internal/pkg/errs"
)

// EditRoadCommandHandler applies road placement and removal to the live
// network, translating the boolean grid results into the domain error
// taxonomy. Topology events fired by the network keep the pathfinder's
// spatial index in sync before the handler returns.
type EditRoadCommandHandler struct {
	network *roadnet.Network
}

// NewEditRoadCommandHandler creates a handler over the given road network.
func NewEditRoadCommandHandler(network *roadnet.Network) EditRoadCommandHandler {
	return EditRoadCommandHandler{network: network}
}

// HandleAdd marks the command's cell as road.
func (h *EditRoadCommandHandler) HandleAdd(_ context.Context, cmd AddRoadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cell := cmd.Cell()
	if !h.network.InBounds(cell) {
		return errs.NewDomainError(
			errs.CodeRoadOutOfBounds,
			fmt.Sprintf("%s is outside the %dx%d grid", cell, h.network.Width(), h.network.Height()),
		)
	}
	if !h.network.AddRoad(cell) {
		return errs.NewDomainError(
			errs.CodeRoadAlreadyExists,
			fmt.Sprintf("%s already carries a road", cell),
		)
	}
	return nil
}

// HandleRemove clears the road from the command's cell.
func (h *EditRoadCommandHandler) HandleRemove(_ context.Context, cmd RemoveRoadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cell := cmd.Cell()
	if !h.network.InBounds(cell) {
		return errs.NewDomainError(
			errs.CodeRoadOutOfBounds,
			fmt.Sprintf("%s is outside the %dx%d grid", cell, h.network.Width(), h.network.Height()),
		)
	}
	if !h.network.RemoveRoad(cell) {
		return errs.NewDomainError(
			errs.CodeRoadNotFound,
			fmt.Sprintf("%s carries no road", cell),
		)
	}
	return nil
}
