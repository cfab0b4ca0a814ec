package http

import "time"

// RegisterEntityRequest registers an inventory-carrying entity in the
// world. Stock quantities are keyed by resource identifier; legacy aliases
// are accepted and canonicalized.
type RegisterEntityRequest struct {
	Node  int64              `json:"node" validate:"required"`
	X     float64            `json:"x"`
	Y     float64            `json:"y"`
	Stock map[string]float64 `json:"stock,omitempty"`
}

// RoadRequest places or removes a road on one grid cell.
type RoadRequest struct {
	X int `json:"x" validate:"gte=0"`
	Y int `json:"y" validate:"gte=0"`
}

// CreateMarketOrderRequest lists a buy order on the market board.
type CreateMarketOrderRequest struct {
	Resource  string     `json:"resource" validate:"required"`
	Product   string     `json:"product"`
	Amount    int        `json:"amount" validate:"gt=0"`
	Price     float64    `json:"price" validate:"gte=0"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CreateMarketOrderResponse returns the identifier assigned to a new listing.
type CreateMarketOrderResponse struct {
	ID string `json:"id"`
}

// PlanDeliveryRequest asks the planner to move an amount of a resource to a
// destination node. OrderID, when set, links the created jobs to a market
// order so completions draw down its remaining quantity.
type PlanDeliveryRequest struct {
	Resource    string  `json:"resource" validate:"required"`
	Amount      int     `json:"amount" validate:"gt=0"`
	Destination int64   `json:"destination" validate:"required"`
	MaxPerTrip  int     `json:"max_per_trip" validate:"gt=0"`
	OrderID     *string `json:"order_id,omitempty"`
}

// PlanDeliveryResponse reports the jobs created by one planning call and the
// quantity no supplier could cover.
type PlanDeliveryResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Unmet int           `json:"unmet"`
}

// StartJobRequest reports that a carrier picked up a planned job.
type StartJobRequest struct {
	Carrier int64 `json:"carrier" validate:"required"`
}

// CompleteJobRequest reports a delivery with the amount actually handed over.
type CompleteJobRequest struct {
	Delivered int `json:"delivered" validate:"gte=0"`
}

// JobResponse is the wire shape of one transport job.
type JobResponse struct {
	ID          string          `json:"id"`
	Resource    string          `json:"resource"`
	Amount      int             `json:"amount"`
	Source      int64           `json:"source"`
	Destination int64           `json:"destination"`
	Status      string          `json:"status"`
	Cost        float64         `json:"cost"`
	OrderID     *string         `json:"order_id,omitempty"`
	Path        []PointResponse `json:"path,omitempty"`
}

// PointResponse is one waypoint of a routed path in world coordinates.
type PointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OrderResponse is the wire shape of one market order listing.
type OrderResponse struct {
	ID        string     `json:"id"`
	Resource  string     `json:"resource"`
	Product   string     `json:"product,omitempty"`
	Total     int        `json:"total"`
	Remaining int        `json:"remaining"`
	Price     float64    `json:"price"`
	Accepted  bool       `json:"accepted"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CountResponse reports how many items an operation affected.
type CountResponse struct {
	Count int `json:"count"`
}

// Error is the uniform failure envelope. Code carries the machine-readable
// domain code when the failure came from the core.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
