package http

import (
	"net/http"
	"sync"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"
	"logistics/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server exposes the logistics core over HTTP. It coordinates between the
// echo handlers and the application use cases; every handler takes the world
// mutex because the core structures have no internal locking.
type Server struct {
	// Command handlers
	editRoadHandler    commands.EditRoadCommandHandler
	createOrderHandler commands.CreateMarketOrderCommandHandler
	acceptOrderHandler commands.AcceptOrderCommandHandler
	planHandler        commands.PlanDeliveryCommandHandler
	reportJobHandler   commands.ReportJobCommandHandler
	cancelJobsHandler  commands.CancelNodeJobsCommandHandler
	rebuildHandler     commands.RebuildSupplyIndexCommandHandler
	saveStateHandler   commands.SaveStateCommandHandler

	// Query handlers
	getActiveJobsHandler queries.GetActiveJobsQueryHandler
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler

	// Carrier dispatch reads the job queue directly.
	jobs *transport.JobManager

	// Entity registration writes to the world registry directly.
	world ports.InventoryRegistry

	worldMu *sync.Mutex
}

// NewServer creates the HTTP server over the given use case handlers. The
// mutex is the composition root's world lock shared with the cron jobs.
func NewServer(
	editRoadHandler commands.EditRoadCommandHandler,
	createOrderHandler commands.CreateMarketOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	planHandler commands.PlanDeliveryCommandHandler,
	reportJobHandler commands.ReportJobCommandHandler,
	cancelJobsHandler commands.CancelNodeJobsCommandHandler,
	rebuildHandler commands.RebuildSupplyIndexCommandHandler,
	saveStateHandler commands.SaveStateCommandHandler,
	getActiveJobsHandler queries.GetActiveJobsQueryHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	jobs *transport.JobManager,
	world ports.InventoryRegistry,
	worldMu *sync.Mutex,
) *Server {
	return &Server{
		editRoadHandler:      editRoadHandler,
		createOrderHandler:   createOrderHandler,
		acceptOrderHandler:   acceptOrderHandler,
		planHandler:          planHandler,
		reportJobHandler:     reportJobHandler,
		cancelJobsHandler:    cancelJobsHandler,
		rebuildHandler:       rebuildHandler,
		saveStateHandler:     saveStateHandler,
		getActiveJobsHandler: getActiveJobsHandler,
		getOpenOrdersHandler: getOpenOrdersHandler,
		jobs:                 jobs,
		world:                world,
		worldMu:              worldMu,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	api := e.Group("/api/v1")

	api.POST("/world/entities", s.RegisterEntity)
	api.DELETE("/world/entities/:node", s.RemoveEntity)

	api.POST("/roads", s.AddRoad)
	api.DELETE("/roads", s.RemoveRoad)

	api.POST("/orders", s.CreateMarketOrder)
	api.GET("/orders/open", s.GetOpenOrders)
	api.POST("/orders/:id/accept", s.AcceptOrder)

	api.POST("/deliveries/plan", s.PlanDelivery)

	api.GET("/jobs/active", s.GetActiveJobs)
	api.GET("/jobs/next", s.NextJob)
	api.POST("/jobs/:id/start", s.StartJob)
	api.POST("/jobs/:id/complete", s.CompleteJob)
	api.POST("/jobs/:id/fail", s.FailJob)
	api.DELETE("/nodes/:node/jobs", s.CancelNodeJobs)

	api.POST("/supply/rebuild", s.RebuildSupplyIndex)
	api.POST("/state/save", s.SaveState)

	e.GET("/health", s.Health)
}

// RegisterEntity handles POST /api/v1/world/entities - registers an
// inventory-carrying entity so planning and restore can resolve its node.
func (s *Server) RegisterEntity(ctx echo.Context) error {
	var req RegisterEntityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestResponse(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	inv := s.world.Register(kernel.NodeRef(req.Node), kernel.Point{X: req.X, Y: req.Y})
	for res, qty := range req.Stock {
		inv.SetStock(res, qty)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RemoveEntity handles DELETE /api/v1/world/entities/:node - drops an
// entity from the world registry. Jobs touching the node stay queued; use
// the node-job cancellation endpoint to fail them.
func (s *Server) RemoveEntity(ctx echo.Context) error {
	var node int64
	if err := echo.PathParamsBinder(ctx).Int64("node", &node).BindError(); err != nil {
		return badRequestResponse(ctx, "invalid node reference")
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	s.world.Remove(kernel.NodeRef(node))
	return ctx.NoContent(http.StatusNoContent)
}

// AddRoad handles POST /api/v1/roads - marks one cell as road.
func (s *Server) AddRoad(ctx echo.Context) error {
	var req RoadRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestResponse(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	cmd := commands.NewAddRoadCommand(kernel.NewCell(req.X, req.Y))
	if err := s.editRoadHandler.HandleAdd(ctx.Request().Context(), cmd); err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RemoveRoad handles DELETE /api/v1/roads - clears the road from one cell.
func (s *Server) RemoveRoad(ctx echo.Context) error {
	var req RoadRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestResponse(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	cmd := commands.NewRemoveRoadCommand(kernel.NewCell(req.X, req.Y))
	if err := s.editRoadHandler.HandleRemove(ctx.Request().Context(), cmd); err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateMarketOrder handles POST /api/v1/orders - lists a new market order.
func (s *Server) CreateMarketOrder(ctx echo.Context) error {
	var req CreateMarketOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestResponse(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	expiresAt := timeOrZero(req.ExpiresAt)

	cmd, err := commands.NewCreateMarketOrderCommand(
		orderID, req.Resource, req.Product, req.Amount, req.Price, expiresAt,
	)
	if err != nil {
		return badRequestResponse(ctx, err.Error())
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateMarketOrderResponse{ID: orderID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - pins a listing so the
// expiry sweep leaves it alone.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequestResponse(ctx, "invalid order id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return badRequestResponse(ctx, err.Error())
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOpenOrders handles GET /api/v1/orders/open - lists orders with
// unclaimed quantity.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	s.worldMu.Lock()
	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	s.worldMu.Unlock()
	if err != nil {
		return handlerErrorResponse(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = OrderResponse{
			ID:        order.ID.String(),
			Resource:  order.Resource,
			Product:   order.Product,
			Total:     order.Total,
			Remaining: order.Remaining,
			Price:     order.Price,
			Accepted:  order.Accepted,
		}
		if !order.ExpiresAt.IsZero() {
			expiresAt := order.ExpiresAt
			response[i].ExpiresAt = &expiresAt
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PlanDelivery handles POST /api/v1/deliveries/plan - turns a demand into
// transport jobs.
func (s *Server) PlanDelivery(ctx echo.Context) error {
	var req PlanDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestResponse(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	var orderID *kernel.UUID
	if req.OrderID != nil {
		parsed, err := kernel.UUIDFromString(*req.OrderID)
		if err != nil {
			return badRequestResponse(ctx, "invalid order id")
		}
		orderID = &parsed
	}

	cmd, err := commands.NewPlanDeliveryCommand(
		req.Resource, req.Amount, kernel.NodeRef(req.Destination), req.MaxPerTrip, orderID,
	)
	if err != nil {
		return badRequestResponse(ctx, err.Error())
	}

	s.worldMu.Lock()
	result, err := s.planHandler.Handle(ctx.Request().Context(), cmd)
	s.worldMu.Unlock()
	if err != nil {
		return handlerErrorResponse(ctx, err)
	}

	response := PlanDeliveryResponse{
		Jobs:  make([]JobResponse, len(result.Jobs)),
		Unmet: result.Unmet,
	}
	for i, job := range result.Jobs {
		response.Jobs[i] = jobResponse(job)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveJobs handles GET /api/v1/jobs/active - lists non-terminal jobs.
func (s *Server) GetActiveJobs(ctx echo.Context) error {
	query := queries.NewGetActiveJobsQuery()

	s.worldMu.Lock()
	jobs, err := s.getActiveJobsHandler.Handle(ctx.Request().Context(), query)
	s.worldMu.Unlock()
	if err != nil {
		return handlerErrorResponse(ctx, err)
	}

	response := make([]JobResponse, len(jobs))
	for i, job := range jobs {
		response[i] = JobResponse{
			ID:          job.ID.String(),
			Resource:    job.Resource,
			Amount:      job.Amount,
			Source:      int64(job.Source),
			Destination: int64(job.Destination),
			Status:      job.Status,
			Cost:        job.Cost,
		}
		if job.OrderID != nil {
			id := job.OrderID.String()
			response[i].OrderID = &id
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// NextJob handles GET /api/v1/jobs/next - pops the next planned job from the
// dispatch queue for a carrier to pick up. Returns 204 when the queue is
// empty.
func (s *Server) NextJob(ctx echo.Context) error {
	s.worldMu.Lock()
	job := s.jobs.NextPlanned()
	s.worldMu.Unlock()

	if job == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, jobResponse(job))
}

// StartJob handles POST /api/v1/jobs/:id/start - a carrier reports pickup.
func (s *Server) StartJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequestResponse(ctx, "invalid job id")
	}

	var req StartJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestResponse(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewReportJobStartedCommand(jobID, kernel.NodeRef(req.Carrier))
	if err != nil {
		return badRequestResponse(ctx, err.Error())
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	if err := s.reportJobHandler.HandleStarted(ctx.Request().Context(), cmd); err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteJob handles POST /api/v1/jobs/:id/complete - a carrier reports
// delivery.
func (s *Server) CompleteJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequestResponse(ctx, "invalid job id")
	}

	var req CompleteJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequestResponse(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewReportJobCompletedCommand(jobID, req.Delivered)
	if err != nil {
		return badRequestResponse(ctx, err.Error())
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	if err := s.reportJobHandler.HandleCompleted(ctx.Request().Context(), cmd); err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailJob handles POST /api/v1/jobs/:id/fail - a carrier reports the job
// cannot be finished.
func (s *Server) FailJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequestResponse(ctx, "invalid job id")
	}

	cmd, err := commands.NewReportJobFailedCommand(jobID)
	if err != nil {
		return badRequestResponse(ctx, err.Error())
	}

	s.worldMu.Lock()
	defer s.worldMu.Unlock()

	if err := s.reportJobHandler.HandleFailed(ctx.Request().Context(), cmd); err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelNodeJobs handles DELETE /api/v1/nodes/:node/jobs - fails every job
// touching the node, used when a building is demolished.
func (s *Server) CancelNodeJobs(ctx echo.Context) error {
	var node int64
	if err := echo.PathParamsBinder(ctx).Int64("node", &node).BindError(); err != nil {
		return badRequestResponse(ctx, "invalid node reference")
	}

	cmd, err := commands.NewCancelNodeJobsCommand(kernel.NodeRef(node))
	if err != nil {
		return badRequestResponse(ctx, err.Error())
	}

	s.worldMu.Lock()
	cancelled, err := s.cancelJobsHandler.Handle(ctx.Request().Context(), cmd)
	s.worldMu.Unlock()
	if err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CountResponse{Count: cancelled})
}

// RebuildSupplyIndex handles POST /api/v1/supply/rebuild - re-scans the
// world's inventories into the supplier catalog.
func (s *Server) RebuildSupplyIndex(ctx echo.Context) error {
	cmd := commands.NewRebuildSupplyIndexCommand()

	s.worldMu.Lock()
	suppliers, err := s.rebuildHandler.Handle(ctx.Request().Context(), cmd)
	s.worldMu.Unlock()
	if err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CountResponse{Count: suppliers})
}

// SaveState handles POST /api/v1/state/save - writes the world snapshot to
// the database.
func (s *Server) SaveState(ctx echo.Context) error {
	cmd := commands.NewSaveStateCommand()

	s.worldMu.Lock()
	err := s.saveStateHandler.Handle(ctx.Request().Context(), cmd)
	s.worldMu.Unlock()
	if err != nil {
		return handlerErrorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func jobResponse(job *transport.Job) JobResponse {
	resp := JobResponse{
		ID:          job.ID().String(),
		Resource:    string(job.Resource()),
		Amount:      job.Amount(),
		Source:      int64(job.Source()),
		Destination: int64(job.Destination()),
		Status:      job.Status().String(),
		Cost:        job.Cost(),
	}
	if order := job.Order(); order != nil {
		id := order.String()
		resp.OrderID = &id
	}
	for _, p := range job.Path() {
		resp.Path = append(resp.Path, PointResponse{X: p.X, Y: p.Y})
	}
	return resp
}
