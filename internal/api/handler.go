package api

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/BerylCAtieno/trip-planner-agent/internal/models"
	"github.com/BerylCAtieno/trip-planner-agent/internal/planner"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var errNotObject = errors.New("request body must be a JSON object")

// Every failure reaches the caller as a 500; only the body differs by kind.
var statusByKind = map[planner.ErrorKind]int{
	planner.ConfigError:   http.StatusInternalServerError,
	planner.RequestError:  http.StatusInternalServerError,
	planner.UpstreamError: http.StatusInternalServerError,
	planner.ParseError:    http.StatusInternalServerError,
}

type PlanHandler struct {
	planner *planner.Planner
}

func NewPlanHandler(p *planner.Planner) *PlanHandler {
	return &PlanHandler{
		planner: p,
	}
}

func RegisterRoutes(r *gin.Engine, h *PlanHandler) {
	r.POST("/plan", h.HandlePlan)
	r.GET("/health", h.Health)
}

// HandlePlan serves POST /plan.
func (h *PlanHandler) HandlePlan(c *gin.Context) {
	var req models.TripRequest
	if err := bindTripRequest(c, &req); err != nil {
		log.Printf("ERROR: Failed to decode trip request (trace %s): %v", TraceID(c), err)
		h.sendError(c, planner.NewError(planner.RequestError, "invalid request body", err))
		return
	}

	result, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		h.sendError(c, err)
		return
	}

	log.Printf("STATE: Sending itinerary (trace %s, %d bytes, days=%d, budget_status=%q, total=%q)",
		TraceID(c), len(result.Itinerary), result.Overview.Days, result.Overview.BudgetStatus, result.Overview.TotalEstimatedCost)
	c.Data(http.StatusOK, "application/json; charset=utf-8", result.Itinerary)
}

// bindTripRequest accepts only a JSON object. A bare null would otherwise
// decode into an empty request and be planned with placeholders.
func bindTripRequest(c *gin.Context, req *models.TripRequest) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}
	return binding.JSON.BindBody(body, req)
}

func (h *PlanHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *PlanHandler) sendError(c *gin.Context, err error) {
	status, ok := statusByKind[planner.KindOf(err)]
	if !ok {
		status = http.StatusInternalServerError
	}

	log.Printf("=== SENDING ERROR RESPONSE (Status %d) ===", status)
	log.Printf("Trace: %s Kind: %s Error: %v", TraceID(c), planner.KindOf(err), err)
	log.Printf("==========================================")

	var pe *planner.Error
	if errors.As(err, &pe) && pe.Kind == planner.ParseError {
		c.JSON(status, ParseErrorResponse{
			Error:    planner.ParseFailureMessage,
			Response: pe.Raw,
		})
		return
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}
