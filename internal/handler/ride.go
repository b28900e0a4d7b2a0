package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careride/internal/domain"
	"careride/internal/service"
)

// RideHandler handles HTTP requests for ride requests.
type RideHandler struct {
	coordinator *service.DispatchCoordinator
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(coordinator *service.DispatchCoordinator) *RideHandler {
	return &RideHandler{coordinator: coordinator}
}

// CreateRideRequest is the HTTP request body for requesting a ride.
type CreateRideRequest struct {
	RequesterID        string    `json:"requester_id"`
	PickupAddress      string    `json:"pickup_address"`
	DestinationAddress string    `json:"destination_address"`
	RequestedTime      time.Time `json:"requested_time"`
	SpecialNeeds       string    `json:"special_needs,omitempty"`
}

// AssignRequest is the HTTP request body for assigning a volunteer. An
// empty volunteer_id lets the matching engine choose.
type AssignRequest struct {
	VolunteerID string `json:"volunteer_id,omitempty"`
}

// RideResponse is the HTTP response for ride request data.
type RideResponse struct {
	ID                       string  `json:"id"`
	RequesterID              string  `json:"requester_id"`
	PickupAddress            string  `json:"pickup_address"`
	DestinationAddress       string  `json:"destination_address"`
	RequestedTime            string  `json:"requested_time"`
	SpecialNeeds             string  `json:"special_needs,omitempty"`
	Status                   string  `json:"status"`
	AssignedVolunteerID      string  `json:"assigned_volunteer_id,omitempty"`
	AssignedVolunteerName    string  `json:"assigned_volunteer_name,omitempty"`
	AssignedTime             string  `json:"assigned_time,omitempty"`
	CompletedTime            string  `json:"completed_time,omitempty"`
	DistanceKm               float64 `json:"distance_km"`
	EstimatedDurationMinutes float64 `json:"estimated_duration_minutes"`
	CreatedAt                string  `json:"created_at"`
}

func toRideResponse(r *domain.RideRequest) RideResponse {
	resp := RideResponse{
		ID:                       r.ID,
		RequesterID:              r.RequesterID,
		PickupAddress:            r.PickupAddress,
		DestinationAddress:       r.DestinationAddress,
		RequestedTime:            r.RequestedTime.Format(time.RFC3339),
		SpecialNeeds:             r.SpecialNeeds,
		Status:                   string(r.Status),
		AssignedVolunteerID:      r.AssignedVolunteerID,
		DistanceKm:               r.DistanceKm,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		CreatedAt:                r.CreatedAt.Format(time.RFC3339),
	}
	if !r.AssignedTime.IsZero() {
		resp.AssignedTime = r.AssignedTime.Format(time.RFC3339)
	}
	if !r.CompletedTime.IsZero() {
		resp.CompletedTime = r.CompletedTime.Format(time.RFC3339)
	}
	return resp
}

// Create handles POST /v1/rides
func (h *RideHandler) Create(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.coordinator.CreateRequest(c.Request.Context(), service.CreateRideRequest{
		RequesterID:        req.RequesterID,
		PickupAddress:      req.PickupAddress,
		DestinationAddress: req.DestinationAddress,
		RequestedTime:      req.RequestedTime,
		SpecialNeeds:       req.SpecialNeeds,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// Get handles GET /v1/rides/:id
func (h *RideHandler) Get(c *gin.Context) {
	view, err := h.coordinator.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := toRideResponse(view.Ride)
	resp.AssignedVolunteerName = view.VolunteerName
	respondJSON(c, http.StatusOK, resp)
}

// GetAll handles GET /v1/rides with an optional status query parameter.
func (h *RideHandler) GetAll(c *gin.Context) {
	var status domain.RideStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := domain.ParseRideStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		status = parsed
	}

	rides, err := h.coordinator.ListRides(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, toRideResponse(r))
	}
	respondJSON(c, http.StatusOK, response)
}

// Assign handles POST /v1/rides/:id/assign
func (h *RideHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	ride, err := h.coordinator.AssignVolunteer(c.Request.Context(), c.Param("id"), req.VolunteerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// Start handles POST /v1/rides/:id/start
func (h *RideHandler) Start(c *gin.Context) {
	ride, err := h.coordinator.StartRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// Complete handles POST /v1/rides/:id/complete
func (h *RideHandler) Complete(c *gin.Context) {
	ride, err := h.coordinator.CompleteRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// Cancel handles POST /v1/rides/:id/cancel
func (h *RideHandler) Cancel(c *gin.Context) {
	ride, err := h.coordinator.CancelRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// Delete handles DELETE /v1/rides/:id
func (h *RideHandler) Delete(c *gin.Context) {
	if err := h.coordinator.DeleteRide(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
