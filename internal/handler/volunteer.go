package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careride/internal/domain"
	"careride/internal/repository"
)

// VolunteerHandler handles HTTP requests for volunteers.
type VolunteerHandler struct {
	volunteerRepo repository.VolunteerRepository
}

// NewVolunteerHandler creates a new VolunteerHandler.
func NewVolunteerHandler(volunteerRepo repository.VolunteerRepository) *VolunteerHandler {
	return &VolunteerHandler{volunteerRepo: volunteerRepo}
}

// VolunteerRequest is the HTTP request body for creating or updating a
// volunteer. Availability windows use the "Monday 09:00-12:00" form.
type VolunteerRequest struct {
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	CarModel        string   `json:"car_model,omitempty"`
	LicensePlate    string   `json:"license_plate,omitempty"`
	Availability    []string `json:"availability"`
	CurrentLocation string   `json:"current_location,omitempty"`
}

// VolunteerResponse is the HTTP response for volunteer data.
type VolunteerResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	CarModel        string   `json:"car_model,omitempty"`
	LicensePlate    string   `json:"license_plate,omitempty"`
	Availability    []string `json:"availability"`
	CurrentLocation string   `json:"current_location,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

func toVolunteerResponse(v *domain.Volunteer) VolunteerResponse {
	windows := make([]string, 0, len(v.Availability))
	for _, w := range v.Availability {
		windows = append(windows, w.String())
	}
	return VolunteerResponse{
		ID:              v.ID,
		Name:            v.Name,
		Phone:           v.Phone,
		CarModel:        v.CarModel,
		LicensePlate:    v.LicensePlate,
		Availability:    windows,
		CurrentLocation: v.CurrentLocation,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}

func parseAvailability(tokens []string) ([]domain.AvailabilityWindow, error) {
	var windows []domain.AvailabilityWindow
	for _, token := range tokens {
		w, err := domain.ParseWindow(token)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// Create handles POST /v1/volunteers
func (h *VolunteerHandler) Create(c *gin.Context) {
	var req VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and phone are required"})
		return
	}

	windows, err := parseAvailability(req.Availability)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	volunteer := &domain.Volunteer{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Phone:           req.Phone,
		CarModel:        req.CarModel,
		LicensePlate:    req.LicensePlate,
		Availability:    windows,
		CurrentLocation: req.CurrentLocation,
		CreatedAt:       time.Now(),
	}

	if err := h.volunteerRepo.Create(c.Request.Context(), volunteer); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toVolunteerResponse(volunteer))
}

// Get handles GET /v1/volunteers/:id
func (h *VolunteerHandler) Get(c *gin.Context) {
	volunteer, err := h.volunteerRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toVolunteerResponse(volunteer))
}

// GetAll handles GET /v1/volunteers
func (h *VolunteerHandler) GetAll(c *gin.Context) {
	volunteers, err := h.volunteerRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VolunteerResponse, 0, len(volunteers))
	for _, v := range volunteers {
		response = append(response, toVolunteerResponse(v))
	}
	respondJSON(c, http.StatusOK, response)
}

// Update handles PUT /v1/volunteers/:id
func (h *VolunteerHandler) Update(c *gin.Context) {
	var req VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and phone are required"})
		return
	}

	windows, err := parseAvailability(req.Availability)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	volunteer := &domain.Volunteer{
		ID:              c.Param("id"),
		Name:            req.Name,
		Phone:           req.Phone,
		CarModel:        req.CarModel,
		LicensePlate:    req.LicensePlate,
		Availability:    windows,
		CurrentLocation: req.CurrentLocation,
	}

	if err := h.volunteerRepo.Update(c.Request.Context(), volunteer); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.volunteerRepo.GetByID(c.Request.Context(), volunteer.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toVolunteerResponse(updated))
}

// Delete handles DELETE /v1/volunteers/:id
func (h *VolunteerHandler) Delete(c *gin.Context) {
	if err := h.volunteerRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
