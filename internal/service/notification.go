package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"careride/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationVolunteerAssigned NotificationType = "VOLUNTEER_ASSIGNED"
	NotificationRideCancelled     NotificationType = "RIDE_CANCELLED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. Delivery is currently
// log-based; a push/SMS client would slot in behind send.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyVolunteerAssigned notifies the requester that a volunteer has been
// assigned to their ride.
func (s *NotificationService) NotifyVolunteerAssigned(ctx context.Context, ride *domain.RideRequest, volunteer *domain.Volunteer) error {
	notification := Notification{
		Type:        NotificationVolunteerAssigned,
		RecipientID: ride.RequesterID,
		Title:       "Volunteer Assigned",
		Message:     fmt.Sprintf("%s will drive you from %s", volunteer.Name, ride.PickupAddress),
		Data: map[string]interface{}{
			"ride_id":        ride.ID,
			"volunteer_id":   volunteer.ID,
			"volunteer_name": volunteer.Name,
			"car_model":      volunteer.CarModel,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRideCancelled notifies the assigned volunteer, if any, that the
// ride was cancelled.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.RideRequest) error {
	if !ride.Assigned() {
		return nil
	}

	notification := Notification{
		Type:        NotificationRideCancelled,
		RecipientID: ride.AssignedVolunteerID,
		Title:       "Ride Cancelled",
		Message:     fmt.Sprintf("The ride from %s was cancelled", ride.PickupAddress),
		Data: map[string]interface{}{
			"ride_id": ride.ID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (log-based implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)
	return nil
}
