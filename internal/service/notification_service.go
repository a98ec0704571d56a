package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/smartcity/internal/events"
)

// NotificationService turns domain events into notifications. Delivery is a
// log line for now; the subscription points are where mail or push senders
// would hang.
type NotificationService struct {
	logger *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{logger: logger}
}

// Subscribe registers the notification handlers on the dispatcher.
func (s *NotificationService) Subscribe(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventUserRegistered, s.onUserRegistered)
	dispatcher.Subscribe(events.EventComplaintAssigned, s.onComplaintAssigned)
	dispatcher.Subscribe(events.EventAssignmentCompleted, s.onAssignmentCompleted)
	dispatcher.Subscribe(events.EventWorkerPenalized, s.onWorkerPenalized)
}

func (s *NotificationService) onUserRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notification: welcome",
		zap.String("user_id", payload.UserID),
		zap.String("role", payload.Role))
	return nil
}

func (s *NotificationService) onComplaintAssigned(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintAssignedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notification: complaint assigned",
		zap.String("assignment_id", payload.AssignmentID),
		zap.String("complaint_id", payload.ComplaintID),
		zap.String("worker_id", payload.WorkerID))
	return nil
}

func (s *NotificationService) onAssignmentCompleted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AssignmentCompletedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notification: assignment completed",
		zap.String("assignment_id", payload.AssignmentID),
		zap.String("worker_id", payload.WorkerID),
		zap.Int("credited_points", payload.CreditedPoints),
		zap.Int("total_credits", payload.TotalCredits))
	return nil
}

func (s *NotificationService) onWorkerPenalized(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.WorkerPenalizedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notification: worker penalized",
		zap.String("assignment_id", payload.AssignmentID),
		zap.String("worker_id", payload.WorkerID),
		zap.Int("penalty_points", payload.PenaltyPoints),
		zap.Int("total_credits", payload.TotalCredits))
	return nil
}
