package notification

import (
	"context"
	"fmt"

	notificationRepo "smartpark/database/repository/notification"
	userRepo "smartpark/database/repository/user"
	"smartpark/models"
	"smartpark/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	UserRepo userRepo.UserRepository
}

func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
) (*DefaultNotificationService, error) {
	if repo == nil || users == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{Repo: repo, UserRepo: users}, nil
}

// Notify persists the in-app record first; the push is best-effort and its
// failure never fails the caller's operation.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, title, message, ntype string) error {
	record := &models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    ntype,
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to record notification for user %s: %w", userID, err)
	}

	if err := s.sendPush(ctx, userID, title, message); err != nil {
		utils.GetLogger().Warn("push notification failed",
			zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

// sendPush looks up the user's FCM token and sends a push.
func (s *DefaultNotificationService) sendPush(ctx context.Context, userID, title, body string) error {
	if utils.FCMClient == nil {
		return nil
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not find user %s: %w", userID, err)
	}
	if u == nil || u.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
