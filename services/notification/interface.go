package notification

import "context"

// NotificationService records an in-app notification for a user and, when a
// device token is registered, mirrors it as an FCM push.
type NotificationService interface {
	Notify(ctx context.Context, userID, title, message, ntype string) error
}
