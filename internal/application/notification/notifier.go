// Package notification turns domain events into emails. Handlers are
// registered on the in-process event bus; failures are logged by the
// bus and never surface to the request that raised the event.
package notification

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/ordering"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/mail"
)

// Notifier sends transactional emails in response to domain events
type Notifier struct {
	users   identity.UserRepository
	sender  mail.Sender
	baseURL string
	logger  *zap.Logger
}

// NewNotifier creates a notifier
func NewNotifier(users identity.UserRepository, sender mail.Sender, baseURL string, logger *zap.Logger) *Notifier {
	return &Notifier{
		users:   users,
		sender:  sender,
		baseURL: baseURL,
		logger:  logger,
	}
}

var _ shared.EventHandler = (*Notifier)(nil)

// EventTypes returns the events the notifier reacts to
func (n *Notifier) EventTypes() []string {
	return []string{
		identity.EventTypeUserRegistered,
		identity.EventTypePasswordResetRequested,
		ordering.EventTypeOrderPlaced,
		ordering.EventTypeOrderStatusChanged,
		ordering.EventTypeOrderItemsChanged,
	}
}

// Handle renders and sends the email for one event
func (n *Notifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *identity.UserRegisteredEvent:
		return n.send(ctx, e.Email, "Confirm your registration", "user_registered", map[string]any{
			"FirstName": e.FirstName,
			"LastName":  e.LastName,
			"Email":     e.Email,
			"Token":     e.TokenKey,
			"BaseURL":   n.baseURL,
		})

	case *identity.PasswordResetRequestedEvent:
		return n.send(ctx, e.Email, "Password reset", "password_reset", map[string]any{
			"Email":   e.Email,
			"Token":   e.TokenKey,
			"BaseURL": n.baseURL,
		})

	case *ordering.OrderPlacedEvent:
		email, err := n.buyerEmail(ctx, e.UserID)
		if err != nil {
			return err
		}
		return n.send(ctx, email, "Order received", "order_placed", map[string]any{
			"OrderID":   e.OrderID,
			"ItemCount": e.ItemCount,
		})

	case *ordering.OrderStatusChangedEvent:
		email, err := n.buyerEmail(ctx, e.UserID)
		if err != nil {
			return err
		}
		return n.send(ctx, email, "Order status updated", "order_status_changed", map[string]any{
			"OrderID":   e.OrderID,
			"OldStatus": e.OldStatus,
			"NewStatus": e.NewStatus,
		})

	case *ordering.OrderItemsChangedEvent:
		email, err := n.buyerEmail(ctx, e.UserID)
		if err != nil {
			return err
		}
		return n.send(ctx, email, "Order updated by supplier", "order_items_changed", map[string]any{
			"OrderID": e.OrderID,
			"Changes": e.Changes,
		})
	}
	return nil
}

func (n *Notifier) buyerEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := n.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("look up notification recipient: %w", err)
	}
	return user.Email, nil
}

func (n *Notifier) send(ctx context.Context, to, subject, tmpl string, data map[string]any) error {
	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return fmt.Errorf("render %s mail: %w", tmpl, err)
	}
	if err := n.sender.Send(ctx, to, subject, body.String()); err != nil {
		return fmt.Errorf("send %s mail to %s: %w", tmpl, to, err)
	}
	n.logger.Debug("Notification sent",
		zap.String("template", tmpl),
		zap.String("to", to))
	return nil
}
