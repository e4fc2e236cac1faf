package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/spec-kit/groundops-service/internal/config"
	"github.com/spec-kit/groundops-service/internal/events"
)

// NotificationService reacts to domain events: operational events are
// logged, newly registered staff receive their generated credentials by
// email.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.SMTPConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.SMTPConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventPassengerCheckedIn, n.handlePassengerStatus)
	n.dispatcher.Subscribe(events.EventPassengerBoarded, n.handlePassengerStatus)
	n.dispatcher.Subscribe(events.EventPassengerFlagged, n.handlePassengerFlagged)
	n.dispatcher.Subscribe(events.EventBagMoved, n.handleBagMoved)
	n.dispatcher.Subscribe(events.EventFlightDeparted, n.handleFlightDeparted)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UserRegistered",
		zap.String("username", payload.Username),
		zap.String("role", string(payload.Role)),
		zap.String("actor", event.Actor))
	return n.sendCredentialEmail(payload)
}

func (n *NotificationService) handlePassengerStatus(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("actor", event.Actor), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePassengerFlagged(ctx context.Context, event events.Event) error {
	n.logger.Warn("PassengerFlagged", zap.String("actor", event.Actor), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleBagMoved(ctx context.Context, event events.Event) error {
	n.logger.Info("BagMoved", zap.String("actor", event.Actor), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleFlightDeparted(ctx context.Context, event events.Event) error {
	n.logger.Info("FlightDeparted", zap.String("actor", event.Actor), zap.Any("payload", event.Payload))
	return nil
}

// sendCredentialEmail delivers the one-time generated password. Delivery
// is skipped when no SMTP host is configured or the account has no email.
func (n *NotificationService) sendCredentialEmail(payload events.UserRegisteredPayload) error {
	if strings.TrimSpace(n.cfg.Host) == "" || strings.TrimSpace(payload.Email) == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", payload.Email)
	m.SetHeader("Subject", "Your ground operations account")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nAn account has been created for you.\n\nUsername: %s\nPassword: %s\n\nYou will be asked to change this password when you first sign in.\n",
		payload.FirstName, payload.Username, payload.Password))

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		n.logger.Error("credential email delivery failed",
			zap.String("username", payload.Username),
			zap.Error(err))
		return err
	}
	return nil
}
