package service

import (
	"context"
	"strings"

	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/repository"
	"github.com/spec-kit/groundops-service/internal/scope"
	apperrors "github.com/spec-kit/groundops-service/pkg/util/errorutil"
)

// MessageService posts and lists notice-board messages. A message is
// addressed to one airline and one role, or to everyone at that airline.
type MessageService struct {
	messages repository.MessageRepository
}

// MessageCreateInput describes a posted notice.
type MessageCreateInput struct {
	Airline   string
	Recipient string
	Body      string
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Post publishes a notice. Admins address any airline; airline and gate
// staff post within their own. Ground crews carry no airline code, so they
// name the airline explicitly.
func (s *MessageService) Post(ctx context.Context, caller scope.Identity, input MessageCreateInput) (*domain.Message, error) {
	if err := caller.RequireRole(domain.RoleAdmin, domain.RoleAirline, domain.RoleGate, domain.RoleGround); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, apperrors.NewValidationError("message body required", nil)
	}
	recipient := strings.ToLower(strings.TrimSpace(input.Recipient))
	if recipient != domain.RecipientAll && !domain.Role(recipient).Valid() {
		return nil, apperrors.NewValidationError("recipient must be a role or \"all\"", nil)
	}

	airline := strings.ToUpper(strings.TrimSpace(input.Airline))
	if !caller.Admin() && caller.Airline != "" {
		airline = caller.Airline
	}
	if airline == "" {
		return nil, apperrors.NewValidationError("airline required", nil)
	}

	message := &domain.Message{
		Airline:   airline,
		Recipient: recipient,
		Body:      strings.TrimSpace(input.Body),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// List returns messages the caller should see: everything for admins,
// otherwise notices for the caller's airline addressed to their role or
// to everyone.
func (s *MessageService) List(ctx context.Context, caller scope.Identity) ([]domain.Message, error) {
	filter := repository.MessageFilter{}
	if !caller.Admin() {
		filter.Airline = caller.Airline
		filter.Recipient = string(caller.Role)
	}
	return s.messages.List(ctx, filter)
}

// Delete removes notices. Admin only.
func (s *MessageService) Delete(ctx context.Context, caller scope.Identity, ids []int64) error {
	if err := caller.RequireRole(domain.RoleAdmin); err != nil {
		return err
	}
	return s.messages.DeleteByIDs(ctx, ids)
}
