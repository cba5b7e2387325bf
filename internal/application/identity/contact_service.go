package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/authz"
	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
)

// ContactService manages the user's delivery contacts
type ContactService struct {
	contactRepo identity.ContactRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(
	contactRepo identity.ContactRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// ListContacts returns the caller's contacts
func (s *ContactService) ListContacts(ctx context.Context, userID uuid.UUID) ([]ContactInfo, error) {
	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	infos := make([]ContactInfo, 0, len(contacts))
	for i := range contacts {
		infos = append(infos, NewContactInfo(&contacts[i]))
	}
	return infos, nil
}

// CreateContact adds a delivery contact for the caller
func (s *ContactService) CreateContact(ctx context.Context, input CreateContactInput) (*ContactInfo, error) {
	contact, err := identity.NewContact(input.UserID, input.City, input.Street,
		input.House, input.Structure, input.Building, input.Apartment, input.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		s.logger.Error("Failed to save contact", zap.Error(err))
		return nil, err
	}
	info := NewContactInfo(contact)
	return &info, nil
}

// UpdateContact replaces a contact's fields; only the owner may edit it
func (s *ContactService) UpdateContact(ctx context.Context, input UpdateContactInput) (*ContactInfo, error) {
	contact, err := s.contactRepo.FindByID(ctx, input.ContactID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, input.ActorID, contact); err != nil {
		return nil, err
	}

	if err := contact.Update(input.City, input.Street, input.House,
		input.Structure, input.Building, input.Apartment, input.Phone); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		s.logger.Error("Failed to save contact", zap.Error(err))
		return nil, err
	}
	info := NewContactInfo(contact)
	return &info, nil
}

// DeleteContacts removes the caller's contacts by id, returning how
// many were deleted. Ids belonging to other users are skipped.
func (s *ContactService) DeleteContacts(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, shared.NewDomainError("INVALID_INPUT", "No contact ids given")
	}
	deleted, err := s.contactRepo.DeleteByUser(ctx, userID, ids)
	if err != nil {
		s.logger.Error("Failed to delete contacts", zap.Error(err))
		return 0, err
	}
	return deleted, nil
}

func (s *ContactService) authorize(ctx context.Context, actorID uuid.UUID, contact *identity.Contact) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	relation := authz.RelationNone
	if contact.BelongsTo(actor.ID) {
		relation = authz.RelationOwner
	}
	if !authz.Decide(authz.RoleOf(actor), authz.ResourceContact, relation) {
		return shared.ErrForbidden
	}
	return nil
}
