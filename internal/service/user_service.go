package service

import (
	"context"

	"github.com/archoffice/bff-admin/internal/domain"
	"github.com/archoffice/bff-admin/internal/dto"
	"github.com/archoffice/bff-admin/internal/infrastructure/registrationdata"
	"github.com/archoffice/bff-admin/internal/repository"
	"github.com/archoffice/bff-admin/pkg/errs"
	"github.com/rs/zerolog"
)

const (
	MsgInviteUser               = "Erro no processo de convidar um novo usuário"
	MsgUpdateUserByAdmin        = "Não foi possível editar o usuário pelo administrador"
	MsgUpdateUserByCollaborator = "Não foi possível editar o usuário pelo colaborador"
	MsgGetUsers                 = "Não foi possível listar os usuários"
	MsgGetUser                  = "Não foi possível buscar o usuário"
	MsgDeleteUser               = "Não foi possível deletar o usuário"
	MsgActivateUser             = "Não foi possível ativar o usuário"
	MsgDeactivateUser           = "Não foi possível desativar o usuário"
)

type UserServiceImpl struct {
	gateway          registrationdata.Gateway
	invites          repository.InviteRepository
	dispatcher       NotificationDispatcher
	inviteTemplateID string
	logger           zerolog.Logger
}

func CreateUserService(gateway registrationdata.Gateway, invites repository.InviteRepository, dispatcher NotificationDispatcher, inviteTemplateID string, logger zerolog.Logger) UserService {
	return &UserServiceImpl{
		gateway:          gateway,
		invites:          invites,
		dispatcher:       dispatcher,
		inviteTemplateID: inviteTemplateID,
		logger:           logger,
	}
}

// InviteUser creates the invite and then queues the invitation email. An
// invite whose email could not be queued is left in place.
func (s *UserServiceImpl) InviteUser(ctx context.Context, userEmail, adminIdpUserID string) error {
	invite, err := s.invites.CreateInvite(ctx, adminIdpUserID, userEmail)
	if err != nil {
		return s.fail("InviteUser", MsgInviteUser, err)
	}

	err = s.dispatcher.Send(ctx, dto.SendEmailEvent{
		TemplateName: s.inviteTemplateID,
		To:           []string{userEmail},
		Attributes: map[string]string{
			"hash": invite.Hash,
		},
	})
	if err != nil {
		return s.fail("InviteUser", MsgInviteUser, err)
	}

	return nil
}

func (s *UserServiceImpl) UpdateUserByAdmin(ctx context.Context, cmd domain.UpdateUserByAdmin) error {
	if err := s.gateway.UpdateUserByAdmin(ctx, cmd); err != nil {
		return s.fail("UpdateUserByAdmin", MsgUpdateUserByAdmin, err)
	}

	return nil
}

func (s *UserServiceImpl) UpdateUserByCollaborator(ctx context.Context, cmd domain.UpdateUserByCollaborator) error {
	if err := s.gateway.UpdateUserByCollaborator(ctx, cmd); err != nil {
		return s.fail("UpdateUserByCollaborator", MsgUpdateUserByCollaborator, err)
	}

	return nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context, filter domain.UserFilter) (domain.UserPage, error) {
	page, err := s.gateway.GetUsers(ctx, filter)
	if err != nil {
		return nil, s.fail("GetUsers", MsgGetUsers, err)
	}

	return page, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.gateway.GetUser(ctx, userID)
	if err != nil {
		return nil, s.fail("GetUser", MsgGetUser, err)
	}

	return user, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, userIdpID string) error {
	if err := s.gateway.DeleteUser(ctx, userIdpID); err != nil {
		return s.fail("DeleteUser", MsgDeleteUser, err)
	}

	return nil
}

func (s *UserServiceImpl) DeleteUserByUserID(ctx context.Context, userID string) error {
	if err := s.gateway.DeleteUserByUserID(ctx, userID); err != nil {
		return s.fail("DeleteUserByUserID", MsgDeleteUser, err)
	}

	return nil
}

func (s *UserServiceImpl) ActivateUserByAdmin(ctx context.Context, accessToken, userIdpID string) error {
	if err := s.gateway.ActivateUserByAdmin(ctx, accessToken, userIdpID); err != nil {
		return s.fail("ActivateUserByAdmin", MsgActivateUser, err)
	}

	return nil
}

func (s *UserServiceImpl) DeactivateUserByAdmin(ctx context.Context, accessToken, userIdpID string) error {
	if err := s.gateway.DeactivateUserByAdmin(ctx, accessToken, userIdpID); err != nil {
		return s.fail("DeactivateUserByAdmin", MsgDeactivateUser, err)
	}

	return nil
}

func (s *UserServiceImpl) fail(component, message string, err error) error {
	s.logger.Error().Err(err).Str("component", component).Msg(message)

	return errs.Downstream(message, err)
}
