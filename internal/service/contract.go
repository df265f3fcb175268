package service

import (
	"context"

	"github.com/archoffice/bff-admin/internal/domain"
	"github.com/archoffice/bff-admin/internal/dto"
)

type UserService interface {
	InviteUser(ctx context.Context, userEmail, adminIdpUserID string) (err error)
	UpdateUserByAdmin(ctx context.Context, cmd domain.UpdateUserByAdmin) (err error)
	UpdateUserByCollaborator(ctx context.Context, cmd domain.UpdateUserByCollaborator) (err error)
	GetUsers(ctx context.Context, filter domain.UserFilter) (page domain.UserPage, err error)
	GetUser(ctx context.Context, userID string) (user domain.User, err error)
	DeleteUser(ctx context.Context, userIdpID string) (err error)
	DeleteUserByUserID(ctx context.Context, userID string) (err error)
	ActivateUserByAdmin(ctx context.Context, accessToken, userIdpID string) (err error)
	DeactivateUserByAdmin(ctx context.Context, accessToken, userIdpID string) (err error)
}

// NotificationDispatcher hands a send-email event to whatever delivers it,
// either the queue producer or the SMTP mailer.
type NotificationDispatcher interface {
	Send(ctx context.Context, event dto.SendEmailEvent) error
}
