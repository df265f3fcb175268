package controller

import (
	"strings"

	"github.com/archoffice/bff-admin/internal/domain"
	"github.com/archoffice/bff-admin/internal/dto"
	"github.com/archoffice/bff-admin/internal/middleware"
	"github.com/archoffice/bff-admin/internal/service"
	"github.com/archoffice/bff-admin/internal/validator"
	"github.com/archoffice/bff-admin/pkg/errs"
	"github.com/archoffice/bff-admin/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const HeaderIdpUserID = "x-idp-user-id"

const (
	MsgUsersListed     = "Usuários listados com sucesso"
	MsgUserFound       = "Usuário encontrado com sucesso"
	MsgUserUpdated     = "Usuário editado com sucesso"
	MsgInviteSent      = "Solicitação de usuário enviada com sucesso"
	MsgUserDeleted     = "Usuário excluído com sucesso"
	MsgUserActivated   = "Usuário ativado com sucesso"
	MsgUserDeactivated = "Usuário desativado com sucesso"

	MsgListUsersFailed      = "Erro no processo de listar usuários"
	MsgGetUserFailed        = "Erro no processo de buscar um usuário"
	MsgUpdateByAdminFailed  = "Erro no processo de alterar dados de um usuário pelo admin"
	MsgUpdateByCollabFailed = "Erro no processo de alterar dados de um usuário pelo colaborador"
	MsgInviteUserFailed     = "Erro no processo de convidar um novo usuário"
	MsgDeleteUserFailed     = "Erro no processo de deletar um usuário"
	MsgActivateUserFailed   = "Erro no processo de ativar usuário"
	MsgDeactivateUserFailed = "Erro no processo de desativar usuário"
)

type Controller struct {
	service   service.UserService
	validator *validator.Validator
	logger    zerolog.Logger
}

func CreateController(e *echo.Group, service service.UserService, validator *validator.Validator, logger zerolog.Logger) {
	uc := Controller{
		service:   service,
		validator: validator,
		logger:    logger,
	}
	e.GET("/users/:idpUserId/company-users", uc.GetUsers)
	e.GET("/user/:userId", uc.GetUser)
	e.PUT("/users/admin", uc.UpdateUserByAdmin)
	e.PUT("/users/collaborator", uc.UpdateUserByCollaborator)
	e.POST("/users/invite-user", uc.InviteUser)
	e.DELETE("/users/idp/:userId", uc.DeleteUser)
	e.DELETE("/users/:userId", uc.DeleteUserByUserID)
	e.POST("/users/activate/:userIdpIdToBeActivated", uc.ActivateUserByAdmin)
	e.POST("/users/deactivate/:userIdpIdToBeDeactivated", uc.DeactivateUserByAdmin)
}

func (c *Controller) GetUsers(e echo.Context) error {
	payload := dto.GetUsersRequest{
		AdminUserID: e.Param("idpUserId"),
		Limit:       optionalQuery(e, "limit"),
		Offset:      optionalQuery(e, "offset"),
	}
	if err := c.validator.Validate(payload); err != nil {
		return c.invalid(e, err)
	}

	resp, err := c.service.GetUsers(e.Request().Context(), domain.UserFilter{
		AdminUserID: payload.AdminUserID,
		Limit:       value(payload.Limit),
		Offset:      value(payload.Offset),
	})
	if err != nil {
		return c.failed(e, "GetUsers", MsgListUsersFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgUsersListed, resp)
}

func (c *Controller) GetUser(e echo.Context) error {
	resp, err := c.service.GetUser(e.Request().Context(), e.Param("userId"))
	if err != nil {
		return c.failed(e, "GetUser", MsgGetUserFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgUserFound, resp)
}

func (c *Controller) UpdateUserByAdmin(e echo.Context) error {
	payload := dto.UpdateUserByAdminRequest{}
	if err := c.bindAndValidate(e, &payload); err != nil {
		return c.invalid(e, err)
	}

	err := c.service.UpdateUserByAdmin(e.Request().Context(), domain.UpdateUserByAdmin{
		UserID:               value(payload.UserID),
		UserIDToBeUpdated:    value(payload.UserIDToBeUpdated),
		UserIdpIDToBeUpdated: value(payload.UserIdpIDToBeUpdated),
		Name:                 value(payload.Name),
		Surname:              value(payload.Surname),
		Email:                value(payload.Email),
		UserTypeID:           value(payload.UserTypeID),
		Phones:               toPhones(payload.Phones),
		Admin:                value(payload.Admin),
		Active:               value(payload.Active),
	})
	if err != nil {
		return c.failed(e, "UpdateUserByAdmin", MsgUpdateByAdminFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgUserUpdated, nil)
}

func (c *Controller) UpdateUserByCollaborator(e echo.Context) error {
	payload := dto.UpdateUserByCollaboratorRequest{}
	if err := c.bindAndValidate(e, &payload); err != nil {
		return c.invalid(e, err)
	}

	err := c.service.UpdateUserByCollaborator(e.Request().Context(), domain.UpdateUserByCollaborator{
		UserID:  value(payload.UserID),
		Name:    value(payload.Name),
		Surname: value(payload.Surname),
		Phones:  toPhones(payload.Phones),
	})
	if err != nil {
		return c.failed(e, "UpdateUserByCollaborator", MsgUpdateByCollabFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgUserUpdated, nil)
}

func (c *Controller) InviteUser(e echo.Context) error {
	payload := dto.InviteUserRequest{}
	if err := c.bindAndValidate(e, &payload); err != nil {
		return c.invalid(e, err)
	}

	adminIdpUserID := e.Request().Header.Get(HeaderIdpUserID)

	if err := c.service.InviteUser(e.Request().Context(), value(payload.UserEmail), adminIdpUserID); err != nil {
		return c.failed(e, "InviteUser", MsgInviteUserFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgInviteSent, nil)
}

func (c *Controller) DeleteUser(e echo.Context) error {
	if err := c.service.DeleteUser(e.Request().Context(), e.Param("userId")); err != nil {
		return c.failed(e, "DeleteUser", MsgDeleteUserFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgUserDeleted, nil)
}

func (c *Controller) DeleteUserByUserID(e echo.Context) error {
	if err := c.service.DeleteUserByUserID(e.Request().Context(), e.Param("userId")); err != nil {
		return c.failed(e, "DeleteUserByUserID", MsgDeleteUserFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgUserDeleted, nil)
}

func (c *Controller) ActivateUserByAdmin(e echo.Context) error {
	accessToken, err := bearerToken(e)
	if err != nil {
		return c.invalid(e, err)
	}

	payload := dto.ActivateUserByAdminRequest{
		AccessToken:            accessToken,
		UserIdpIDToBeActivated: e.Param("userIdpIdToBeActivated"),
	}
	if err := c.validator.Validate(payload); err != nil {
		return c.invalid(e, err)
	}

	if err := c.service.ActivateUserByAdmin(e.Request().Context(), payload.AccessToken, payload.UserIdpIDToBeActivated); err != nil {
		return c.failed(e, "ActivateUserByAdmin", MsgActivateUserFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgUserActivated, nil)
}

func (c *Controller) DeactivateUserByAdmin(e echo.Context) error {
	accessToken, err := bearerToken(e)
	if err != nil {
		return c.invalid(e, err)
	}

	payload := dto.DeactivateUserByAdminRequest{
		AccessToken:              accessToken,
		UserIdpIDToBeDeactivated: e.Param("userIdpIdToBeDeactivated"),
	}
	if err := c.validator.Validate(payload); err != nil {
		return c.invalid(e, err)
	}

	if err := c.service.DeactivateUserByAdmin(e.Request().Context(), payload.AccessToken, payload.UserIdpIDToBeDeactivated); err != nil {
		return c.failed(e, "DeactivateUserByAdmin", MsgDeactivateUserFailed, err)
	}

	return response.WriteSuccessResponse(e, MsgUserDeactivated, nil)
}

func (c *Controller) bindAndValidate(e echo.Context, payload interface{}) error {
	if err := c.validator.BindError(e.Bind(payload)); err != nil {
		return err
	}

	return c.validator.Validate(payload)
}

func (c *Controller) invalid(e echo.Context, err error) error {
	return response.WriteFailResponse(e, errs.GetErrorStatusCode(err), err.Error())
}

func (c *Controller) failed(e echo.Context, component, message string, err error) error {
	log := middleware.LoggerFrom(e, c.logger)
	log.Error().Err(err).Str("component", component).Msg(message)

	return response.WriteErrorResponse(e, message, err)
}

// bearerToken reads the token from an "Authorization: Bearer <token>" header.
func bearerToken(e echo.Context) (string, error) {
	scheme, token, ok := strings.Cut(e.Request().Header.Get(echo.HeaderAuthorization), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errs.MissingAuthHeader(errs.MsgAccessToken)
	}

	return token, nil
}

func optionalQuery(e echo.Context, name string) *string {
	values, ok := e.QueryParams()[name]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}

func toPhones(phones []dto.PhoneRequest) []domain.Phone {
	res := make([]domain.Phone, 0, len(phones))
	for _, p := range phones {
		res = append(res, domain.Phone{
			PhoneID:  value(p.PhoneID),
			Phone:    value(p.Phone),
			Whatsapp: value(p.Whatsapp),
			Telegram: value(p.Telegram),
			Type:     value(p.Type),
		})
	}

	return res
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}
