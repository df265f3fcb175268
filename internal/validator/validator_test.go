package validator

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/archoffice/bff-admin/internal/dto"
	"github.com/archoffice/bff-admin/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }
func boolPtr(b bool) *bool    { return &b }

func validPhone() dto.PhoneRequest {
	return dto.PhoneRequest{
		PhoneID:  int64Ptr(1),
		Phone:    strPtr("11999999999"),
		Whatsapp: boolPtr(true),
		Telegram: boolPtr(false),
		Type:     strPtr("mobile"),
	}
}

func validAdminRequest() dto.UpdateUserByAdminRequest {
	return dto.UpdateUserByAdminRequest{
		UserID:               strPtr("admin-1"),
		UserIDToBeUpdated:    int64Ptr(42),
		UserIdpIDToBeUpdated: strPtr("idp-42"),
		Name:                 strPtr("Maria"),
		Surname:              strPtr("Silva"),
		UserTypeID:           int64Ptr(2),
		Phones:               []dto.PhoneRequest{validPhone()},
		Admin:                boolPtr(false),
		Active:               boolPtr(true),
	}
}

func requireValidationMessage(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	require.Equal(t, errs.KindValidation, e.Kind)
	require.Equal(t, 400, e.Status)
	require.Equal(t, message, e.Message)
}

func TestValidateUpdateUserByAdmin(t *testing.T) {
	v := New()

	type TestCase struct {
		Name    string
		Mutate  func(r *dto.UpdateUserByAdminRequest)
		Message string
	}

	testCases := []TestCase{
		{
			Name:   "Valid request",
			Mutate: func(r *dto.UpdateUserByAdminRequest) {},
		},
		{
			Name:   "Valid request with false flags",
			Mutate: func(r *dto.UpdateUserByAdminRequest) { r.Admin = boolPtr(false); r.Active = boolPtr(false) },
		},
		{
			Name:    "Missing userId",
			Mutate:  func(r *dto.UpdateUserByAdminRequest) { r.UserID = nil },
			Message: "O campo userId é obrigatório",
		},
		{
			Name:    "Missing active",
			Mutate:  func(r *dto.UpdateUserByAdminRequest) { r.Active = nil },
			Message: "O campo active é obrigatório",
		},
		{
			Name:    "Missing phones",
			Mutate:  func(r *dto.UpdateUserByAdminRequest) { r.Phones = nil },
			Message: "O campo phones é obrigatório",
		},
		{
			Name: "Phone without whatsapp",
			Mutate: func(r *dto.UpdateUserByAdminRequest) {
				p := validPhone()
				p.Whatsapp = nil
				r.Phones = []dto.PhoneRequest{p}
			},
			Message: "O campo whatsapp é obrigatório",
		},
		{
			Name:    "Invalid email",
			Mutate:  func(r *dto.UpdateUserByAdminRequest) { r.Email = strPtr("not-an-email") },
			Message: "O campo email deve ser um email válido",
		},
		{
			Name:    "Empty email",
			Mutate:  func(r *dto.UpdateUserByAdminRequest) { r.Email = strPtr("") },
			Message: "O campo email não pode ser vazio",
		},
		{
			Name:    "Empty name",
			Mutate:  func(r *dto.UpdateUserByAdminRequest) { r.Name = strPtr("") },
			Message: "O campo name não pode ser vazio",
		},
		{
			Name: "First error wins",
			Mutate: func(r *dto.UpdateUserByAdminRequest) {
				r.Surname = nil
				r.Admin = nil
			},
			Message: "O campo surname é obrigatório",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := validAdminRequest()
			tc.Mutate(&req)

			err := v.Validate(req)
			if tc.Message == "" {
				require.NoError(t, err)
				return
			}
			requireValidationMessage(t, err, tc.Message)
		})
	}
}

func TestValidateUpdateUserByCollaborator(t *testing.T) {
	v := New()

	req := dto.UpdateUserByCollaboratorRequest{
		UserID:  strPtr("user-1"),
		Name:    strPtr("João"),
		Surname: strPtr("Souza"),
		Phones:  []dto.PhoneRequest{},
	}
	require.NoError(t, v.Validate(req))

	req.Phones = nil
	requireValidationMessage(t, v.Validate(req), "O campo phones é obrigatório")
}

func TestValidateInviteUser(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(dto.InviteUserRequest{UserEmail: strPtr("maria.silva@empresa.com.br")}))
	requireValidationMessage(t, v.Validate(dto.InviteUserRequest{}), "O campo userEmail é obrigatório")
	requireValidationMessage(t, v.Validate(dto.InviteUserRequest{UserEmail: strPtr("maria@localhost")}), "Email inválido")
	requireValidationMessage(t, v.Validate(dto.InviteUserRequest{UserEmail: strPtr("maria")}), "Email inválido")
}

func TestValidateGetUsers(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(dto.GetUsersRequest{AdminUserID: "idp-1"}))
	require.NoError(t, v.Validate(dto.GetUsersRequest{AdminUserID: "idp-1", Limit: strPtr("10"), Offset: strPtr("5")}))
	requireValidationMessage(t, v.Validate(dto.GetUsersRequest{}), "O campo adminUserId é obrigatório")
	requireValidationMessage(t, v.Validate(dto.GetUsersRequest{AdminUserID: "idp-1", Limit: strPtr("")}), "O campo limit não pode ser vazio")
	requireValidationMessage(t, v.Validate(dto.GetUsersRequest{AdminUserID: "idp-1", Offset: strPtr("")}), "O campo offset não pode ser vazio")
}

func TestValidateActivation(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(dto.ActivateUserByAdminRequest{AccessToken: "token", UserIdpIDToBeActivated: "idp-1"}))
	requireValidationMessage(t, v.Validate(dto.ActivateUserByAdminRequest{UserIdpIDToBeActivated: "idp-1"}), "O campo accessToken é obrigatório")
	requireValidationMessage(t, v.Validate(dto.DeactivateUserByAdminRequest{AccessToken: "token"}), "O campo userIdpIdToBeDeactivated é obrigatório")
}

func TestBindError(t *testing.T) {
	v := New()

	decode := func(body string) error {
		var req dto.UpdateUserByAdminRequest
		return json.Unmarshal([]byte(body), &req)
	}

	requireValidationMessage(t, v.BindError(decode(`{"userId": 10}`)), "O campo userId deve ser uma string")
	requireValidationMessage(t, v.BindError(decode(`{"userIdToBeUpdated": "10"}`)), "O campo userIdToBeUpdated deve ser um número")
	requireValidationMessage(t, v.BindError(decode(`{"admin": "yes"}`)), "O campo admin deve ser um booleano")
	requireValidationMessage(t, v.BindError(decode(`{"phones": "none"}`)), "O campo phones deve ser uma lista de objetos")
	requireValidationMessage(t, v.BindError(decode(`{"phones": [{"telegram": 1}]}`)), "O campo telegram deve ser boolean")
	requireValidationMessage(t, v.BindError(fmt.Errorf("boom")), errs.MsgInvalidBody)

	requireValidationMessage(t, v.BindError(&UnknownFieldError{Field: "nickname"}), "O campo nickname não é permitido")
	require.NoError(t, v.BindError(nil))
	require.NoError(t, v.BindError(echo.ErrUnsupportedMediaType))
}

func TestLeafField(t *testing.T) {
	require.Equal(t, "phoneId", leafField("phones.0.phoneId"))
	require.Equal(t, "phoneId", leafField("phones.phoneId"))
	require.Equal(t, "phones", leafField("phones.3"))
	require.Equal(t, "", leafField(""))
}
