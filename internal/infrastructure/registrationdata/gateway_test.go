package registrationdata

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/archoffice/bff-admin/internal/domain"
	"github.com/archoffice/bff-admin/pkg/errs"
	"github.com/archoffice/bff-admin/pkg/httpclient"
	"github.com/stretchr/testify/require"
)

const userFixture = `{
	"userId": 42,
	"userIdpId": "idp-42",
	"name": "Maria",
	"surname": "Silva",
	"userType": {"userTypeId": 2, "userType": "Colaborador"},
	"admin": false,
	"company": {"companyId": 7, "companyName": "Empresa"},
	"active": true,
	"email": {"emailId": 3, "userId": 42, "email": "maria@empresa.com.br", "type": "work"},
	"phones": [{"phoneId": 1, "userId": 42, "phone": "11999999999", "whatsapp": true, "telegram": false, "type": "mobile"}],
	"cpf": "12345678900",
	"lastLoginAt": "2024-05-02T10:11:12.345Z",
	"createdAt": "2023-01-10T08:00:00.000Z"
}`

type recordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        string
}

type fakeRegistrationService struct {
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakeRegistrationService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
	})

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(f.body))
}

func setupGateway(t *testing.T, fake *fakeRegistrationService) Gateway {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return CreateGateway(srv.URL+"/", httpclient.NewWithHTTPClient(srv.Client()))
}

func TestUpdateUserByAdmin(t *testing.T) {
	fake := &fakeRegistrationService{body: `{"success": true}`}
	gw := setupGateway(t, fake)

	cmd := domain.UpdateUserByAdmin{
		UserID:               "admin-1",
		UserIDToBeUpdated:    42,
		UserIdpIDToBeUpdated: "idp-42",
		Name:                 "Maria",
		Surname:              "Silva",
		UserTypeID:           2,
		Phones:               []domain.Phone{{PhoneID: 1, Phone: "11999999999", Whatsapp: true, Type: "mobile"}},
		Admin:                true,
		Active:               true,
	}

	require.NoError(t, gw.UpdateUserByAdmin(context.Background(), cmd))
	require.Len(t, fake.requests, 1)
	require.Equal(t, http.MethodPut, fake.requests[0].Method)
	require.Equal(t, "/users/admin", fake.requests[0].Path)
	require.Equal(t, "application/json", fake.requests[0].ContentType)
	require.JSONEq(t, `{
		"userId": "admin-1",
		"userIdToBeUpdated": 42,
		"userIdpIdToBeUpdated": "idp-42",
		"name": "Maria",
		"surname": "Silva",
		"userTypeId": 2,
		"phones": [{"phoneId": 1, "phone": "11999999999", "whatsapp": true, "telegram": false, "type": "mobile"}],
		"admin": true,
		"active": true
	}`, fake.requests[0].Body)
}

func TestUpdateUserByCollaborator(t *testing.T) {
	fake := &fakeRegistrationService{body: `{"success": true}`}
	gw := setupGateway(t, fake)

	err := gw.UpdateUserByCollaborator(context.Background(), domain.UpdateUserByCollaborator{
		UserID:  "user-1",
		Name:    "João",
		Surname: "Souza",
		Phones:  []domain.Phone{},
	})
	require.NoError(t, err)
	require.Equal(t, "/users/collaborator", fake.requests[0].Path)
	require.JSONEq(t, `{"userId":"user-1","name":"João","surname":"Souza","phones":[]}`, fake.requests[0].Body)
}

func TestGetUserUnwrapsEnvelope(t *testing.T) {
	fake := &fakeRegistrationService{body: `{"data": {"data": ` + userFixture + `}}`}
	gw := setupGateway(t, fake)

	user, err := gw.GetUser(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, fake.requests[0].Method)
	require.Equal(t, "/users/42", fake.requests[0].Path)

	out, err := json.Marshal(user)
	require.NoError(t, err)
	require.JSONEq(t, userFixture, string(out))
}

func TestGetUserKeepsDocumentVerbatim(t *testing.T) {
	document := `{
		"userId": 42,
		"name": "Maria",
		"email": null,
		"cpf": null,
		"createdAt": 1704873600000,
		"phones": [{"phoneId": 1, "userId": 0, "phone": "11999999999", "whatsapp": true, "telegram": false, "type": "mobile"}],
		"department": "Financeiro"
	}`
	fake := &fakeRegistrationService{body: `{"data": {"data": ` + document + `}}`}
	gw := setupGateway(t, fake)

	user, err := gw.GetUser(context.Background(), "42")
	require.NoError(t, err)

	out, err := json.Marshal(user)
	require.NoError(t, err)
	require.JSONEq(t, document, string(out))
}

func TestGetUsersQueryString(t *testing.T) {
	type TestCase struct {
		Name          string
		Filter        domain.UserFilter
		ExpectedQuery string
	}

	testCases := []TestCase{
		{Name: "Limit and offset", Filter: domain.UserFilter{AdminUserID: "idp-1", Limit: "10", Offset: "5"}, ExpectedQuery: "limit=10&offset=5"},
		{Name: "Limit only", Filter: domain.UserFilter{AdminUserID: "idp-1", Limit: "10"}, ExpectedQuery: "limit=10"},
		{Name: "Offset only", Filter: domain.UserFilter{AdminUserID: "idp-1", Offset: "5"}, ExpectedQuery: "offset=5"},
		{Name: "No pagination", Filter: domain.UserFilter{AdminUserID: "idp-1"}, ExpectedQuery: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			fake := &fakeRegistrationService{body: `{"data": {"users": [` + userFixture + `], "total": 1}}`}
			gw := setupGateway(t, fake)

			page, err := gw.GetUsers(context.Background(), tc.Filter)
			require.NoError(t, err)
			out, err := json.Marshal(page)
			require.NoError(t, err)
			require.JSONEq(t, `{"users": [`+userFixture+`], "total": 1}`, string(out))
			require.Equal(t, "/users/idp-1/company-users", fake.requests[0].Path)
			require.Equal(t, tc.ExpectedQuery, fake.requests[0].RawQuery)
		})
	}
}

func TestCompanyUsersPath(t *testing.T) {
	require.Equal(t, "/users/idp-1/company-users?limit=10&offset=5", companyUsersPath(domain.UserFilter{AdminUserID: "idp-1", Limit: "10", Offset: "5"}))
	require.Equal(t, "/users/idp-1/company-users", companyUsersPath(domain.UserFilter{AdminUserID: "idp-1"}))
}

func TestDeleteRoutes(t *testing.T) {
	fake := &fakeRegistrationService{body: `{"success": true}`}
	gw := setupGateway(t, fake)

	require.NoError(t, gw.DeleteUser(context.Background(), "idp-42"))
	require.NoError(t, gw.DeleteUserByUserID(context.Background(), "42"))

	require.Equal(t, http.MethodDelete, fake.requests[0].Method)
	require.Equal(t, "/users/idp/idp-42", fake.requests[0].Path)
	require.Equal(t, http.MethodDelete, fake.requests[1].Method)
	require.Equal(t, "/users/42", fake.requests[1].Path)
}

func TestActivationBodies(t *testing.T) {
	fake := &fakeRegistrationService{body: `{"success": true}`}
	gw := setupGateway(t, fake)

	require.NoError(t, gw.ActivateUserByAdmin(context.Background(), "token-123", "idp-42"))
	require.NoError(t, gw.DeactivateUserByAdmin(context.Background(), "token-123", "idp-42"))

	require.Equal(t, http.MethodPost, fake.requests[0].Method)
	require.Equal(t, "/users/activate/idp-42", fake.requests[0].Path)
	require.Equal(t, "token-123", fake.requests[0].Body)

	require.Equal(t, http.MethodPost, fake.requests[1].Method)
	require.Equal(t, "/users/deactivate/idp-42", fake.requests[1].Path)
	require.JSONEq(t, `{"accessToken":"token-123"}`, fake.requests[1].Body)
}

func TestUnsuccessfulEnvelope(t *testing.T) {
	fake := &fakeRegistrationService{body: `{"success": false}`}
	gw := setupGateway(t, fake)

	err := gw.DeleteUser(context.Background(), "idp-42")
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindDownstream))
	require.Equal(t, ErrMessage, err.Error())
	require.ErrorIs(t, err, ErrUnsuccessful)
}

func TestErrorStatusIsPreserved(t *testing.T) {
	fake := &fakeRegistrationService{status: http.StatusNotFound, body: `{"message":"user not found"}`}
	gw := setupGateway(t, fake)

	_, err := gw.GetUser(context.Background(), "404")
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindDownstream))

	var respErr *httpclient.ResponseError
	require.True(t, errors.As(err, &respErr))
	require.Equal(t, http.StatusNotFound, respErr.StatusCode)
	require.JSONEq(t, `{"message":"user not found"}`, string(respErr.Body))
}

func TestUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	gw := CreateGateway(baseURL, httpclient.New(0))
	err := gw.UpdateUserByCollaborator(context.Background(), domain.UpdateUserByCollaborator{UserID: "1"})
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindDownstream))
}
