package registrationdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/archoffice/bff-admin/internal/domain"
	"github.com/archoffice/bff-admin/pkg/errs"
	"github.com/archoffice/bff-admin/pkg/httpclient"
)

const ErrMessage = "Erro ao acessar o serviço ms-update-registration-data"

var ErrUnsuccessful = errors.New("registration data service reported success=false")

type Gateway interface {
	UpdateUserByAdmin(ctx context.Context, cmd domain.UpdateUserByAdmin) error
	UpdateUserByCollaborator(ctx context.Context, cmd domain.UpdateUserByCollaborator) error
	GetUser(ctx context.Context, userID string) (domain.User, error)
	GetUsers(ctx context.Context, filter domain.UserFilter) (domain.UserPage, error)
	DeleteUser(ctx context.Context, userIdpID string) error
	DeleteUserByUserID(ctx context.Context, userID string) error
	ActivateUserByAdmin(ctx context.Context, accessToken, userIdpID string) error
	DeactivateUserByAdmin(ctx context.Context, accessToken, userIdpID string) error
}

type GatewayImpl struct {
	baseURL string
	client  *httpclient.Client
}

func CreateGateway(baseURL string, client *httpclient.Client) Gateway {
	return &GatewayImpl{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type successEnvelope struct {
	Success bool `json:"success"`
}

// Read payloads are carried as raw documents and never re-encoded.
type userEnvelope struct {
	Data struct {
		Data domain.User `json:"data"`
	} `json:"data"`
}

type userPageEnvelope struct {
	Data domain.UserPage `json:"data"`
}

type deactivateBody struct {
	AccessToken string `json:"accessToken"`
}

func (g *GatewayImpl) UpdateUserByAdmin(ctx context.Context, cmd domain.UpdateUserByAdmin) error {
	return g.sendJSON(ctx, http.MethodPut, "/users/admin", cmd)
}

func (g *GatewayImpl) UpdateUserByCollaborator(ctx context.Context, cmd domain.UpdateUserByCollaborator) error {
	return g.sendJSON(ctx, http.MethodPut, "/users/collaborator", cmd)
}

func (g *GatewayImpl) GetUser(ctx context.Context, userID string) (domain.User, error) {
	var envelope userEnvelope
	if err := g.get(ctx, "/users/"+url.PathEscape(userID), &envelope); err != nil {
		return nil, err
	}

	return envelope.Data.Data, nil
}

func (g *GatewayImpl) GetUsers(ctx context.Context, filter domain.UserFilter) (domain.UserPage, error) {
	var envelope userPageEnvelope
	if err := g.get(ctx, companyUsersPath(filter), &envelope); err != nil {
		return nil, err
	}

	return envelope.Data, nil
}

func (g *GatewayImpl) DeleteUser(ctx context.Context, userIdpID string) error {
	return g.send(ctx, httpclient.HttpRequest{
		Method: http.MethodDelete,
		URL:    g.baseURL + "/users/idp/" + url.PathEscape(userIdpID),
	})
}

func (g *GatewayImpl) DeleteUserByUserID(ctx context.Context, userID string) error {
	return g.send(ctx, httpclient.HttpRequest{
		Method: http.MethodDelete,
		URL:    g.baseURL + "/users/" + url.PathEscape(userID),
	})
}

// ActivateUserByAdmin posts the bare token, encoded the way the registration
// service has always received it.
func (g *GatewayImpl) ActivateUserByAdmin(ctx context.Context, accessToken, userIdpID string) error {
	return g.send(ctx, httpclient.HttpRequest{
		Method:  http.MethodPost,
		URL:     g.baseURL + "/users/activate/" + url.PathEscape(userIdpID),
		Body:    []byte(accessToken),
		Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	})
}

func (g *GatewayImpl) DeactivateUserByAdmin(ctx context.Context, accessToken, userIdpID string) error {
	return g.sendJSON(ctx, http.MethodPost, "/users/deactivate/"+url.PathEscape(userIdpID), deactivateBody{AccessToken: accessToken})
}

// companyUsersPath appends limit and offset, in that order, only when set.
func companyUsersPath(filter domain.UserFilter) string {
	path := "/users/" + url.PathEscape(filter.AdminUserID) + "/company-users"

	var params []string
	if filter.Limit != "" {
		params = append(params, "limit="+url.QueryEscape(filter.Limit))
	}
	if filter.Offset != "" {
		params = append(params, "offset="+url.QueryEscape(filter.Offset))
	}
	if len(params) == 0 {
		return path
	}

	return path + "?" + strings.Join(params, "&")
}

func (g *GatewayImpl) sendJSON(ctx context.Context, method, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Downstream(ErrMessage, fmt.Errorf("marshal request: %w", err))
	}

	return g.send(ctx, httpclient.HttpRequest{
		Method:  method,
		URL:     g.baseURL + path,
		Body:    body,
		Headers: map[string]string{"Content-Type": "application/json"},
	})
}

// send performs a mutation and checks the success flag of its envelope.
func (g *GatewayImpl) send(ctx context.Context, req httpclient.HttpRequest) error {
	resp, err := g.client.SendRequest(ctx, req)
	if err != nil {
		return errs.Downstream(ErrMessage, err)
	}

	var envelope successEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return errs.Downstream(ErrMessage, fmt.Errorf("decode %s %s: %w", req.Method, req.URL, err))
	}
	if !envelope.Success {
		return errs.Downstream(ErrMessage, ErrUnsuccessful)
	}

	return nil
}

func (g *GatewayImpl) get(ctx context.Context, path string, out interface{}) error {
	req := httpclient.HttpRequest{
		Method:  http.MethodGet,
		URL:     g.baseURL + path,
		Headers: map[string]string{"Accept": "application/json"},
	}

	resp, err := g.client.SendRequest(ctx, req)
	if err != nil {
		return errs.Downstream(ErrMessage, err)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return errs.Downstream(ErrMessage, fmt.Errorf("decode %s %s: %w", req.Method, req.URL, err))
	}

	return nil
}
