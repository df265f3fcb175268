package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

type FailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Success = true
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

func WriteFailResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, FailResponse{Success: false, Message: message})
}

// WriteErrorResponse answers a failed use case with a fixed message and the
// error's own description. Causes are never serialized.
func WriteErrorResponse(c echo.Context, message string, err error) error {
	resp := ErrorResponse{}
	resp.Message = message
	if err != nil {
		resp.Error = err.Error()
	}

	return c.JSON(http.StatusInternalServerError, resp)
}
