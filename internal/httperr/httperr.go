package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// FromBusiness maps a BusinessError to the right status, falling back to 500
// for anything that is not a business rule failure.
func FromBusiness(c *gin.Context, err error) {
	var be BusinessError
	if !As(err, &be) {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch be.Code {
	case "time_conflict":
		Conflict(c, be.Code, "Horário indisponível.")
	case "salon_not_found", "service_not_found", "professional_not_found",
		"appointment_not_found", "plan_not_found":
		NotFound(c, be.Code, "Registro não encontrado.")
	case "cancellation_not_allowed":
		Forbidden(c, be.Code, "O estabelecimento não permite cancelamentos pelo aplicativo.")
	default:
		BadRequest(c, be.Code, "Operação inválida.")
	}
}
