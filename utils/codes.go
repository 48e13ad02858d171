package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned to clients. Every error response carries exactly one.
const (
	CodeBadRequest         = "BadRequest"
	CodeIDConflict         = "IdConflict"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeNotFound           = "NotFound"
	CodeServerError        = "UnexpectedServerError"
)

type ErrorBody struct {
	Code string `json:"code"`
}

func abortWithCode(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, ErrorBody{Code: code})
}

func BadRequest(c *gin.Context) {
	abortWithCode(c, http.StatusBadRequest, CodeBadRequest)
}

// IDConflict reports a username collision at registration. Returned with
// status 200, not 409 — a deliberate quirk of the API contract.
func IDConflict(c *gin.Context) {
	abortWithCode(c, http.StatusOK, CodeIDConflict)
}

func InvalidCredentials(c *gin.Context) {
	abortWithCode(c, http.StatusUnauthorized, CodeInvalidCredentials)
}

func NotFound(c *gin.Context) {
	abortWithCode(c, http.StatusNotFound, CodeNotFound)
}

func ServerError(c *gin.Context) {
	abortWithCode(c, http.StatusInternalServerError, CodeServerError)
}
