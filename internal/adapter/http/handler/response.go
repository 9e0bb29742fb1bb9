package handler

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON document returned for every failed request
type ErrorBody struct {
	Error          string   `json:"error"`
	Code           string   `json:"code"`
	RequestID      string   `json:"request_id,omitempty"`
	MissingFields  []string `json:"missing_fields,omitempty"`
	RequiredFields []string `json:"required_fields,omitempty"`
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// RespondError writes an ErrorBody carrying the request ID
func RespondError(c *gin.Context, status int, code, message string) {
	respondErrorBody(c, status, ErrorBody{
		Error: message,
		Code:  code,
	})
}

func respondErrorBody(c *gin.Context, status int, body ErrorBody) {
	body.RequestID = c.GetString("request_id")
	c.JSON(status, body)
}
