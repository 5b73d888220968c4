package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeUnsupportedFile    = 40001
	CodeFileTooLarge       = 40002
	CodeInvalidPage        = 40003
	CodeUnauthorized       = 40100
	CodeQuotaExceeded      = 40200
	CodeForbidden          = 40300
	CodeSummaryNotFound    = 40401
	CodeQuizNotFound       = 40402
	CodeHomeworkNotFound   = 40403
	CodeInternalServer     = 50000
	CodeServiceUnavailable = 50300
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListData is the payload of list endpoints.
type ListData struct {
	Count int         `json:"count"`
	Items interface{} `json:"items"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func List(c *gin.Context, count int, items interface{}) {
	OK(c, ListData{Count: count, Items: items})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
