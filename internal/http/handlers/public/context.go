package public

import (
	handlershared "github.com/shanture-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getCustomerID(c *gin.Context) (string, bool) {
	return handlershared.GetCustomerID(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
