package respond

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// IDParam parses a positive numeric path parameter, answering 400 otherwise.
func IDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
