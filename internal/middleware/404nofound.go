package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/linkdeck/link-bio-service/pkg/app"
	"github.com/linkdeck/link-bio-service/pkg/code"
)

// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
