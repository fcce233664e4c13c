package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/linkdeck/link-bio-service/pkg/app"
)

// AppInfo 将应用标识与访问地址写入请求上下文
func AppInfo(name string, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
