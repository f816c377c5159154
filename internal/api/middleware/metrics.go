package middleware

import (
	"github.com/gin-gonic/gin"
)

// RequestObserver 接收請求完成事件
type RequestObserver interface {
	ObserveRequest(route string, status int)
}

// Metrics 以路由樣板（而非實際路徑）記錄請求數
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(route, c.Writer.Status())
	}
}
