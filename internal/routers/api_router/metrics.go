package api_router

import (
	"expvar"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 链接保存指标
var (
	linkSaveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "link_save_total",
		Help: "Total number of link save requests by result.",
	}, []string{"result"})

	linkSaveRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "link_save_records_total",
		Help: "Total number of link records accepted by save requests.",
	})

	avatarUploadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_upload_total",
		Help: "Total number of avatar uploads by result.",
	}, []string{"result"})
)

// Expvar 导出系统运行时指标
// 处理获取 expvar 指标的 HTTP 请求，将导出的 JSON 数据写入响应
func Expvar(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	first := true
	report := func(key string, value interface{}) {
		if !first {
			fmt.Fprintf(c.Writer, ",\n")
		}
		first = false
		if str, ok := value.(string); ok {
			fmt.Fprintf(c.Writer, "%q: %q", key, str)
		} else {
			fmt.Fprintf(c.Writer, "%q: %v", key, value)
		}
	}

	fmt.Fprintf(c.Writer, "{\n")
	expvar.Do(func(kv expvar.KeyValue) {
		report(kv.Key, kv.Value)
	})
	fmt.Fprintf(c.Writer, "\n}\n")
}
