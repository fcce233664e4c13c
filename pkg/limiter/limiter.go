package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口，按请求特征提取 key 并查找对应令牌桶
// Face is the limiter interface used by the rate limiting middleware.
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 单个令牌桶的配置规则
type BucketRule struct {
	// Key 桶的标识，通常为路由前缀
	Key string
	// FillInterval 放入令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数
	Quantum int64
}

// Limiter 持有已注册的令牌桶
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}
