package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldLinkID 链接 ID 字段
	FieldLinkID = "linkId"

	// FieldPlatform 链接平台字段
	FieldPlatform = "platform"

	// FieldPosition 链接排序位置字段
	FieldPosition = "position"

	// FieldFileKey 上传文件键字段
	FieldFileKey = "fileKey"

	// FieldStorage 存储后端类型字段
	FieldStorage = "storage"
)
