package code

// 全局业务状态码注册表
// Registry of all business status codes. Codes are grouped by concern:
// 0/1 generic, 1xxxx framework, 2xxxx user and auth, 3xxxx links,
// 4xxxx profile and uploads.
var (
	Success = NewSuss(0, lang{
		en:    "Success",
		zh_cn: "成功",
	})
	Failed = NewError(1, lang{
		en:    "Failed",
		zh_cn: "失败",
	})

	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorNotFoundAPI = NewError(10002, lang{
		en:    "API route not found",
		zh_cn: "接口地址不存在",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too many requests",
		zh_cn: "请求过于频繁",
	})
	ErrorServerInternal = NewError(10004, lang{
		en:    "Internal server error",
		zh_cn: "服务器内部错误",
	})
	ErrorDBQuery = NewError(10005, lang{
		en:    "Database query failed",
		zh_cn: "数据库查询失败",
	})

	ErrorNotUserAuthToken = NewError(20001, lang{
		en:    "Missing user auth token",
		zh_cn: "缺少用户认证令牌",
	})
	ErrorInvalidUserAuthToken = NewError(20002, lang{
		en:    "Invalid or expired user auth token",
		zh_cn: "用户认证令牌无效或已过期",
	})
	ErrorUserGenerateTokenFail = NewError(20003, lang{
		en:    "Failed to generate user token",
		zh_cn: "生成用户令牌失败",
	})
	ErrorUserRegisterFail = NewError(20101, lang{
		en:    "User registration failed",
		zh_cn: "用户注册失败",
	})
	ErrorUserEmailExists = NewError(20102, lang{
		en:    "Email is already registered",
		zh_cn: "邮箱已被注册",
	})
	ErrorUserNotExist = NewError(20103, lang{
		en:    "User does not exist",
		zh_cn: "用户不存在",
	})
	ErrorUserPasswordWrong = NewError(20104, lang{
		en:    "Incorrect email or password",
		zh_cn: "邮箱或密码错误",
	})

	ErrorLinkListFail = NewError(30001, lang{
		en:    "Failed to load links",
		zh_cn: "链接列表加载失败",
	})
	ErrorLinkCreateFail = NewError(30002, lang{
		en:    "Failed to create link",
		zh_cn: "链接创建失败",
	})
	ErrorLinkUpdateFail = NewError(30003, lang{
		en:    "Failed to update link",
		zh_cn: "链接更新失败",
	})
	ErrorLinkDeleteFail = NewError(30004, lang{
		en:    "Failed to delete link",
		zh_cn: "链接删除失败",
	})
	ErrorLinkNotFound = NewError(30005, lang{
		en:    "Link not found",
		zh_cn: "链接不存在",
	})
	ErrorLinkReorderFail = NewError(30006, lang{
		en:    "Failed to reorder links",
		zh_cn: "链接排序失败",
	})
	ErrorLinkSaveFail = NewError(30007, lang{
		en:    "Failed to save link changes",
		zh_cn: "链接保存失败",
	})
	ErrorLinkSaveInFlight = NewError(30008, lang{
		en:    "A save is already in progress",
		zh_cn: "已有保存操作正在进行",
	})
	ErrorProfileQueryFail = NewError(40001, lang{
		en:    "Failed to load profile",
		zh_cn: "个人资料加载失败",
	})
	ErrorProfileSaveFail = NewError(40002, lang{
		en:    "Failed to save profile",
		zh_cn: "个人资料保存失败",
	})
	ErrorUploadFileFailed = NewError(40003, lang{
		en:    "File upload failed",
		zh_cn: "文件上传失败",
	})
	ErrorInvalidFileExt = NewError(40004, lang{
		en:    "File type is not allowed",
		zh_cn: "文件类型不被允许",
	})
	ErrorInvalidStorageType = NewError(40005, lang{
		en:    "Unsupported storage type",
		zh_cn: "不支持的存储类型",
	})
)
