package code

import (
	"fmt"
	"net/http"
)

// Code 业务状态码，携带双语文案与可选的附加数据
// Code is a business status code carrying bilingual messages and
// optional payload data attached by the call site.
type Code struct {
	code   int
	status bool
	Lang   lang
	// 数据
	data     interface{}
	haveData bool
	// 错误详细信息
	details     []string
	haveDetails bool
	context     string
	haveContext bool
}

var codes = map[int]string{}

// NewError registers an error code. Duplicate registration panics so
// collisions are caught at startup.
func NewError(c int, l lang) *Code {
	if _, ok := codes[c]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", c))
	}
	codes[c] = l.GetMessage()
	return &Code{code: c, status: false, Lang: l}
}

// NewSuss registers a success code.
func NewSuss(c int, l lang) *Code {
	if _, ok := codes[c]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", c))
	}
	codes[c] = l.GetMessage()
	return &Code{code: c, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本，附加数据不随副本传递
func (e *Code) Clone() *Code {
	return &Code{
		code:   e.code,
		status: e.status,
		Lang:   e.Lang,
	}
}

func (e *Code) Reset() *Code {
	e.data = nil
	e.haveData = false
	e.details = nil
	e.haveDetails = false
	e.context = ""
	e.haveContext = false
	return e
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Context() string {
	return e.context
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveContext() bool {
	return e.haveContext
}

func (e *Code) WithData(data interface{}) *Code {
	e.haveData = true
	e.data = data
	return e
}

func (e *Code) WithDetails(details ...string) *Code {
	e.haveDetails = true
	e.details = append([]string{}, details...)
	return e
}

func (e *Code) WithContext(context string) *Code {
	e.haveContext = true
	e.context = context
	return e
}

// StatusCode HTTP 层始终返回 200，业务状态由 code 字段表达
func (e *Code) StatusCode() int {
	return http.StatusOK
}
