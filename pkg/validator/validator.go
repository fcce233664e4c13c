// Package validator plugs go-playground/validator into gin's binding
// layer so struct tags drive request validation.
// validator 包将 go-playground/validator 接入 gin 的参数绑定
package validator

import (
	"reflect"
	"strings"
	"sync"

	val "github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 校验结构体及结构体指针
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if reflect.Indirect(reflect.ValueOf(obj)).Kind() == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

// Engine 返回底层 validate 实例，供翻译器注册使用
func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
		// 错误消息里使用 json 字段名而不是 Go 字段名
		v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
