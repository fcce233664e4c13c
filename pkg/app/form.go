package app

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin"
)

// ValidError 单个字段的校验错误
type ValidError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 拼接所有错误消息
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ", ")
}

// MapsToString 以 key=message 形式拼接，便于日志检索
func (v ValidErrors) MapsToString() string {
	var pairs []string
	for _, err := range v {
		pairs = append(pairs, err.Key+"="+err.Message)
	}
	return strings.Join(pairs, "; ")
}

// BindAndValid binds request parameters and translates validator errors
// with the translator selected by the request locale.
// BindAndValid 绑定请求参数并按请求语言翻译校验错误
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err != nil {
		verrs, isValidatorErr := err.(val.ValidationErrors)
		if !isValidatorErr {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}
		trans, ok := c.Value("trans").(ut.Translator)
		if !ok {
			for _, verr := range verrs {
				errs = append(errs, &ValidError{
					Key:     verr.Field(),
					Message: verr.Error(),
				})
			}
			return false, errs
		}
		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{
				Key:     key,
				Message: value,
			})
		}
		return false, errs
	}
	return true, nil
}
