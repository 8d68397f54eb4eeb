package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 服务层统一的错误分类，处理器据此选择响应码
var (
	ErrNotFound           = errors.New("租约不存在或无权访问")
	ErrForbidden          = errors.New("无权限操作该租约")
	ErrConflict           = errors.New("租约已分享给该用户")
	ErrLeaseExpired       = errors.New("租约已过期")
	ErrInvalidToken       = errors.New("分享令牌格式无效")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailTaken         = errors.New("邮箱已存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 携带所有未通过校验的字段，而不只是第一个
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "验证失败: " + strings.Join(parts, "; ")
}

// newValidationError 把 validator 的错误转成字段级错误列表
func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "必填字段"
	case "email":
		return "邮箱格式不正确"
	case "gt":
		return fmt.Sprintf("必须大于 %s", fe.Param())
	case "gte":
		return fmt.Sprintf("不能小于 %s", fe.Param())
	case "min":
		return fmt.Sprintf("长度不能小于 %s", fe.Param())
	case "max":
		return fmt.Sprintf("长度不能大于 %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("必须是 %s 之一", strings.ReplaceAll(fe.Param(), " ", " / "))
	default:
		return "无效的值"
	}
}
