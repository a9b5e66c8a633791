package handler

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

var registerOnce sync.Once

// RegisterValidation 校验错误信息使用json字段名，并注册isodate规则，进程内只注册一次
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("isodate", isoDate)
	})
}

// isoDate YYYY-MM-DD，空串交给required/omitempty处理
func isoDate(fl validator.FieldLevel) bool {
	_, err := query.ParseDate(fl.FieldName(), fl.Field().String())
	return err == nil
}

// bindJSON 解析请求体
// 空请求体按空对象处理，由应用层报告缺失字段
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].Tag() == "isodate" {
			de := &query.DateError{Param: verrs[0].Field()}
			return apperrors.New(apperrors.ErrCodeInvalidDate, de.Error())
		}
		return apperrors.Validation(validationMessage(verrs[0]))
	}
	return apperrors.ErrBindError
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// =========================================
// 查询参数
// =========================================

func pageParams(c *gin.Context) query.Page {
	return query.ParsePage(c.Query("page"), c.Query("per_page"))
}

func intParam(c *gin.Context, key string) *int {
	return query.OptionalInt(c.Query(key))
}

func textParam(c *gin.Context, key string) string {
	return query.Text(c.Query(key))
}

// dateRange 解析start_date/end_date，格式错误返回422
func dateRange(c *gin.Context) (query.DateRange, error) {
	r, err := query.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		var de *query.DateError
		if errors.As(err, &de) {
			return query.DateRange{}, apperrors.New(apperrors.ErrCodeInvalidDate, de.Error())
		}
		return query.DateRange{}, apperrors.New(apperrors.ErrCodeInvalidDate, err.Error())
	}
	return r, nil
}

// idParam 自增主键路径参数，非数字按资源不存在处理
func idParam(c *gin.Context, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}

func boolParam(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}

func floatParam(c *gin.Context, key string) *float64 {
	return query.OptionalFloat(c.Query(key))
}
