// Package application 各用例包共用的事务接口和请求体校验
package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// Transactor 事务执行器，由*mysql.TxManager实现
// fn返回错误或panic时整个事务回滚
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Field 必填字段
type Field struct {
	Name  string
	Value string
}

// Required 空白字段按传入顺序列在错误信息中，例如"BookID and Title are required"
func Required(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return apperrors.MissingFields(missing...)
	}
	return nil
}

// ParseDate 请求体中的可选日期字段，空串返回nil，格式错误返回422
func ParseDate(field, value string) (*time.Time, error) {
	t, err := query.ParseDate(field, value)
	if err != nil {
		var de *query.DateError
		if errors.As(err, &de) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidDate, de.Error())
		}
		return nil, err
	}
	return t, nil
}

// ParseDatePtr 用于部分更新：nil表示不修改，changed=false
func ParseDatePtr(field string, value *string) (t *time.Time, changed bool, err error) {
	if value == nil {
		return nil, false, nil
	}
	t, err = ParseDate(field, *value)
	return t, err == nil, err
}

// Limit 排行榜类接口的条数，缺省或小于1时取def，最大upper
func Limit(n *int, def, upper int) int {
	if n == nil || *n < 1 {
		return def
	}
	if *n > upper {
		return upper
	}
	return *n
}

// Exister 按主键判断是否存在，各仓储的Exists方法都满足
type Exister interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Reference 外键字段校验：id为空时跳过，引用不存在时返回400
// 例如 Reference(ctx, publishers, "PubID", "P9") → "PubID 'P9' does not exist"
func Reference(ctx context.Context, repo Exister, field, id string) error {
	if id == "" {
		return nil
	}
	ok, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Newf(apperrors.ErrCodeUnknownReference, "%s '%s' does not exist", field, id)
	}
	return nil
}
