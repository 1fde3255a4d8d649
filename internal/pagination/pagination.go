// Package pagination 负责由 page/limit 请求参数推导查询窗口。
//
// 同一个逻辑参数存在两套校验策略：严格端点对非法值返回参数错误，
// 宽松端点静默回退。两套策略各自独立，调用方按端点选择，不能混用。
package pagination

import (
	"strconv"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
)

// Window 是一次列表查询的窗口。Skip == (Page-1)*Limit。
type Window struct {
	Page  int
	Limit int
	Skip  int
}

// Strict 按严格策略解析分页参数。
// 页码缺省为 1，显式传入 0、负数或非数字一律拒绝；
// 条数缺省或非数字时取 defLimit，小于 1 拒绝，大于 maxLimit 静默压到 maxLimit。
func Strict(pageParam, limitParam string, defLimit, maxLimit int) (Window, error) {
	page := 1
	if pageParam != "" {
		n, err := strconv.Atoi(pageParam)
		if err != nil || n < 1 {
			return Window{}, types.InvalidParameter("Invalid page number")
		}
		page = n
	}

	limit := defLimit
	if limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		return Window{}, types.InvalidParameter("Invalid limit")
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Window{Page: page, Limit: limit, Skip: (page - 1) * limit}, nil
}

// Lenient 按宽松策略解析分页参数：非法页码回退到 1，条数下越界钳到 1，
// 上越界钳到 maxLimit。永不报错。
func Lenient(pageParam, limitParam string, defLimit, maxLimit int) Window {
	page := 1
	if n, err := strconv.Atoi(pageParam); err == nil && n >= 1 {
		page = n
	}

	limit := defLimit
	if n, err := strconv.Atoi(limitParam); err == nil {
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Window{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

// TotalPages 计算总页数 ceil(total/limit)。total 为 0 时恒为 0。
func TotalPages(total int64, limit int) int64 {
	if total <= 0 || limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// Meta 由窗口和总数构造响应里的分页块。
func (w Window) Meta(total int64) *model.Pagination {
	return &model.Pagination{
		Page:       w.Page,
		Limit:      w.Limit,
		Total:      total,
		TotalPages: TotalPages(total, w.Limit),
	}
}
