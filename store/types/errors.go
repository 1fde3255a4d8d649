package types

import "errors"

// 哨兵错误值。store 层用它们区分错误类别，transport 层据此选择 HTTP 状态码。
var (
	// ErrUserNotFound 表示引用的用户在图库中不存在。
	ErrUserNotFound = errors.New("user not found")

	// ErrConversationNotFound 表示引用的会话在图库中不存在。
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrUpstreamUnavailable 表示在执行任何查询之前，图库连接检查已经失败。
	ErrUpstreamUnavailable = errors.New("database connection failed")
)

// ParameterError 表示请求输入非法（页码、条数、日期、标识符或粒度）。
// Msg 直接作为响应里的 error 字段返回，必须点名具体参数。
type ParameterError struct {
	Msg string
}

func (e *ParameterError) Error() string { return e.Msg }

// InvalidParameter 构造一个参数错误。
func InvalidParameter(msg string) error {
	return &ParameterError{Msg: msg}
}

// QueryError 表示查询已发出但图库返回了错误，或返回了结构异常的结果
// （例如要求恰好一条记录却得到空记录集）。
type QueryError struct {
	Op    string // 失败的操作名，用于日志定位
	Cause error  // 原始原因，可能为 nil（非错误类型的拒绝值）
}

func (e *QueryError) Error() string {
	if e.Cause == nil {
		return e.Op + ": query failed"
	}
	return e.Op + ": query failed: " + e.Cause.Error()
}

func (e *QueryError) Unwrap() error { return e.Cause }

// QueryFailed 构造一个查询失败错误。
func QueryFailed(op string, cause error) error {
	return &QueryError{Op: op, Cause: cause}
}
