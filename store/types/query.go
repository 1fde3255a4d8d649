package types

import "time"

// UserQuery 封装了查询用户列表的参数
type UserQuery struct {
	Keyword string
	Limit   int
	Offset  int
}

// ConversationQuery 封装了查询会话列表的参数
type ConversationQuery struct {
	Kind   string // direct / group，空值表示不限
	Limit  int
	Offset int
}

// ConversationMessageQuery 封装了查询单个会话消息的参数
type ConversationMessageQuery struct {
	ConversationID string
	MessageType    string // 消息类型筛选，"all" 或空值表示不限
	Limit          int
	Offset         int
}

// CommunicationQuery 封装了双人交流分析的参数。
// User1/User2 必须已经是规范化（字典序）后的标识。
type CommunicationQuery struct {
	User1          string
	User2          string
	ConversationID string // 可选：限定某个共享会话
	DateFrom       time.Time
	DateTo         time.Time
	Limit          int
	Offset         int
}

// AggregationQuery 封装了聚合指标计算的参数。
type AggregationQuery struct {
	User1       string
	User2       string
	Granularity string // daily / weekly / monthly
	DateFrom    time.Time
	DateTo      time.Time
}
