package model

// User 是图库中用户节点的只读投影。
type User struct {
	ID        string `json:"id" mapstructure:"id"`
	Name      string `json:"name" mapstructure:"name"`
	Email     string `json:"email" mapstructure:"email"`
	AvatarURL string `json:"avatarUrl,omitempty" mapstructure:"avatarUrl"`
}

// Conversation 是会话节点的只读投影。
// 时间字段在越过 store 边界前统一转换为 ISO-8601 字符串。
type Conversation struct {
	ID               string `json:"id" mapstructure:"id"`
	Title            string `json:"title,omitempty" mapstructure:"title"`
	Kind             string `json:"kind" mapstructure:"kind"` // direct | group
	ParticipantCount int64  `json:"participantCount" mapstructure:"participantCount"`
	MessageCount     int64  `json:"messageCount" mapstructure:"messageCount"`
	LastMessageAt    string `json:"lastMessageAt,omitempty" mapstructure:"lastMessageAt"`
}

// Message 是消息节点的只读投影。
type Message struct {
	ID        string `json:"id" mapstructure:"id"`
	SenderID  string `json:"senderId" mapstructure:"senderId"`
	Content   string `json:"content" mapstructure:"content"`
	Type      string `json:"type" mapstructure:"type"`
	CreatedAt string `json:"createdAt,omitempty" mapstructure:"createdAt"`
}

// Pagination 描述列表响应的分页窗口。
// 不变量: totalPages == ceil(total/limit)，且 totalPages == 0 当且仅当 total == 0。
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// UserList 是用户列表端点的响应体。
type UserList struct {
	Users      []*User     `json:"users"`
	Pagination *Pagination `json:"pagination"`
}

// ConversationList 是会话列表端点的响应体。
type ConversationList struct {
	Conversations []*Conversation `json:"conversations"`
	Pagination    *Pagination     `json:"pagination"`
}

// MessageList 是会话消息列表端点的响应体。
type MessageList struct {
	Messages   []*Message  `json:"messages"`
	Pagination *Pagination `json:"pagination"`
}

// DashboardData 是总览端点的聚合数据。
type DashboardData struct {
	TotalUsers         int64  `json:"totalUsers"`
	TotalConversations int64  `json:"totalConversations"`
	TotalMessages      int64  `json:"totalMessages"`
	LastActivityAt     string `json:"lastActivityAt,omitempty"`
}
