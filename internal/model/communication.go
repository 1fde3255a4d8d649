package model

// TimelineEntry 是双人共享时间线中的一条消息。
// 同一响应内按 occurredAt 排序，时间戳相同的按 messageId 升序兜底，
// 保证相同过滤条件下的重复请求顺序稳定。
type TimelineEntry struct {
	MessageID         string `json:"messageId" mapstructure:"messageId"`
	SenderID          string `json:"senderId" mapstructure:"senderId"`
	Content           string `json:"content" mapstructure:"content"`
	OccurredAt        string `json:"occurredAt" mapstructure:"occurredAt"`
	ConversationID    string `json:"conversationId" mapstructure:"conversationId"`
	ConversationTitle string `json:"conversationTitle,omitempty" mapstructure:"conversationTitle"`
}

// SharedConversation 是两位用户共同参与的会话及各自的发言量。
type SharedConversation struct {
	ID               string `json:"id" mapstructure:"id"`
	Title            string `json:"title,omitempty" mapstructure:"title"`
	Kind             string `json:"kind" mapstructure:"kind"`
	ParticipantCount int64  `json:"participantCount" mapstructure:"participantCount"`
	User1Messages    int64  `json:"user1Messages" mapstructure:"user1Messages"`
	User2Messages    int64  `json:"user2Messages" mapstructure:"user2Messages"`
	LastMessageAt    string `json:"lastMessageAt,omitempty" mapstructure:"lastMessageAt"`
}

// CommunicationStats 是双人交流的汇总统计。
// 只统计这两位用户发出的消息，其他参与者的消息不计入，
// 因此 User1Messages + User2Messages == TotalMessages。
type CommunicationStats struct {
	TotalSharedConversations int64  `json:"totalSharedConversations" mapstructure:"totalSharedConversations"`
	TotalMessages            int64  `json:"totalMessages" mapstructure:"totalMessages"`
	User1Messages            int64  `json:"user1Messages" mapstructure:"user1Messages"`
	User2Messages            int64  `json:"user2Messages" mapstructure:"user2Messages"`
	FirstInteraction         string `json:"firstInteraction,omitempty" mapstructure:"firstInteraction"`
	LastInteraction          string `json:"lastInteraction,omitempty" mapstructure:"lastInteraction"`
}

// CommunicationData 是交流分析端点的完整响应。
// User1/User2 以及所有 user1/user2 相对字段均以调用方传入的顺序呈现。
type CommunicationData struct {
	User1               *User                 `json:"user1"`
	User2               *User                 `json:"user2"`
	SharedConversations []*SharedConversation `json:"sharedConversations"`
	Messages            []*TimelineEntry      `json:"messages"`
	Stats               *CommunicationStats   `json:"stats"`
	Pagination          *Pagination           `json:"pagination"`
}

// FrequencyPoint 是按日/周/月聚合的消息量。
type FrequencyPoint struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

// ResponseBand 是一个响应耗时区间及落入其中的次数。
type ResponseBand struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ResponseTimeStats 描述双方互相回复的耗时分布。
type ResponseTimeStats struct {
	Bands         []ResponseBand `json:"bands"`
	MeanSeconds   float64        `json:"meanSeconds"`
	MedianSeconds float64        `json:"medianSeconds"`
}

// HeatmapCell 是活跃热力图中的一格，Day 0=周日..6=周六,Hour 0-23。
// 只输出非空的格子，消费方将缺失格子视为 0。
type HeatmapCell struct {
	Day   int   `json:"day"`
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// ParticipantShare 是一方在总消息量中的占比。
type ParticipantShare struct {
	UserID   string  `json:"userId"`
	Messages int64   `json:"messages"`
	Percent  float64 `json:"percent"`
}

// TalkListenRatio 描述双方的发言/倾听比。总量为零时双方各记 50%。
type TalkListenRatio struct {
	User1 ParticipantShare `json:"user1"`
	User2 ParticipantShare `json:"user2"`
}

// ConversationTypeStat 是共享会话按类型的分布。
type ConversationTypeStat struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

// AggregatedMetrics 是聚合分析端点的响应。
// 各字段相互独立，均由同一份过滤后的消息集合计算得出。
type AggregatedMetrics struct {
	Frequency         []FrequencyPoint       `json:"frequency"`
	ResponseTime      *ResponseTimeStats     `json:"responseTime"`
	ActivityHeatmap   []HeatmapCell          `json:"activityHeatmap"`
	TalkListenRatio   *TalkListenRatio       `json:"talkListenRatio"`
	ConversationTypes []ConversationTypeStat `json:"conversationTypes"`
}
