package store

import (
	"context"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
)

// Store 定义了数据访问的统一接口。
// 它屏蔽了底层图库的连接管理和记录格式，所有查询都是只读的。
type Store interface {
	// 用户操作
	GetUsers(ctx context.Context, query types.UserQuery) (*model.UserList, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// 会话操作
	GetConversations(ctx context.Context, query types.ConversationQuery) (*model.ConversationList, error)
	GetConversationByID(ctx context.Context, id string) (*model.Conversation, error)
	GetConversationMessages(ctx context.Context, query types.ConversationMessageQuery) (*model.MessageList, error)

	// 双人交流分析
	GetCommunicationData(ctx context.Context, query types.CommunicationQuery) (*model.CommunicationData, error)
	GetAggregatedCommunicationData(ctx context.Context, query types.AggregationQuery) (*model.AggregatedMetrics, error)

	// 总览
	GetDashboard(ctx context.Context) (*model.DashboardData, error)

	// Ping 校验图库连通性，列表端点在做任何工作之前调用
	Ping(ctx context.Context) error

	// 生命周期管理
	Close(ctx context.Context) error
}
