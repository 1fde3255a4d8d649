package repo

import (
	"context"

	"github.com/mirekli/commgraph/internal/coerce"
	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
)

// GetDashboard 获取总览计数。三类节点的计数在一条查询里完成。
func (r *Repository) GetDashboard(ctx context.Context) (*model.DashboardData, error) {
	cypher := `
		OPTIONAL MATCH (u:User)
		WITH count(u) AS totalUsers
		OPTIONAL MATCH (c:Conversation)
		WITH totalUsers, count(c) AS totalConversations
		OPTIONAL MATCH (m:Message)
		RETURN totalUsers, totalConversations,
		       count(m) AS totalMessages, max(m.createdAt) AS lastActivityAt`

	records, err := r.readRecords(ctx, "dashboard", cypher, nil)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, types.QueryFailed("dashboard", errRequiredRecordMissing)
	}

	m := coerce.Map(records[0].AsMap())
	data := &model.DashboardData{}
	if n, ok := m["totalUsers"].(int64); ok {
		data.TotalUsers = n
	}
	if n, ok := m["totalConversations"].(int64); ok {
		data.TotalConversations = n
	}
	if n, ok := m["totalMessages"].(int64); ok {
		data.TotalMessages = n
	}
	if s, ok := m["lastActivityAt"].(string); ok {
		data.LastActivityAt = s
	}
	return data, nil
}
