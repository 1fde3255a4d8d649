package repo

import (
	"context"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
	"golang.org/x/sync/errgroup"
)

// GetConversations 获取会话列表及总数。
// 窗口查询先对基础匹配做 SKIP/LIMIT，之后才展开参与者数和消息数的
// 逐行聚合，保证翻到第 10 万页的代价是 O(limit) 而不是 O(total)。
func (r *Repository) GetConversations(ctx context.Context, q types.ConversationQuery) (*model.ConversationList, error) {
	where, params := buildConversationFilter(q.Kind)

	countCypher := "MATCH (c:Conversation)" + where + " RETURN count(c) AS total"
	pageCypher := conversationPageCypher(where)

	pageParams := cloneParams(params)
	pageParams["skip"] = q.Offset
	pageParams["limit"] = q.Limit

	var (
		total int64
		convs []*model.Conversation
		g     errgroup.Group
	)

	g.Go(func() error {
		n, err := r.readCount(ctx, "conversations.count", countCypher, params)
		if err != nil {
			return err
		}
		total = n
		return nil
	})

	g.Go(func() error {
		records, err := r.readRecords(ctx, "conversations.page", pageCypher, pageParams)
		if err != nil {
			return err
		}
		out := make([]*model.Conversation, 0, len(records))
		for _, rec := range records {
			var c model.Conversation
			if err := decodeRecord("conversations.page", rec, &c); err != nil {
				return err
			}
			out = append(out, &c)
		}
		convs = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.ConversationList{Conversations: convs, Pagination: &model.Pagination{Total: total}}, nil
}

// GetConversationByID 按标识获取单个会话，不存在时返回 ErrConversationNotFound。
func (r *Repository) GetConversationByID(ctx context.Context, id string) (*model.Conversation, error) {
	cypher := `
		MATCH (c:Conversation {id: $id})
		OPTIONAL MATCH (p:User)-[:PARTICIPATES_IN]->(c)
		WITH c, count(DISTINCT p) AS participantCount
		OPTIONAL MATCH (m:Message)-[:POSTED_IN]->(c)
		RETURN c.id AS id, c.title AS title, c.kind AS kind,
		       participantCount, count(m) AS messageCount,
		       c.lastMessageAt AS lastMessageAt`

	records, err := r.readRecords(ctx, "conversations.byID", cypher, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, types.ErrConversationNotFound
	}

	var c model.Conversation
	if err := decodeRecord("conversations.byID", records[0], &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// conversationPageCypher 构造窗口查询。SKIP/LIMIT 必须落在任何逐行聚合
// （参与者数、消息数的 OPTIONAL MATCH）之前：窗口先收敛到 limit 行，
// 聚合只对这些行展开，深页的代价才是 O(limit)。
func conversationPageCypher(where string) string {
	return "MATCH (c:Conversation)" + where + `
		WITH c
		ORDER BY c.lastMessageAt DESC, c.id ASC
		SKIP $skip LIMIT $limit
		OPTIONAL MATCH (p:User)-[:PARTICIPATES_IN]->(c)
		WITH c, count(DISTINCT p) AS participantCount
		OPTIONAL MATCH (m:Message)-[:POSTED_IN]->(c)
		RETURN c.id AS id, c.title AS title, c.kind AS kind,
		       participantCount, count(m) AS messageCount,
		       c.lastMessageAt AS lastMessageAt
		ORDER BY lastMessageAt DESC, id ASC`
}

// buildConversationFilter 构造会话类型过滤子句，空值表示不限。
func buildConversationFilter(kind string) (string, map[string]any) {
	params := map[string]any{}
	if kind == "" {
		return "", params
	}
	params["kind"] = kind
	return " WHERE c.kind = $kind", params
}
