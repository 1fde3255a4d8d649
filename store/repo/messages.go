package repo

import (
	"context"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
	"golang.org/x/sync/errgroup"
)

// GetConversationMessages 获取单个会话内的消息页。
// 会话不存在时返回 ErrConversationNotFound，而不是空列表。
func (r *Repository) GetConversationMessages(ctx context.Context, q types.ConversationMessageQuery) (*model.MessageList, error) {
	exists, err := r.readCount(ctx, "messages.convCheck",
		"MATCH (c:Conversation {id: $id}) RETURN count(c) AS total",
		map[string]any{"id": q.ConversationID})
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, types.ErrConversationNotFound
	}

	where, params := buildMessageTypeFilter(q.MessageType)
	params["id"] = q.ConversationID

	countCypher := "MATCH (m:Message)-[:POSTED_IN]->(c:Conversation {id: $id})" + where +
		" RETURN count(m) AS total"

	pageCypher := "MATCH (m:Message)-[:POSTED_IN]->(c:Conversation {id: $id})" + where + `
		OPTIONAL MATCH (s:User)-[:SENT]->(m)
		RETURN m.id AS id, s.id AS senderId, m.content AS content,
		       m.type AS type, m.createdAt AS createdAt
		ORDER BY m.createdAt DESC, m.id ASC
		SKIP $skip LIMIT $limit`

	pageParams := cloneParams(params)
	pageParams["skip"] = q.Offset
	pageParams["limit"] = q.Limit

	var (
		total int64
		msgs  []*model.Message
		g     errgroup.Group
	)

	g.Go(func() error {
		n, err := r.readCount(ctx, "messages.count", countCypher, params)
		if err != nil {
			return err
		}
		total = n
		return nil
	})

	g.Go(func() error {
		records, err := r.readRecords(ctx, "messages.page", pageCypher, pageParams)
		if err != nil {
			return err
		}
		out := make([]*model.Message, 0, len(records))
		for _, rec := range records {
			var m model.Message
			if err := decodeRecord("messages.page", rec, &m); err != nil {
				return err
			}
			out = append(out, &m)
		}
		msgs = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.MessageList{Messages: msgs, Pagination: &model.Pagination{Total: total}}, nil
}

// buildMessageTypeFilter 构造消息类型过滤子句。
// "all" 或空值从查询里彻底去掉该谓词和参数，而不是塞一个哨兵值。
func buildMessageTypeFilter(messageType string) (string, map[string]any) {
	params := map[string]any{}
	if messageType == "" || messageType == "all" {
		return "", params
	}
	params["messageType"] = messageType
	return " WHERE m.type = $messageType", params
}
