package repo

import (
	"context"
	"time"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
	"golang.org/x/sync/errgroup"
)

// pairMatch 是双人共享会话的基础匹配。所有交流分析子查询共用它。
const pairMatch = `MATCH (u1:User {id: $user1})-[:PARTICIPATES_IN]->(c:Conversation)<-[:PARTICIPATES_IN]-(u2:User {id: $user2})`

// GetCommunicationData 编排一次双人交流分析：双方档案、共享会话、
// 消息时间线窗口和汇总统计。四组子查询互相独立，档案确认之后并发执行，
// 任一失败则整体失败，不提供部分降级结果。
// 传入的 User1/User2 必须已经是规范顺序。
func (r *Repository) GetCommunicationData(ctx context.Context, q types.CommunicationQuery) (*model.CommunicationData, error) {
	user1, user2, err := r.getPairProfiles(ctx, q.User1, q.User2)
	if err != nil {
		return nil, err
	}

	where, params := buildPairMessageFilter(q)

	var (
		shared  []*model.SharedConversation
		entries []*model.TimelineEntry
		total   int64
		stats   *model.CommunicationStats
		g       errgroup.Group
	)

	g.Go(func() error {
		out, err := r.getSharedConversations(ctx, q.User1, q.User2)
		if err != nil {
			return err
		}
		shared = out
		return nil
	})

	g.Go(func() error {
		countCypher := pairMatch + `
			MATCH (s:User)-[:SENT]->(m:Message)-[:POSTED_IN]->(c)
			` + where + `
			RETURN count(m) AS total`
		n, err := r.readCount(ctx, "communication.count", countCypher, params)
		if err != nil {
			return err
		}
		total = n
		return nil
	})

	g.Go(func() error {
		// 先排序取窗口，再投影会话标题，避免深页付出全量代价
		pageCypher := pairMatch + `
			MATCH (s:User)-[:SENT]->(m:Message)-[:POSTED_IN]->(c)
			` + where + `
			WITH m, s, c
			ORDER BY m.createdAt DESC, m.id ASC
			SKIP $skip LIMIT $limit
			RETURN m.id AS messageId, s.id AS senderId, m.content AS content,
			       m.createdAt AS occurredAt, c.id AS conversationId,
			       c.title AS conversationTitle`
		pageParams := cloneParams(params)
		pageParams["skip"] = q.Offset
		pageParams["limit"] = q.Limit

		records, err := r.readRecords(ctx, "communication.page", pageCypher, pageParams)
		if err != nil {
			return err
		}
		out := make([]*model.TimelineEntry, 0, len(records))
		for _, rec := range records {
			var e model.TimelineEntry
			if err := decodeRecord("communication.page", rec, &e); err != nil {
				return err
			}
			out = append(out, &e)
		}
		entries = out
		return nil
	})

	g.Go(func() error {
		out, err := r.getCommunicationStats(ctx, q, where, params)
		if err != nil {
			return err
		}
		stats = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.CommunicationData{
		User1:               user1,
		User2:               user2,
		SharedConversations: shared,
		Messages:            entries,
		Stats:               stats,
		Pagination:          &model.Pagination{Total: total},
	}, nil
}

// getPairProfiles 一次取回双方档案。任一标识无对应用户即 ErrUserNotFound。
func (r *Repository) getPairProfiles(ctx context.Context, id1, id2 string) (*model.User, *model.User, error) {
	cypher := `
		MATCH (u:User)
		WHERE u.id IN [$user1, $user2]
		RETURN u.id AS id, u.name AS name, u.email AS email, u.avatarUrl AS avatarUrl`

	records, err := r.readRecords(ctx, "communication.profiles", cypher,
		map[string]any{"user1": id1, "user2": id2})
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, types.ErrUserNotFound
	}

	var user1, user2 *model.User
	for _, rec := range records {
		var u model.User
		if err := decodeRecord("communication.profiles", rec, &u); err != nil {
			return nil, nil, err
		}
		switch u.ID {
		case id1:
			user1 = &u
		case id2:
			user2 = &u
		}
	}
	if user1 == nil || user2 == nil {
		return nil, nil, types.ErrUserNotFound
	}
	return user1, user2, nil
}

// getSharedConversations 取回双方共同参与的会话及各自的发言量。
// 参与者计数在会话集合收敛之后才展开。
func (r *Repository) getSharedConversations(ctx context.Context, id1, id2 string) ([]*model.SharedConversation, error) {
	cypher := pairMatch + `
		OPTIONAL MATCH (s:User)-[:SENT]->(m:Message)-[:POSTED_IN]->(c)
		WHERE s.id IN [$user1, $user2]
		WITH c,
		     sum(CASE WHEN s.id = $user1 THEN 1 ELSE 0 END) AS user1Messages,
		     sum(CASE WHEN s.id = $user2 THEN 1 ELSE 0 END) AS user2Messages
		OPTIONAL MATCH (p:User)-[:PARTICIPATES_IN]->(c)
		RETURN c.id AS id, c.title AS title, c.kind AS kind,
		       count(DISTINCT p) AS participantCount,
		       user1Messages, user2Messages,
		       c.lastMessageAt AS lastMessageAt
		ORDER BY lastMessageAt DESC, id ASC`

	records, err := r.readRecords(ctx, "communication.shared", cypher,
		map[string]any{"user1": id1, "user2": id2})
	if err != nil {
		return nil, err
	}

	out := make([]*model.SharedConversation, 0, len(records))
	for _, rec := range records {
		var c model.SharedConversation
		if err := decodeRecord("communication.shared", rec, &c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, nil
}

// getCommunicationStats 取回汇总统计。只统计这两位用户发出的消息。
func (r *Repository) getCommunicationStats(ctx context.Context, q types.CommunicationQuery, where string, params map[string]any) (*model.CommunicationStats, error) {
	cypher := pairMatch + `
		OPTIONAL MATCH (s:User)-[:SENT]->(m:Message)-[:POSTED_IN]->(c)
		` + where + `
		RETURN count(DISTINCT c) AS totalSharedConversations,
		       count(m) AS totalMessages,
		       sum(CASE WHEN s.id = $user1 THEN 1 ELSE 0 END) AS user1Messages,
		       sum(CASE WHEN s.id = $user2 THEN 1 ELSE 0 END) AS user2Messages,
		       min(m.createdAt) AS firstInteraction,
		       max(m.createdAt) AS lastInteraction`

	records, err := r.readRecords(ctx, "communication.stats", cypher, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, types.QueryFailed("communication.stats", errRequiredRecordMissing)
	}

	var stats model.CommunicationStats
	if err := decodeRecord("communication.stats", records[0], &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// buildPairMessageFilter 构造交流分析的消息谓词。
// 条件不成立的过滤项从查询里彻底消失，对应参数也不会出现。
func buildPairMessageFilter(q types.CommunicationQuery) (string, map[string]any) {
	return buildPairFilterParts(q.User1, q.User2, q.ConversationID, q.DateFrom, q.DateTo)
}

func buildPairFilterParts(user1, user2, conversationID string, from, to time.Time) (string, map[string]any) {
	params := map[string]any{"user1": user1, "user2": user2}
	where := "WHERE s.id IN [$user1, $user2]"

	if conversationID != "" {
		where += " AND c.id = $conversationId"
		params["conversationId"] = conversationID
	}
	if !from.IsZero() {
		where += " AND m.createdAt >= $dateFrom"
		params["dateFrom"] = from
	}
	if !to.IsZero() {
		where += " AND m.createdAt <= $dateTo"
		params["dateTo"] = to
	}
	return where, params
}
