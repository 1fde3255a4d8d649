package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/graph"
	"github.com/mirekli/commgraph/store/types"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

func TestCountFromRecords(t *testing.T) {
	// 零条记录：查询本身有问题，必须按查询失败处理
	_, err := countFromRecords("test.count", nil)
	if err == nil {
		t.Fatal("空记录集应返回错误")
	}
	var qe *types.QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("错误类型应为 QueryError, 实际 %T", err)
	}

	// 一条记录、计数值为 0：合法的零，与上面严格区分
	n, err := countFromRecords("test.count", []*neo4j.Record{
		{Keys: []string{"total"}, Values: []any{int64(0)}},
	})
	if err != nil {
		t.Fatalf("计数为 0 的记录不应报错: %v", err)
	}
	if n != 0 {
		t.Errorf("计数 = %d, 期望 0", n)
	}

	// 一条记录、计数值为 null：视为合法的零
	n, err = countFromRecords("test.count", []*neo4j.Record{
		{Keys: []string{"total"}, Values: []any{nil}},
	})
	if err != nil {
		t.Fatalf("计数为 null 不应报错: %v", err)
	}
	if n != 0 {
		t.Errorf("null 计数 = %d, 期望 0", n)
	}

	// 正常计数
	n, err = countFromRecords("test.count", []*neo4j.Record{
		{Keys: []string{"total"}, Values: []any{int64(30180)}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 30180 {
		t.Errorf("计数 = %d, 期望 30180", n)
	}

	// 计数值类型异常
	if _, err := countFromRecords("test.count", []*neo4j.Record{
		{Keys: []string{"total"}, Values: []any{"not-a-number"}},
	}); err == nil {
		t.Error("非整数计数值应报错")
	}
}

func TestDecodeRecord(t *testing.T) {
	at := time.Date(2023, 6, 1, 12, 30, 0, 0, time.UTC)
	rec := &neo4j.Record{
		Keys: []string{"messageId", "senderId", "content", "occurredAt", "conversationId", "conversationTitle"},
		Values: []any{
			"m1", "alice", "hello", at, "c1", nil,
		},
	}

	var e model.TimelineEntry
	if err := decodeRecord("test.decode", rec, &e); err != nil {
		t.Fatalf("decodeRecord 失败: %v", err)
	}
	if e.MessageID != "m1" || e.SenderID != "alice" || e.Content != "hello" {
		t.Errorf("解码结果不符: %+v", e)
	}
	if e.OccurredAt != "2023-06-01T12:30:00Z" {
		t.Errorf("时间字段应为 ISO 字符串: %q", e.OccurredAt)
	}
	if e.ConversationTitle != "" {
		t.Errorf("null 属性应解码为零值: %q", e.ConversationTitle)
	}
}

func TestDecodeRecord_SharedConversation(t *testing.T) {
	rec := &neo4j.Record{
		Keys: []string{"id", "title", "kind", "participantCount", "user1Messages", "user2Messages", "lastMessageAt"},
		Values: []any{
			"c1", "standup", "group", int64(5), int64(12), int64(8),
			dbtype.LocalDateTime(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)),
		},
	}

	var c model.SharedConversation
	if err := decodeRecord("test.decode", rec, &c); err != nil {
		t.Fatal(err)
	}
	if c.ParticipantCount != 5 || c.User1Messages != 12 || c.User2Messages != 8 {
		t.Errorf("计数字段解码不符: %+v", c)
	}
	if c.LastMessageAt != "2024-03-01T08:00:00" {
		t.Errorf("lastMessageAt = %q", c.LastMessageAt)
	}
}

func TestPingPreservesCause(t *testing.T) {
	// 非法 scheme 在驱动构造阶段就会失败，不依赖真实图库
	r := New(graph.NewManager(graph.Config{URI: "bogus://nowhere"}))

	err := r.Ping(context.Background())
	if err == nil {
		t.Fatal("非法连接配置应返回错误")
	}
	if !errors.Is(err, types.ErrUpstreamUnavailable) {
		t.Errorf("包装后应仍可被哨兵匹配: %v", err)
	}
	if err.Error() == types.ErrUpstreamUnavailable.Error() {
		t.Error("错误信息应保留驱动返回的原始原因")
	}
}
