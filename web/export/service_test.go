package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
)

// pagedStore 按 Offset/Limit 切出固定消息集的窗口，记录收到的偏移。
type pagedStore struct {
	messages []*model.TimelineEntry
	offsets  []int
}

func (p *pagedStore) GetCommunicationData(ctx context.Context, q types.CommunicationQuery) (*model.CommunicationData, error) {
	p.offsets = append(p.offsets, q.Offset)

	start := q.Offset
	if start > len(p.messages) {
		start = len(p.messages)
	}
	end := start + q.Limit
	if end > len(p.messages) {
		end = len(p.messages)
	}

	return &model.CommunicationData{
		Messages:   p.messages[start:end],
		Pagination: &model.Pagination{Total: int64(len(p.messages))},
	}, nil
}

func (p *pagedStore) GetUsers(ctx context.Context, q types.UserQuery) (*model.UserList, error) {
	return nil, nil
}
func (p *pagedStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return nil, nil
}
func (p *pagedStore) GetConversations(ctx context.Context, q types.ConversationQuery) (*model.ConversationList, error) {
	return nil, nil
}
func (p *pagedStore) GetConversationByID(ctx context.Context, id string) (*model.Conversation, error) {
	return nil, nil
}
func (p *pagedStore) GetConversationMessages(ctx context.Context, q types.ConversationMessageQuery) (*model.MessageList, error) {
	return nil, nil
}
func (p *pagedStore) GetAggregatedCommunicationData(ctx context.Context, q types.AggregationQuery) (*model.AggregatedMetrics, error) {
	return nil, nil
}
func (p *pagedStore) GetDashboard(ctx context.Context) (*model.DashboardData, error) {
	return nil, nil
}
func (p *pagedStore) Ping(ctx context.Context) error  { return nil }
func (p *pagedStore) Close(ctx context.Context) error { return nil }

func timelineFixture(n int) []*model.TimelineEntry {
	out := make([]*model.TimelineEntry, n)
	for i := range out {
		out[i] = &model.TimelineEntry{
			MessageID:      fmt.Sprintf("m%06d", i),
			SenderID:       "alice",
			Content:        "hi",
			OccurredAt:     "2023-06-01T10:00:00Z",
			ConversationID: "c1",
		}
	}
	return out
}

func TestTimelineCSVWalksAllPages(t *testing.T) {
	// 超过单页上限的时间线必须逐页取完, 不能静默截断
	store := &pagedStore{messages: timelineFixture(exportPageLimit + 2)}
	svc := NewService(store)

	data, err := svc.TimelineCSV(context.Background(), types.CommunicationQuery{User1: "alice", User2: "bob"})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != exportPageLimit+3 {
		t.Errorf("行数 = %d, 期望表头 + %d 行", len(lines), exportPageLimit+2)
	}
	if len(store.offsets) != 2 || store.offsets[0] != 0 || store.offsets[1] != exportPageLimit {
		t.Errorf("分页偏移 = %v, 期望 [0 %d]", store.offsets, exportPageLimit)
	}
	if !strings.Contains(lines[len(lines)-1], fmt.Sprintf("m%06d", exportPageLimit+1)) {
		t.Errorf("末行缺少最后一条消息: %s", lines[len(lines)-1])
	}
}

func TestTimelineCSVEmptyTitleFallsBackToID(t *testing.T) {
	store := &pagedStore{messages: timelineFixture(1)}
	svc := NewService(store)

	data, err := svc.TimelineCSV(context.Background(), types.CommunicationQuery{})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if !strings.Contains(string(data), ",c1") {
		t.Errorf("无标题会话应回退到会话标识:\n%s", data)
	}
}

func TestTimelineXLSX(t *testing.T) {
	store := &pagedStore{messages: timelineFixture(3)}
	svc := NewService(store)

	data, err := svc.TimelineXLSX(context.Background(), types.CommunicationQuery{})
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("产物不是合法的 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Timeline")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("行数 = %d, 期望表头 + 3 行", len(rows))
	}
	if rows[0][0] != "Message ID" {
		t.Errorf("表头 = %v", rows[0])
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("bob", "alice", "csv"); got != "communication_bob_alice.csv" {
		t.Errorf("Filename = %q", got)
	}
}
