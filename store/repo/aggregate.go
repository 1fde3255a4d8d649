package repo

import (
	"context"
	"sort"
	"time"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
	"golang.org/x/sync/errgroup"
)

// responseBandBounds 是响应耗时分布的固定区间上界（秒），
// 与 responseBandLabels 一一对应，最后一个区间无上界。
var (
	responseBandBounds = []float64{60, 300, 900, 1800, 3600, 7200, 21600}
	responseBandLabels = []string{
		"<1 min", "1-5 min", "5-15 min", "15-30 min",
		"30-60 min", "1-2 hrs", "2-6 hrs", ">6 hrs",
	}
)

// GetAggregatedCommunicationData 计算双人交流的聚合指标。
// 五项指标由同一份过滤后的消息集合独立算出，互不依赖中间结果，
// 并发执行；任一失败则整体失败。粒度在边界层已校验。
func (r *Repository) GetAggregatedCommunicationData(ctx context.Context, q types.AggregationQuery) (*model.AggregatedMetrics, error) {
	if _, _, err := r.getPairProfiles(ctx, q.User1, q.User2); err != nil {
		return nil, err
	}

	where, params := buildPairFilterParts(q.User1, q.User2, "", q.DateFrom, q.DateTo)

	out := &model.AggregatedMetrics{}
	var g errgroup.Group

	g.Go(func() error {
		freq, err := r.getMessageFrequency(ctx, q.Granularity, where, params)
		if err != nil {
			return err
		}
		out.Frequency = freq
		return nil
	})

	g.Go(func() error {
		stats, err := r.getResponseTimeStats(ctx, where, params)
		if err != nil {
			return err
		}
		out.ResponseTime = stats
		return nil
	})

	g.Go(func() error {
		cells, err := r.getActivityHeatmap(ctx, where, params)
		if err != nil {
			return err
		}
		out.ActivityHeatmap = cells
		return nil
	})

	g.Go(func() error {
		ratio, err := r.getTalkListenRatio(ctx, q.User1, q.User2, where, params)
		if err != nil {
			return err
		}
		out.TalkListenRatio = ratio
		return nil
	})

	g.Go(func() error {
		kinds, err := r.getConversationTypes(ctx, q.User1, q.User2)
		if err != nil {
			return err
		}
		out.ConversationTypes = kinds
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// frequencyCypher 构造频次聚合查询。时间戳先换算到 UTC 再截断，
// 桶边界锚定 UTC 日历单位，与存储时自带的时区偏移无关。
func frequencyCypher(where string) string {
	return pairMatch + `
		MATCH (s:User)-[:SENT]->(m:Message)-[:POSTED_IN]->(c)
		` + where + `
		WITH datetime({epochMillis: m.createdAt.epochMillis}) AS utc
		WITH date(datetime.truncate($unit, utc)) AS bucket
		RETURN bucket, count(*) AS count
		ORDER BY bucket ASC`
}

// getMessageFrequency 按日/周/月聚合消息量。
func (r *Repository) getMessageFrequency(ctx context.Context, granularity, where string, params map[string]any) ([]model.FrequencyPoint, error) {
	cypher := frequencyCypher(where)

	p := cloneParams(params)
	p["unit"] = truncateUnit(granularity)

	records, err := r.readRecords(ctx, "aggregate.frequency", cypher, p)
	if err != nil {
		return nil, err
	}

	points := make([]model.FrequencyPoint, 0, len(records))
	for _, rec := range records {
		var pt model.FrequencyPoint
		if err := decodeRecord("aggregate.frequency", rec, &pt); err != nil {
			return nil, err
		}
		points = append(points, pt)
	}
	return points, nil
}

// getResponseTimeStats 取回按时间升序的发送序列，在内存中计算响应耗时。
func (r *Repository) getResponseTimeStats(ctx context.Context, where string, params map[string]any) (*model.ResponseTimeStats, error) {
	cypher := pairMatch + `
		MATCH (s:User)-[:SENT]->(m:Message)-[:POSTED_IN]->(c)
		` + where + `
		RETURN s.id AS senderId, m.createdAt AS occurredAt
		ORDER BY m.createdAt ASC, m.id ASC`

	records, err := r.readRecords(ctx, "aggregate.responseTime", cypher, params)
	if err != nil {
		return nil, err
	}

	events := make([]pairEvent, 0, len(records))
	for _, rec := range records {
		sender, _ := rec.Get("senderId")
		at, _ := rec.Get("occurredAt")
		senderID, ok1 := sender.(string)
		occurredAt, ok2 := at.(time.Time)
		if !ok1 || !ok2 {
			continue
		}
		events = append(events, pairEvent{SenderID: senderID, At: occurredAt})
	}

	return computeResponseStats(events), nil
}

// heatmapCypher 构造热力图聚合查询。与频次聚合一样先换算到 UTC，
// 星期和小时都从 UTC 时刻读出。
func heatmapCypher(where string) string {
	return pairMatch + `
		MATCH (s:User)-[:SENT]->(m:Message)-[:POSTED_IN]->(c)
		` + where + `
		WITH datetime({epochMillis: m.createdAt.epochMillis}) AS utc
		RETURN utc.dayOfWeek AS dow, utc.hour AS hour, count(*) AS count`
}

// getActivityHeatmap 按 (星期, 小时) 聚合消息量，只返回非空格子。
func (r *Repository) getActivityHeatmap(ctx context.Context, where string, params map[string]any) ([]model.HeatmapCell, error) {
	records, err := r.readRecords(ctx, "aggregate.heatmap", heatmapCypher(where), params)
	if err != nil {
		return nil, err
	}

	cells := make([]model.HeatmapCell, 0, len(records))
	for _, rec := range records {
		dow, _ := rec.Get("dow")
		hour, _ := rec.Get("hour")
		count, _ := rec.Get("count")
		d, ok1 := dow.(int64)
		h, ok2 := hour.(int64)
		n, ok3 := count.(int64)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		cells = append(cells, model.HeatmapCell{
			// 图库星期为 1=周一..7=周日，对外统一 0=周日..6=周六
			Day:   int(d % 7),
			Hour:  int(h),
			Count: n,
		})
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Day != cells[j].Day {
			return cells[i].Day < cells[j].Day
		}
		return cells[i].Hour < cells[j].Hour
	})
	return cells, nil
}

// getTalkListenRatio 统计双方发言量并计算占比。
func (r *Repository) getTalkListenRatio(ctx context.Context, id1, id2, where string, params map[string]any) (*model.TalkListenRatio, error) {
	cypher := pairMatch + `
		OPTIONAL MATCH (s:User)-[:SENT]->(m:Message)-[:POSTED_IN]->(c)
		` + where + `
		RETURN sum(CASE WHEN s.id = $user1 THEN 1 ELSE 0 END) AS user1Count,
		       sum(CASE WHEN s.id = $user2 THEN 1 ELSE 0 END) AS user2Count`

	records, err := r.readRecords(ctx, "aggregate.talkListen", cypher, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, types.QueryFailed("aggregate.talkListen", errRequiredRecordMissing)
	}

	c1, _ := records[0].Get("user1Count")
	c2, _ := records[0].Get("user2Count")
	n1, _ := c1.(int64)
	n2, _ := c2.(int64)

	return computeTalkListen(id1, id2, n1, n2), nil
}

// getConversationTypes 统计共享会话按类型的分布。
func (r *Repository) getConversationTypes(ctx context.Context, id1, id2 string) ([]model.ConversationTypeStat, error) {
	cypher := pairMatch + `
		RETURN c.kind AS kind, count(DISTINCT c) AS count
		ORDER BY count DESC, kind ASC`

	records, err := r.readRecords(ctx, "aggregate.conversationTypes", cypher,
		map[string]any{"user1": id1, "user2": id2})
	if err != nil {
		return nil, err
	}

	out := make([]model.ConversationTypeStat, 0, len(records))
	for _, rec := range records {
		var s model.ConversationTypeStat
		if err := decodeRecord("aggregate.conversationTypes", rec, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// truncateUnit 把对外的粒度名映射为图库的截断单位。
// 粒度在边界层已经过校验，这里只做纯映射。
func truncateUnit(granularity string) string {
	switch granularity {
	case "weekly":
		return "week"
	case "monthly":
		return "month"
	default:
		return "day"
	}
}

// pairEvent 是时间线上的一次发送事件。
type pairEvent struct {
	SenderID string
	At       time.Time
}

// computeResponseStats 由升序事件序列计算响应耗时分布。
// 一次"响应"是发送方发生切换的相邻两条消息之间的间隔。
func computeResponseStats(events []pairEvent) *model.ResponseTimeStats {
	var elapsed []float64
	for i := 1; i < len(events); i++ {
		if events[i].SenderID == events[i-1].SenderID {
			continue
		}
		delta := events[i].At.Sub(events[i-1].At).Seconds()
		if delta < 0 {
			continue
		}
		elapsed = append(elapsed, delta)
	}

	stats := &model.ResponseTimeStats{
		Bands: make([]model.ResponseBand, len(responseBandLabels)),
	}
	for i, label := range responseBandLabels {
		stats.Bands[i].Label = label
	}

	if len(elapsed) == 0 {
		return stats
	}

	sum := 0.0
	for _, d := range elapsed {
		stats.Bands[bandIndex(d)].Count++
		sum += d
	}
	stats.MeanSeconds = sum / float64(len(elapsed))

	sorted := append([]float64(nil), elapsed...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.MedianSeconds = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.MedianSeconds = sorted[mid]
	}
	return stats
}

// bandIndex 返回耗时落入的区间下标。
func bandIndex(seconds float64) int {
	for i, bound := range responseBandBounds {
		if seconds < bound {
			return i
		}
	}
	return len(responseBandBounds)
}

// computeTalkListen 计算发言/倾听占比，总量为零时双方各 50%，绝不除零。
func computeTalkListen(id1, id2 string, count1, count2 int64) *model.TalkListenRatio {
	total := count1 + count2
	ratio := &model.TalkListenRatio{
		User1: model.ParticipantShare{UserID: id1, Messages: count1, Percent: 50},
		User2: model.ParticipantShare{UserID: id2, Messages: count2, Percent: 50},
	}
	if total == 0 {
		return ratio
	}
	ratio.User1.Percent = float64(count1) / float64(total) * 100
	ratio.User2.Percent = float64(count2) / float64(total) * 100
	return ratio
}
