// Package pair 负责把无序的用户标识对规范化成稳定的查询/缓存键，
// 并在响应出口把 user1/user2 相对字段还原成调用方传入的顺序。
package pair

import (
	"regexp"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Normalized 是一次规范化的结果。
// Canonical1 <= Canonical2（字典序），Swapped 表示调用方顺序与规范顺序不同。
type Normalized struct {
	Canonical1 string
	Canonical2 string
	Swapped    bool
}

// Normalize 校验并规范化一对用户标识。
// 两个标识任一为空、含有非法字符或两者相同均视为参数错误。
func Normalize(id1, id2 string) (Normalized, error) {
	if !identifierPattern.MatchString(id1) {
		return Normalized{}, types.InvalidParameter("Invalid user identifier: user1")
	}
	if !identifierPattern.MatchString(id2) {
		return Normalized{}, types.InvalidParameter("Invalid user identifier: user2")
	}
	if id1 == id2 {
		return Normalized{}, types.InvalidParameter("user1 and user2 must differ")
	}

	if id1 <= id2 {
		return Normalized{Canonical1: id1, Canonical2: id2}, nil
	}
	return Normalized{Canonical1: id2, Canonical2: id1, Swapped: true}, nil
}

// Key 返回顺序无关的规范键，日志和缓存用它聚合同一对用户。
// Key(a, b) == Key(b, a)。
func (n Normalized) Key() string {
	return n.Canonical1 + ":" + n.Canonical2
}

// UnswapCommunication 把以规范顺序构建的交流数据还原成调用方顺序。
// swapped 为 false 时原样返回。纯函数式变换，统一在响应边界调用一次，
// 避免在编排器内部散落条件判断。
func UnswapCommunication(d *model.CommunicationData, swapped bool) *model.CommunicationData {
	if d == nil || !swapped {
		return d
	}

	d.User1, d.User2 = d.User2, d.User1
	if d.Stats != nil {
		d.Stats.User1Messages, d.Stats.User2Messages = d.Stats.User2Messages, d.Stats.User1Messages
	}
	for _, c := range d.SharedConversations {
		c.User1Messages, c.User2Messages = c.User2Messages, c.User1Messages
	}
	return d
}

// UnswapAggregated 对聚合指标做同样的顺序还原。
func UnswapAggregated(m *model.AggregatedMetrics, swapped bool) *model.AggregatedMetrics {
	if m == nil || !swapped {
		return m
	}
	if m.TalkListenRatio != nil {
		m.TalkListenRatio.User1, m.TalkListenRatio.User2 = m.TalkListenRatio.User2, m.TalkListenRatio.User1
	}
	return m
}
