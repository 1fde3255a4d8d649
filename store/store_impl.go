package store

import (
	"github.com/mirekli/commgraph/store/graph"
	"github.com/mirekli/commgraph/store/repo"
)

// NewStore 基于图库连接配置创建 Store 实现。
// 驱动在首次查询时才真正建立连接。
func NewStore(conf graph.Config) Store {
	return repo.New(graph.NewManager(conf))
}
