// Package repo 实现针对图库的只读查询层。
// 每个方法在自己的会话中执行，记录值先经 coerce 规范化，
// 再解码进投影结构体。
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirekli/commgraph/internal/coerce"
	"github.com/mirekli/commgraph/store/graph"
	"github.com/mirekli/commgraph/store/types"
	"github.com/mitchellh/mapstructure"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// errRequiredRecordMissing 标记"要求恰好一条记录却得到空记录集"的结构异常。
var errRequiredRecordMissing = errors.New("required record missing from result")

// Repository 通过 graph.Manager 访问图库。
type Repository struct {
	mgr *graph.Manager
}

// New 创建一个查询仓库。
func New(mgr *graph.Manager) *Repository {
	return &Repository{mgr: mgr}
}

// Ping 透传连通性检查。失败时包装哨兵错误，原始原因保留在错误链里，
// 日志侧据此区分认证失败、解析失败和拒绝连接。
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.mgr.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}
	return nil
}

// Close 释放底层驱动。
func (r *Repository) Close(ctx context.Context) error {
	return r.mgr.Close(ctx)
}

// readRecords 在一个新会话中执行只读查询并收集全部记录。
// 会话在返回前释放，包括错误路径。
func (r *Repository) readRecords(ctx context.Context, op, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session, err := r.mgr.Session(ctx)
	if err != nil {
		return nil, types.QueryFailed(op, err)
	}
	defer session.Close(ctx)

	res, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		cursor, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return cursor.Collect(ctx)
	})
	if err != nil {
		return nil, types.QueryFailed(op, err)
	}

	records, ok := res.([]*neo4j.Record)
	if !ok {
		return nil, types.QueryFailed(op, fmt.Errorf("unexpected result type %T", res))
	}
	return records, nil
}

// readCount 执行一条计数查询并返回首条记录的首个值。
func (r *Repository) readCount(ctx context.Context, op, cypher string, params map[string]any) (int64, error) {
	records, err := r.readRecords(ctx, op, cypher, params)
	if err != nil {
		return 0, err
	}
	return countFromRecords(op, records)
}

// countFromRecords 提取计数值。零条记录说明查询本身有问题，按查询失败处理；
// 有记录但值为 null 是 OPTIONAL MATCH 上空输入的 count()，视为合法的零。
func countFromRecords(op string, records []*neo4j.Record) (int64, error) {
	if len(records) == 0 {
		return 0, types.QueryFailed(op, errors.New("count query returned no records"))
	}
	if len(records[0].Values) == 0 {
		return 0, types.QueryFailed(op, errors.New("count record has no values"))
	}
	switch n := records[0].Values[0].(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	default:
		return 0, types.QueryFailed(op, fmt.Errorf("count value has unexpected type %T", n))
	}
}

// decodeRecord 规范化一条记录并解码进投影结构体。
func decodeRecord(op string, rec *neo4j.Record, out any) error {
	if err := mapstructure.Decode(coerce.Map(rec.AsMap()), out); err != nil {
		return types.QueryFailed(op, err)
	}
	return nil
}
