package repo

import (
	"context"

	"github.com/mirekli/commgraph/internal/model"
	"github.com/mirekli/commgraph/store/types"
	"golang.org/x/sync/errgroup"
)

// GetUsers 获取用户列表及过滤后的总数。
// 计数查询与窗口查询互相独立，并发执行。
func (r *Repository) GetUsers(ctx context.Context, q types.UserQuery) (*model.UserList, error) {
	where, params := buildUserFilter(q.Keyword)

	countCypher := "MATCH (u:User)" + where + " RETURN count(u) AS total"
	pageCypher := "MATCH (u:User)" + where + `
		RETURN u.id AS id, u.name AS name, u.email AS email, u.avatarUrl AS avatarUrl
		ORDER BY u.name ASC, u.id ASC
		SKIP $skip LIMIT $limit`

	pageParams := cloneParams(params)
	pageParams["skip"] = q.Offset
	pageParams["limit"] = q.Limit

	var (
		total int64
		users []*model.User
		g     errgroup.Group
	)

	g.Go(func() error {
		n, err := r.readCount(ctx, "users.count", countCypher, params)
		if err != nil {
			return err
		}
		total = n
		return nil
	})

	g.Go(func() error {
		records, err := r.readRecords(ctx, "users.page", pageCypher, pageParams)
		if err != nil {
			return err
		}
		out := make([]*model.User, 0, len(records))
		for _, rec := range records {
			var u model.User
			if err := decodeRecord("users.page", rec, &u); err != nil {
				return err
			}
			out = append(out, &u)
		}
		users = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.UserList{Users: users, Pagination: &model.Pagination{Total: total}}, nil
}

// GetUserByID 按标识获取单个用户，不存在时返回 ErrUserNotFound。
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	cypher := `
		MATCH (u:User {id: $id})
		RETURN u.id AS id, u.name AS name, u.email AS email, u.avatarUrl AS avatarUrl`

	records, err := r.readRecords(ctx, "users.byID", cypher, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, types.ErrUserNotFound
	}

	var u model.User
	if err := decodeRecord("users.byID", records[0], &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// buildUserFilter 构造用户列表的过滤子句。关键字为空时不附加任何谓词。
func buildUserFilter(keyword string) (string, map[string]any) {
	params := map[string]any{}
	if keyword == "" {
		return "", params
	}
	params["keyword"] = keyword
	return " WHERE toLower(u.name) CONTAINS toLower($keyword) OR toLower(u.email) CONTAINS toLower($keyword)", params
}

// cloneParams 复制参数表，窗口查询在副本上追加 skip/limit。
func cloneParams(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+2)
	for k, v := range in {
		out[k] = v
	}
	return out
}
