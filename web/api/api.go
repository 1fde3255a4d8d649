package api

import (
	"github.com/spf13/viper"

	"github.com/mirekli/commgraph/store"
	"github.com/mirekli/commgraph/web/export"
)

// 分页默认值。用户列表偏宽（浏览场景），其余列表 20。
const (
	defaultListLimit = 20
	defaultUserLimit = 50
	maxListLimit     = 100
)

// API 封装了 API 处理器所需的所有依赖。
type API struct {
	Store  store.Store
	Export *export.Service
}

// NewAPI 创建一个新的 API 处理器。
func NewAPI(s store.Store) *API {
	return &API{
		Store:  s,
		Export: export.NewService(s),
	}
}

// cacheEnabled 报告条件缓存层是否开启。
// 直接读 viper，配合配置热加载可以在运行期开关。
func (a *API) cacheEnabled() bool {
	return viper.GetBool("HTTP_CACHE_ENABLED")
}
