// Package graph 管理到图库的唯一进程级驱动实例。
// 驱动本身可安全并发复用，但每个逻辑查询都要通过 Session 申请
// 自己的会话并在结束时释放，错误路径也不例外。
package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Config 保存图库连接配置。
type Config struct {
	URI      string
	Username string
	Password string
	Database string // 为空时使用服务器默认库
}

// Manager 负责驱动的生命周期：首次使用时建立，显式 Close 销毁。
// 不向调用方暴露裸驱动，所有查询路径都显式申请会话。
type Manager struct {
	mu     sync.Mutex
	conf   Config
	driver neo4j.DriverWithContext
}

// NewManager 创建一个尚未连接的管理器。
func NewManager(conf Config) *Manager {
	return &Manager{conf: conf}
}

// getDriver 返回（必要时先建立）共享驱动。
func (m *Manager) getDriver() (neo4j.DriverWithContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver != nil {
		return m.driver, nil
	}

	driver, err := neo4j.NewDriverWithContext(
		m.conf.URI,
		neo4j.BasicAuth(m.conf.Username, m.conf.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("创建图库驱动失败: %w", err)
	}

	m.driver = driver
	return driver, nil
}

// Session 申请一个只读会话。调用方必须负责 Close。
func (m *Manager) Session(ctx context.Context) (neo4j.SessionWithContext, error) {
	driver, err := m.getDriver()
	if err != nil {
		return nil, err
	}
	return driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: m.conf.Database,
	}), nil
}

// Ping 校验图库连通性，列表端点在做任何工作之前调用。
func (m *Manager) Ping(ctx context.Context) error {
	driver, err := m.getDriver()
	if err != nil {
		return err
	}
	return driver.VerifyConnectivity(ctx)
}

// Close 释放驱动。测试用的显式销毁钩子；Close 之后可再次使用，
// 下一次查询会重新建立驱动。
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver == nil {
		return nil
	}
	err := m.driver.Close(ctx)
	m.driver = nil
	return err
}
