package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/mirekli/commgraph/store"
	"github.com/mirekli/commgraph/store/graph"
	"github.com/mirekli/commgraph/web"
)

func main() {
	// --- 加载配置 ---
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Info().Msg("未找到 .env 文件，使用环境变量和默认值")
		} else {
			log.Warn().Err(err).Msg("读取 .env 文件出错，使用环境变量和默认值")
		}
	}

	// --- 日志 ---
	level, err := zerolog.ParseLevel(viper.GetString("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// 支持运行期开关条件缓存等配置项
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info().Str("file", e.Name).Msg("配置文件已变更，重新加载")
	})

	// --- 监听地址：优先 LISTEN_ADDR，其次 PORT，最后默认 ---
	listenAddr := viper.GetString("LISTEN_ADDR")
	if listenAddr == "" {
		if port := viper.GetString("PORT"); port != "" {
			listenAddr = "127.0.0.1:" + port
		} else {
			listenAddr = "127.0.0.1:5300"
		}
	}

	// --- 初始化 Store ---
	graphConf := graph.Config{
		URI:      viper.GetString("NEO4J_URI"),
		Username: viper.GetString("NEO4J_USERNAME"),
		Password: viper.GetString("NEO4J_PASSWORD"),
		Database: viper.GetString("NEO4J_DATABASE"),
	}
	if graphConf.URI == "" {
		graphConf.URI = "bolt://127.0.0.1:7687"
	}

	newStore := store.NewStore(graphConf)
	defer func() {
		if err := newStore.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("关闭 store 失败")
		}
	}()

	// 启动时做一次连通性检查，失败只告警，不阻止启动
	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := newStore.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("uri", graphConf.URI).Msg("图库暂不可达，列表端点将返回 503 直至恢复")
	} else {
		log.Info().Str("uri", graphConf.URI).Msg("图库连接正常")
	}
	cancel()

	// --- 初始化并启动 Web 服务 ---
	webService := web.NewService(newStore, &web.Config{ListenAddr: listenAddr})
	if err := webService.Start(); err != nil {
		log.Fatal().Err(err).Msg("启动 web 服务失败")
	}
	log.Info().Msg("服务已启动: http://" + listenAddr)

	// --- 等待中断信号以实现优雅关闭 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("接收到关闭信号，正在关闭服务...")

	if err := webService.Stop(); err != nil {
		log.Error().Err(err).Msg("关闭 web 服务时出错")
	}
	log.Info().Msg("服务已成功关闭")
}
