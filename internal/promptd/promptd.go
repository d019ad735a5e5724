// Package promptd 以 HTTP 服务形式提供系统提示词
package promptd

import (
	"context"

	"astock/api"
	"astock/display"
	"astock/internal/bootstrap"
)

// Serve 启动 HTTP 服务，ctx 结束时优雅关闭
func Serve(ctx context.Context, app *bootstrap.App, port int) error {
	log := app.Log.WithField("component", "promptd")
	server := api.NewServer(app.Assembler, display.NewFormatter(app.Names), port, app.Log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.WithField("market", app.Assembler.Market()).Info("=== 交易智能体系统提示词服务 ===")

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("HTTP服务启动失败")
		}
		return err
	case <-ctx.Done():
	}

	log.Info("正在关闭服务...")
	if err := server.Shutdown(); err != nil {
		log.WithError(err).Warn("关闭HTTP服务失败")
		return err
	}
	log.Info("服务已关闭")
	return nil
}
