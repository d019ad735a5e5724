// Package bootstrap 按配置装配数据源与提示词组装器
package bootstrap

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"astock/config"
	"astock/display"
	"astock/fetcher"
	"astock/names"
	"astock/positions"
	"astock/prices"
	"astock/prompt"
)

// NewLogger 按配置创建日志器
func NewLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.LogLevel).Warn("无法识别的日志级别，使用 info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// App 装配完成的组件
type App struct {
	Config    *config.Config
	Log       *logrus.Logger
	Assembler *prompt.Assembler
	Names     names.Resolver

	longport *fetcher.LongportClient
}

// New 根据配置装配 App；使用完毕后调用 Close
func New(cfg *config.Config, logger *logrus.Logger) (*App, error) {
	if logger == nil {
		logger = NewLogger(cfg)
	}
	app := &App{Config: cfg, Log: logger}

	needLongport := cfg.PriceSource == config.PriceSourceLongport ||
		cfg.NameSource == config.NameSourceLongport ||
		(cfg.NameSource == config.NameSourceChain && cfg.HasLongport())
	if needLongport {
		client, err := fetcher.NewLongportClient(fetcher.LongportCredentials{
			AppKey:      cfg.LongportAppKey,
			AppSecret:   cfg.LongportAppSecret,
			AccessToken: cfg.LongportAccessToken,
		})
		if err != nil {
			return nil, fmt.Errorf("初始化长桥客户端失败: %w", err)
		}
		app.longport = client
	}

	src, err := app.priceSource()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Names = app.nameResolver()

	asm, err := prompt.NewAssembler(
		prompt.Options{Market: cfg.Market, Universe: cfg.Universe},
		prices.NewBarProvider(src),
		positions.NewFileProvider(cfg.PositionDir, logger),
		display.NewFormatter(app.Names),
		logger,
	)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Assembler = asm

	logger.WithFields(logrus.Fields{
		"market":       cfg.Market,
		"price_source": cfg.PriceSource,
		"name_source":  cfg.NameSource,
		"position_dir": cfg.PositionDir,
	}).Debug("组件装配完成")
	return app, nil
}

func (a *App) priceSource() (prices.BarSource, error) {
	switch a.Config.PriceSource {
	case config.PriceSourceFile:
		return prices.NewFileSource(a.Config.PriceFiles), nil
	case config.PriceSourceEastMoney:
		return prices.NewEastMoneySource(fetcher.NewKLineFetcher(a.Config.HTTPTimeout)), nil
	case config.PriceSourceLongport:
		if a.longport == nil {
			return nil, fetcher.ErrLongportCredentials
		}
		return prices.NewLongportSource(a.longport), nil
	}
	return nil, fmt.Errorf("未知的价格数据源: %s", a.Config.PriceSource)
}

func (a *App) nameResolver() names.Resolver {
	sina := func() names.Resolver {
		return names.NewSina(fetcher.NewStockFetcher(a.Config.HTTPTimeout), a.Log)
	}
	switch a.Config.NameSource {
	case config.NameSourceSina:
		return names.Chain{names.Static{}, sina()}
	case config.NameSourceLongport:
		return names.Chain{names.Static{}, names.NewLongport(a.longport, a.Log)}
	case config.NameSourceChain:
		chain := names.Chain{names.Static{}, sina()}
		if a.longport != nil {
			chain = append(chain, names.NewLongport(a.longport, a.Log))
		}
		return chain
	}
	return names.Static{}
}

// Close 释放长连接
func (a *App) Close() {
	if a.longport == nil {
		return
	}
	if err := a.longport.Close(); err != nil {
		a.Log.WithError(err).Warn("关闭长桥连接失败")
	}
	a.longport = nil
}
