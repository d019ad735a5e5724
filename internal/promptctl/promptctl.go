// Package promptctl 命令行入口：组装提示词、启动服务、查看标的池
package promptctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"astock/config"
	"astock/display"
	"astock/internal/bootstrap"
	"astock/internal/promptd"
	"astock/market"
	"astock/trading"
)

// Run 执行命令行，返回进程退出码
func Run(args []string, version string) int {
	root := NewRootCmd(version)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, config.ErrMissingSignature) {
			fmt.Fprintln(os.Stderr, "请通过 --signature 或环境变量 SIGNATURE 指定智能体签名")
		}
		return 1
	}
	return 0
}

type rootOptions struct {
	configPath string
	market     string
	logLevel   string
}

// load 读取配置并应用全局参数
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.GetConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.market != "" {
		m, err := market.ParseMarket(o.market)
		if err != nil {
			return nil, err
		}
		cfg.Market = m
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

func (o *rootOptions) app() (*bootstrap.App, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

func newApp(cfg *config.Config) (*bootstrap.App, error) {
	return bootstrap.New(cfg, bootstrap.NewLogger(cfg))
}

// NewRootCmd 根命令
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "astock",
		Short: "交易智能体系统提示词组装",
		Long: `astock 为交易智能体组装每日系统提示词：
读取上一交易日持仓、昨日收盘价与今日开盘价，计算昨日收益，并渲染到市场对应的模板中。`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "配置文件路径(YAML格式)，默认优先使用 ./config.yaml")
	root.PersistentFlags().StringVar(&opts.market, "market", "", "市场 cn/us，覆盖配置")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别，覆盖配置")

	root.AddCommand(newPromptCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newSymbolsCmd(opts))
	root.AddCommand(newVersionCmd(version))
	return root
}

// splitSymbols 解析逗号分隔的代码列表
func splitSymbols(raw string) []string {
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func newPromptCmd(opts *rootOptions) *cobra.Command {
	var (
		date      string
		signature string
		symbols   string
		messages  bool
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "输出当日系统提示词",
		Long: `组装并输出当日系统提示词。
日期默认取 TODAY_DATE，未设置时为北京时间今日；签名默认取 SIGNATURE。
Example: astock prompt --date 2024-06-03 --signature agent-1 --symbols 600519.SH`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 先加载配置（含 .env），再解析 TODAY_DATE / SIGNATURE
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			date, signature, err := config.ResolveRun(date, signature)
			if err != nil {
				return err
			}
			if date == "" {
				date = trading.Today()
			}

			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			var list []string
			if cmd.Flags().Changed("symbols") {
				list = splitSymbols(symbols)
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if messages {
				msgs, err := app.Assembler.BuildMessages(ctx, date, signature, list)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(msgs)
			}
			text, err := app.Assembler.Build(ctx, date, signature, list)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "交易日 YYYY-MM-DD")
	cmd.Flags().StringVar(&signature, "signature", "", "智能体签名")
	cmd.Flags().StringVar(&symbols, "symbols", "", "逗号分隔的标的代码，默认使用标的池")
	cmd.Flags().BoolVar(&messages, "messages", false, "以 JSON 消息列表输出")
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.app()
			if err != nil {
				return err
			}
			defer app.Close()

			if port <= 0 {
				port = app.Config.Port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return promptd.Serve(ctx, app, port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "监听端口，默认取配置")
	return cmd
}

func newSymbolsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "列出标的池及涨跌幅限制",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.app()
			if err != nil {
				return err
			}
			defer app.Close()

			f := display.NewFormatter(app.Names)
			ls := f.Listings(cmd.Context(), app.Assembler.Market(), app.Assembler.Universe(nil))
			_, err = fmt.Fprint(cmd.OutOrStdout(), display.FormatListings(ls))
			return err
		},
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "astock %s\n", version)
		},
	}
}
