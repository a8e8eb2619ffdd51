// Package cli 提供 rankctl 的命令列指令。
package cli

import (
	"context"
	"fmt"
	"os"

	"ranking-insight/internal/app"
	"ranking-insight/internal/infrastructure/config"

	"github.com/spf13/cobra"
)

// AppFactory 依設定建立執行環境。
type AppFactory func(ctx context.Context, cfg config.Config) (*app.App, error)

type options struct {
	configPath string
	factory    AppFactory
}

// NewRootCmd 建立 rankctl 根指令；factory 為 nil 時使用 app.New。
func NewRootCmd(factory AppFactory) *cobra.Command {
	if factory == nil {
		factory = app.New
	}
	opts := &options{factory: factory}

	root := &cobra.Command{
		Use:   "rankctl",
		Short: "Amazon beauty ranking history and report tool",
		Long: `rankctl collects daily category rankings, seeds demo history,
generates Excel reports and prints focus-brand summaries and digests.

Examples:
  rankctl seed --days 30
  rankctl collect
  rankctl report
  rankctl summary --category lip_care --days 30
  rankctl digest --days 14 --send`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "Path to config file")

	root.AddCommand(
		newSeedCmd(opts),
		newCollectCmd(opts),
		newReportCmd(opts),
		newSummaryCmd(opts),
		newDigestCmd(opts),
	)
	return root
}

// Execute 執行根指令，失敗時以非零狀態結束。
func Execute() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp 載入設定並建立 App，執行 fn 後釋放資源。
func (o *options) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.LoadFromFile(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := o.factory(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
