package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"network-watchdog/internal/adapter/primary/web"
	"network-watchdog/internal/adapter/secondary/elevation"
	"network-watchdog/internal/adapter/secondary/probe"
	"network-watchdog/internal/adapter/secondary/repository"
	"network-watchdog/internal/adapter/secondary/wlan"
	"network-watchdog/internal/domain"
	"network-watchdog/internal/logging"
	"network-watchdog/internal/usecase"
)

var (
	cfgPath   string
	verbosity int
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network-watchdog",
		Short: "ネットワーク断を検知して保存済みWi-Fiへ自動復旧するウォッチドッグ",
		Long:  "NCSIプローブで定期的にネットワークを確認し、不通ならWi-Fiラジオ/アダプタを有効化して保存済みプロファイルへ順に接続を試みるツール",
	}

	defaultCfg := repository.DefaultPath()
	cmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "設定ファイルのパス")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "ロギングを詳細化 (-v, -vv, ... 最大4回)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.SetVerbosity(verbosity)
	}

	cmd.AddCommand(
		newWatchCmd(),
		newCheckCmd(),
		newServeCmd(),
		newConfigCmd(),
		newShellCmd(),
	)

	return cmd
}

// watchFlags collects everything the watch/check commands translate into a
// domain.Config.
type watchFlags struct {
	once        bool
	single      bool
	interval    int
	ncsiURL     string
	ncsiTimeout int
	all         bool
	profiles    []string
	dryRun      bool
}

func addWatchFlags(cmd *cobra.Command, f *watchFlags) {
	flags := cmd.Flags()
	flags.BoolVarP(&f.once, "once", "1", false, "1回だけ確認・復旧して終了（ループしない）")
	flags.BoolVar(&f.single, "single", false, "--once の別名")
	_ = flags.MarkHidden("single")
	flags.IntVar(&f.interval, "interval", 60, "チェック間隔(秒)")
	flags.StringVar(&f.ncsiURL, "ncsi-url", domain.DefaultProbeURL, "NCSIプローブのURL")
	flags.IntVar(&f.ncsiTimeout, "ncsi-timeout", 5, "NCSIタイムアウト(秒)")
	flags.BoolVar(&f.all, "all", false, "電波の届いていない保存済みプロファイルも全て試す")
	flags.StringSliceVar(&f.profiles, "profiles", nil, "試すプロファイル名（複数指定やカンマ区切り可）")
	flags.BoolVar(&f.dryRun, "dry-run", false, "アダプタ操作を行わないダミーコントローラで実行")
	cmd.MarkFlagsMutuallyExclusive("all", "profiles")
}

// resolveConfig layers explicitly-set flags over the stored configuration.
func resolveConfig(cmd *cobra.Command, f *watchFlags, stored domain.Config) (domain.Config, error) {
	cfg := stored
	flags := cmd.Flags()

	if flags.Changed("interval") {
		cfg.Interval = time.Duration(f.interval) * time.Second
	}
	if flags.Changed("ncsi-url") {
		cfg.ProbeURL = f.ncsiURL
	}
	if flags.Changed("ncsi-timeout") {
		cfg.ProbeTimeout = time.Duration(f.ncsiTimeout) * time.Second
	}
	if f.all {
		cfg.Mode = domain.ModeAll
		cfg.Profiles = nil
	}
	if flags.Changed("profiles") {
		cfg.Mode = domain.ModeExplicit
		cfg.Profiles = uniqueNames(f.profiles)
	}
	cfg.RunOnce = f.once || f.single

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// uniqueNames merges repeated/comma-separated profile flags into one set,
// keeping first-seen order.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	merged := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		merged = append(merged, n)
	}
	return merged
}

func buildDriver(cmd *cobra.Command, f *watchFlags) (*usecase.Driver, error) {
	repo, err := repository.NewFileRepository(cfgPath)
	if err != nil {
		return nil, err
	}
	stored, err := repo.Load()
	if err != nil {
		return nil, err
	}
	cfg, err := resolveConfig(cmd, f, stored)
	if err != nil {
		return nil, err
	}

	controller := wlan.NewNetshController()
	if f.dryRun {
		controller = wlan.NewNoopController()
	} else if err := elevation.EnsureElevated(); err != nil {
		return nil, err
	}

	prober := probe.NewHTTPProber(cfg.ProbeURL, cfg.ProbeTimeout)
	return usecase.NewDriver(cfg, prober, controller, clock.New())
}

func newWatchCmd() *cobra.Command {
	f := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "ネットワーク監視ループを起動",
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, err := buildDriver(cmd, f)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := driver.Config()
			fmt.Println("Network Watchdog started")
			logging.Infof("watchdog started, mode: %s, run-once: %t", cfg.Mode, cfg.RunOnce)
			return driver.Run(ctx)
		},
	}
	addWatchFlags(cmd, f)
	return cmd
}

func newCheckCmd() *cobra.Command {
	f := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "1回だけ確認・復旧して終了（watch --once と同じ）",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.once = true
			driver, err := buildDriver(cmd, f)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Println("ネットワークを確認しています…")
			err = driver.Run(ctx)
			if snap := driver.Snapshot(); snap.State.LastCycle != nil {
				printOutcome(*snap.State.LastCycle)
			}
			return err
		},
	}
	addWatchFlags(cmd, f)
	return cmd
}

func printOutcome(outcome domain.CycleOutcome) {
	switch outcome.Final {
	case domain.RestoredWithoutAction:
		fmt.Println("ネットワークは正常です")
	case domain.RestoredByProfile:
		fmt.Printf("プロファイル %q で復旧しました\n", outcome.RestoredBy)
	case domain.ExhaustedAllProfiles:
		fmt.Printf("全プロファイル(%d件)を試しましたが復旧できませんでした\n", len(outcome.Attempts))
	case domain.AdapterControlFailed:
		fmt.Printf("アダプタ操作に失敗しました: %v\n", outcome.Err)
	case domain.RecoveryAborted:
		fmt.Println("復旧を中断しました")
	}
}

func newServeCmd() *cobra.Command {
	f := &watchFlags{}
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "監視ループとWebステータスUIを両方起動",
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, err := buildDriver(cmd, f)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Start watch loop
			go func() {
				_ = driver.Run(ctx)
			}()

			srv := web.NewServer(driver, addr)
			fmt.Printf("Network Watchdog UI running at http://%s\n", addr)
			logging.Infof("web UI: http://%s", addr)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			return srv.Start()
		},
	}
	addWatchFlags(cmd, f)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7070", "HTTPサーバーのアドレス:ポート")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "設定の取得・更新を行うサブコマンド",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "現在の設定(JSON)を表示",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository.NewFileRepository(cfgPath)
			if err != nil {
				return err
			}
			cfg, err := repo.Load()
			if err != nil {
				return err
			}

			display := map[string]any{
				"intervalSeconds":    int(cfg.Interval.Seconds()),
				"ncsiUrl":            cfg.ProbeURL,
				"ncsiTimeoutSeconds": int(cfg.ProbeTimeout.Seconds()),
				"mode":               cfg.Mode.String(),
			}
			if len(cfg.Profiles) > 0 {
				display["profiles"] = cfg.Profiles
			}

			out, _ := json.MarshalIndent(display, "", "  ")
			fmt.Println(string(out))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		intervalFlag    int
		ncsiURLFlag     string
		ncsiTimeoutFlag int
		allFlag         bool
		visibleOnlyFlag bool
		profilesFlag    []string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "保存される既定値を書き換え",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository.NewFileRepository(cfgPath)
			if err != nil {
				return err
			}
			cfg, err := repo.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("interval") {
				cfg.Interval = time.Duration(intervalFlag) * time.Second
			}
			if flags.Changed("ncsi-url") {
				cfg.ProbeURL = ncsiURLFlag
			}
			if flags.Changed("ncsi-timeout") {
				cfg.ProbeTimeout = time.Duration(ncsiTimeoutFlag) * time.Second
			}
			if allFlag {
				cfg.Mode = domain.ModeAll
				cfg.Profiles = nil
			}
			if visibleOnlyFlag {
				cfg.Mode = domain.ModeVisibleOnly
				cfg.Profiles = nil
			}
			if flags.Changed("profiles") {
				cfg.Mode = domain.ModeExplicit
				cfg.Profiles = uniqueNames(profilesFlag)
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := repo.Save(cfg); err != nil {
				return err
			}

			fmt.Printf("保存しました: interval=%s mode=%s profiles=%v\n",
				cfg.Interval, cfg.Mode, cfg.Profiles)
			return nil
		},
	}
	cmd.Flags().IntVar(&intervalFlag, "interval", 60, "チェック間隔(秒)")
	cmd.Flags().StringVar(&ncsiURLFlag, "ncsi-url", domain.DefaultProbeURL, "NCSIプローブのURL")
	cmd.Flags().IntVar(&ncsiTimeoutFlag, "ncsi-timeout", 5, "NCSIタイムアウト(秒)")
	cmd.Flags().BoolVar(&allFlag, "all", false, "全保存済みプロファイルを試すモードにする")
	cmd.Flags().BoolVar(&visibleOnlyFlag, "visible-only", false, "電波の届くプロファイルのみ試すモードにする(既定)")
	cmd.Flags().StringSliceVar(&profilesFlag, "profiles", nil, "試すプロファイル名を固定する")
	cmd.MarkFlagsMutuallyExclusive("all", "visible-only", "profiles")
	return cmd
}
