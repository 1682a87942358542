package main

import (
	"context"
	"os"

	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"
)

const serviceName = "videohub-dashboard"

var (
	confPath string
	verbose  bool

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var rootCmd = &cobra.Command{
	Use:           "videohub-dashboard",
	Short:         "Browse, watch and upload videohub videos",
	Long:          `videohub-dashboard lists uploaded videos with their view and like counts, follows processing progress, and uploads new videos.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "conf", "", "config path or directory, eg: --conf configs/config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger 写入 stderr，避免与 stdout 上的表格输出混在一起。
func newLogger() log.Logger {
	level := log.LevelWarn
	if verbose {
		level = log.LevelDebug
	}
	return log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(level))
}

func buildApp(ctx context.Context) (*dashboardApp, func(), error) {
	return wireDashboard(ctx, configloader.Params{
		ConfPath:    confPath,
		ServiceName: serviceName,
		Sections:    []configloader.Section{configloader.SectionDashboard},
	}, newLogger())
}
