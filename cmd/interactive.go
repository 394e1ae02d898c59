package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupscan/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "启动交互界面，输入目录后扫描",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := scanOptions(cmd, cfg, "")
		report, err := tui.Run(*opts)
		if err != nil {
			return err
		}

		// 退出备用屏幕后保留报告
		if report != "" {
			fmt.Fprint(cmd.OutOrStdout(), report)
		}
		return nil
	},
}

func init() {
	addScanFlags(interactiveCmd)
	rootCmd.AddCommand(interactiveCmd)
}
