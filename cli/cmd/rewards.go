package cmd

import (
	"net/url"

	"github.com/spf13/cobra"
)

var rewardsWallet string

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Print a wallet's live reward figures.",
	Run: func(cmd *cobra.Command, args []string) {
		getJSON("/api/rewards?wallet=" + url.QueryEscape(rewardsWallet))
	},
}

func init() {
	rootCmd.AddCommand(rewardsCmd)
	rewardsCmd.Flags().StringVarP(&rewardsWallet, "wallet", "w", "", "Wallet address.")
	rewardsCmd.MarkFlagRequired("wallet")
}
