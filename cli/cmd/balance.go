package cmd

import (
	"net/url"

	"github.com/spf13/cobra"
)

var balanceAddress string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print an account's balance and pending count.",
	Run: func(cmd *cobra.Command, args []string) {
		getJSON("/api/wallet/balance?address=" + url.QueryEscape(balanceAddress))
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&balanceAddress, "address", "a", "", "Account address.")
	balanceCmd.MarkFlagRequired("address")
}
