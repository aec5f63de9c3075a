package cmd

import (
	"github.com/spf13/cobra"
)

var (
	receiveAddress string
	receiveSecret  string
)

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Receive all pending blocks of an account.",
	Run: func(cmd *cobra.Command, args []string) {
		postJSON("/api/wallet/receive", map[string]string{
			"address": receiveAddress,
			"secret":  receiveSecret,
		})
	},
}

func init() {
	rootCmd.AddCommand(receiveCmd)
	receiveCmd.Flags().StringVarP(&receiveAddress, "address", "a", "", "Account address.")
	receiveCmd.Flags().StringVarP(&receiveSecret, "secret", "s", "", "Account secret key (hex).")
	receiveCmd.MarkFlagRequired("address")
	receiveCmd.MarkFlagRequired("secret")
}
