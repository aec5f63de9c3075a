package cmd

import (
	"github.com/spf13/cobra"
)

var (
	sendFrom   string
	sendSecret string
	sendTo     string
	sendAmount string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send XNO from a service wallet.",
	Run: func(cmd *cobra.Command, args []string) {
		postJSON("/api/wallet/send", map[string]string{
			"from":   sendFrom,
			"secret": sendSecret,
			"to":     sendTo,
			"amount": sendAmount,
		})
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sendFrom, "from", "f", "", "Sender address.")
	sendCmd.Flags().StringVarP(&sendSecret, "secret", "s", "", "Sender secret key (hex).")
	sendCmd.Flags().StringVarP(&sendTo, "to", "t", "", "Destination address.")
	sendCmd.Flags().StringVarP(&sendAmount, "amount", "m", "", "Amount in XNO, up to 6 decimals.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("secret")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}
