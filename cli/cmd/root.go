// Package cmd contains the operator wallet CLI, a thin client of the
// service API.
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var apiURL string

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiURL, "url", "u", "http://localhost:10003", "Url of the service API.")
}

var rootCmd = &cobra.Command{
	Use:   "shotwallet",
	Short: "Operate the service wallets over the rewards API",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func getJSON(path string) {
	resp, err := http.Get(apiURL + path)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	printBody(resp)
}

func postJSON(path string, body interface{}) {
	b, err := json.Marshal(body)
	if err != nil {
		log.Fatal(err)
	}
	resp, err := http.Post(apiURL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	printBody(resp)
}

func printBody(resp *http.Response) {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("http %d: %s", resp.StatusCode, b)
	}
	fmt.Println(string(b))
}
