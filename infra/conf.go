package infra

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// WorkProvider is one entry of the proof-of-work fallback chain, tried in
// conf order. Difficulty, when set, overrides the requested threshold for
// this provider (hex uint64).
type WorkProvider struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Key        string `json:"key,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// SweepWallet is a service wallet whose pending blocks the background
// sweep job receives.
type SweepWallet struct {
	Address string `json:"address"`
	Secret  string `json:"secret"`
}

type Conf struct {
	DB         string `json:"db,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`

	NodeURL string `json:"node_url"`
	NodeKey string `json:"node_key,omitempty"`

	// Representative assigned to accounts we open.
	Representative string `json:"representative"`

	WorkProviders []WorkProvider `json:"work_providers"`

	// Difficulty thresholds, hex uint64. The opening threshold is
	// deliberately conf, not code: the node accepts opening blocks below
	// the send threshold and the exact value shifts with node versions.
	SendDifficulty    string `json:"send_difficulty,omitempty"`
	ReceiveDifficulty string `json:"receive_difficulty,omitempty"`
	OpenDifficulty    string `json:"open_difficulty,omitempty"`

	ReceiveRetries int `json:"receive_retries,omitempty"`
	PendingCount   int `json:"pending_count,omitempty"`

	UploadCapPerWallet int `json:"upload_cap_per_wallet,omitempty"`

	SweepWallets []SweepWallet `json:"sweep_wallets,omitempty"`
}

func ParseConf() (c Conf) {
	var confFile string
	if !flag.Parsed() {
		flag.StringVar(&confFile, "conf", "./conf.json", "-conf=/etc/shotrewards.json")
		flag.Parse()
	}
	b, err := os.ReadFile(confFile)
	PanicErr(err)
	PanicErr(json.Unmarshal(b, &c))
	log.Println("conf loaded from : ", confFile)
	return
}
