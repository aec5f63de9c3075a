package reward

import (
	"github.com/dabankio/civil"
	"github.com/shopspring/decimal"
)

// DailyPool is the reward budget of one day, replaced by the admin
// endpoint. Percentages sum to at most 100; any remainder is simply not
// distributed.
type DailyPool struct {
	Day       civil.Date
	TotalPool decimal.Decimal // display units
	UploadPct int
	LikePct   int
}

// RewardResult is derived on demand, never persisted as truth.
type RewardResult struct {
	Wallet string          `json:"wallet"`
	Upload decimal.Decimal `json:"upload_reward"`
	Like   decimal.Decimal `json:"like_reward"`
	Total  decimal.Decimal `json:"total"`
}

// ContentStat is one content item's aggregate like count.
type ContentStat struct {
	ContentID string
	Wallet    string
	Likes     int
}

// DayReward is a snapshot row written by the periodic calc job.
type DayReward struct {
	Day          civil.Date
	Wallet       string
	UploadAmount decimal.Decimal
	LikeAmount   decimal.Decimal
	Total        decimal.Decimal
}
