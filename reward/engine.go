package reward

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"shotrewards/infra"
)

const rewardDecimals = 6

// maxPerContentPct caps a single item's like reward at 5% of the like
// pool. The cap is per content item, not per wallet: several moderately
// liked items can beat 5% in aggregate, one viral item cannot.
const maxPerContentPct = 5

const defaultUploadCap = 5

// Stats is the aggregate view of the content repository, an external
// collaborator. "Today" is the stats side's notion of the current pool
// day.
type Stats interface {
	UploadsToday(ctx context.Context, wallet string) (int, error)
	TotalUploadsToday(ctx context.Context) (int, error)
	WalletContent(ctx context.Context, wallet string) ([]ContentStat, error)
	TotalLikes(ctx context.Context) (int, error)
}

// PoolStore yields the pool of the current day, nil when unset.
type PoolStore interface {
	CurrentPool(ctx context.Context) (*DailyPool, error)
}

func NewEngine(conf infra.Conf, stats Stats, pools PoolStore) *Engine {
	uploadCap := conf.UploadCapPerWallet
	if uploadCap <= 0 {
		uploadCap = defaultUploadCap
	}
	return &Engine{stats: stats, pools: pools, uploadCap: uploadCap}
}

type Engine struct {
	stats     Stats
	pools     PoolStore
	uploadCap int
}

// UploadReward is the wallet's share of the upload pool, upload counts
// capped per wallet. Zero when there is no pool or nothing was uploaded
// today.
func (e *Engine) UploadReward(ctx context.Context, wallet string) (decimal.Decimal, error) {
	pool, err := e.pools.CurrentPool(ctx)
	if err != nil || pool == nil {
		return decimal.Zero, err
	}
	total, err := e.stats.TotalUploadsToday(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "total uploads")
	}
	if total == 0 {
		return decimal.Zero, nil
	}
	mine, err := e.stats.UploadsToday(ctx, wallet)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "wallet uploads")
	}
	if mine > e.uploadCap {
		mine = e.uploadCap
	}
	uploadPool := pctOf(pool.TotalPool, pool.UploadPct)
	return decimal.NewFromInt(int64(mine)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(uploadPool).
		Truncate(rewardDecimals), nil
}

// LikeReward sums, per content item the wallet owns, the item's share of
// the like pool, each share capped at maxPerContentPct of the pool before
// summing. Zero when there are no likes anywhere.
func (e *Engine) LikeReward(ctx context.Context, wallet string) (decimal.Decimal, error) {
	pool, err := e.pools.CurrentPool(ctx)
	if err != nil || pool == nil {
		return decimal.Zero, err
	}
	totalLikes, err := e.stats.TotalLikes(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "total likes")
	}
	if totalLikes == 0 {
		return decimal.Zero, nil
	}
	items, err := e.stats.WalletContent(ctx, wallet)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "wallet content")
	}
	likePool := pctOf(pool.TotalPool, pool.LikePct)
	capAmount := pctOf(likePool, maxPerContentPct)
	sum := decimal.Zero
	for _, item := range items {
		if item.Likes <= 0 {
			continue
		}
		share := decimal.NewFromInt(int64(item.Likes)).
			Div(decimal.NewFromInt(int64(totalLikes))).
			Mul(likePool)
		if share.GreaterThan(capAmount) {
			share = capAmount
		}
		sum = sum.Add(share)
	}
	return sum.Truncate(rewardDecimals), nil
}

func (e *Engine) TotalReward(ctx context.Context, wallet string) (*RewardResult, error) {
	upload, err := e.UploadReward(ctx, wallet)
	if err != nil {
		return nil, err
	}
	like, err := e.LikeReward(ctx, wallet)
	if err != nil {
		return nil, err
	}
	return &RewardResult{
		Wallet: wallet,
		Upload: upload,
		Like:   like,
		Total:  upload.Add(like),
	}, nil
}

func pctOf(v decimal.Decimal, pct int) decimal.Decimal {
	return v.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))
}
