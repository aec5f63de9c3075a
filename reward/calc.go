package reward

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dabankio/civil"
	"github.com/pkg/errors"
)

func NewCalc(engine *Engine, repo *Repo) *Calc {
	return &Calc{engine: engine, repo: repo}
}

// Calc periodically snapshots every active wallet's reward figures into
// day_reward. The live numbers keep coming from the engine; the snapshot
// exists so a day's final standing survives the pool rolling over.
type Calc struct {
	engine *Engine
	repo   *Repo
}

func (c *Calc) DailyRewardCalc(ctx context.Context) (string, error) {
	defer func(startAt time.Time) {
		log.Println("daily_reward_calc done, cost: ", time.Now().Sub(startAt))
	}(time.Now())

	day := civil.DateOf(time.Now())
	wallets, err := c.repo.ActiveWallets(ctx)
	if err != nil {
		return "", errors.Wrap(err, "list active wallets")
	}
	var saved int
	for _, wallet := range wallets {
		result, err := c.engine.TotalReward(ctx, wallet)
		if err != nil {
			return "", errors.Wrapf(err, "calc reward of %s", wallet)
		}
		err = c.repo.UpsertDayReward(ctx, DayReward{
			Day:          day,
			Wallet:       wallet,
			UploadAmount: result.Upload,
			LikeAmount:   result.Like,
			Total:        result.Total,
		})
		if err != nil {
			return "", errors.Wrapf(err, "save reward of %s", wallet)
		}
		saved++
	}
	return fmt.Sprintf("day %s, %d wallets", day, saved), nil
}
