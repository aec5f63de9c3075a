package reward

import (
	"context"
	"database/sql"
	"time"

	"github.com/dabankio/civil"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// Repo is the production Stats and PoolStore: content aggregates live in
// the content table maintained by the upload service.
type Repo struct {
	db *sqlx.DB
}

func (r *Repo) UploadsToday(ctx context.Context, wallet string) (int, error) {
	var ret int
	err := r.db.GetContext(ctx, &ret,
		`select count(*) from content where wallet = $1 and created_at >= current_date`, wallet)
	return ret, err
}

func (r *Repo) TotalUploadsToday(ctx context.Context) (int, error) {
	var ret int
	err := r.db.GetContext(ctx, &ret,
		`select count(*) from content where created_at >= current_date`)
	return ret, err
}

func (r *Repo) WalletContent(ctx context.Context, wallet string) ([]ContentStat, error) {
	var items []ContentStat
	err := r.db.SelectContext(ctx, &items,
		`select id as content_id, wallet, like_count as likes from content where wallet = $1`, wallet)
	return items, err
}

func (r *Repo) TotalLikes(ctx context.Context) (int, error) {
	var ret int
	err := r.db.GetContext(ctx, &ret, `select coalesce(sum(like_count), 0) from content`)
	return ret, err
}

// ActiveWallets lists wallets with any content, for the snapshot job.
func (r *Repo) ActiveWallets(ctx context.Context) ([]string, error) {
	var items []string
	err := r.db.SelectContext(ctx, &items, `select distinct wallet from content`)
	return items, err
}

func (r *Repo) CurrentPool(ctx context.Context) (*DailyPool, error) {
	return r.PoolOfDay(ctx, civil.DateOf(time.Now()))
}

func (r *Repo) PoolOfDay(ctx context.Context, day civil.Date) (*DailyPool, error) {
	var pool DailyPool
	err := r.db.GetContext(ctx, &pool, `select day, total_pool, upload_pct, like_pct from daily_pool where day = $1`, day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // unset pool means zero rewards, not a failure
	}
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func (r *Repo) UpsertPool(ctx context.Context, pool DailyPool) error {
	_, err := r.db.ExecContext(ctx, `
insert into daily_pool (day, total_pool, upload_pct, like_pct) values ($1, $2, $3, $4)
on conflict (day) do update set total_pool = $2, upload_pct = $3, like_pct = $4`,
		pool.Day, pool.TotalPool, pool.UploadPct, pool.LikePct)
	return err
}

func (r *Repo) UpsertDayReward(ctx context.Context, item DayReward) error {
	_, err := r.db.ExecContext(ctx, `
insert into day_reward (day, wallet, upload_amount, like_amount, total) values ($1, $2, $3, $4, $5)
on conflict (day, wallet) do update set upload_amount = $3, like_amount = $4, total = $5`,
		item.Day, item.Wallet, item.UploadAmount, item.LikeAmount, item.Total)
	return err
}

func (r *Repo) DayRewardsOfDay(ctx context.Context, day civil.Date) (items []DayReward, err error) {
	err = r.db.SelectContext(ctx, &items, `select * from day_reward where day = $1`, day)
	return
}
