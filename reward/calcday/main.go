// Command calcday recomputes and saves today's reward snapshot once, for
// operators who do not want to wait for the scheduled run.
package main

import (
	"context"
	"log"
	"time"

	"shotrewards/infra"
	"shotrewards/reward"
)

func main() {
	conf := infra.ParseConf()
	db, err := infra.NewPGDB(conf)
	infra.PanicErr(err)
	defer db.Close()

	repo := reward.NewRepo(db)
	engine := reward.NewEngine(conf, repo, repo)
	calc := reward.NewCalc(engine, repo)

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	result, err := calc.DailyRewardCalc(ctx)
	infra.PanicErr(err)
	log.Println("done:", result)
}
