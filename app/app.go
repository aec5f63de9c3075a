package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"net/http/pprof"
	_ "net/http/pprof"

	"shotrewards/infra"
	"shotrewards/reward"
	"shotrewards/wallet"
)

func NewApp(
	conf infra.Conf,
	sched *infra.Sched,
	router *chi.Mux,
) *App {
	return &App{conf: conf, sched: sched, router: router}
}

// - receives pending ledger blocks for the service wallets
// - snapshots daily rewards
// - API: wallet send/receive/balance, reward queries, pool admin
type App struct {
	conf   infra.Conf
	sched  *infra.Sched
	router *chi.Mux
}

func (app *App) start() {
	app.sched.Start()
	app.ServeHTTP()
}
func (app *App) stop() {
	app.sched.Shutdown()
}

func (app App) ServeHTTP() {
	addr := app.conf.ListenAddr
	if addr == "" {
		addr = ":10003"
	}
	go func() {
		log.Println("http server started on", addr)
		log.Println(http.ListenAndServe(addr, app.router))
	}()
}

func NewRouter(infraRepo *infra.Repo, walletHandler *wallet.Handler, rewardHandler *reward.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiLogMiddleware(infraRepo))

	r.Post("/api/wallet/receive", walletHandler.ReceiveAllPending)
	r.Post("/api/wallet/send", walletHandler.Send)
	r.Get("/api/wallet/balance", walletHandler.Balance)

	r.Get("/api/rewards", rewardHandler.GetRewards)
	r.Post("/api/pool", rewardHandler.SetPool)

	registerDebugMegrics(r)
	return r
}

// apiLogMiddleware records every request; bodies only for pool admin.
// Wallet POST bodies carry secret keys and must never reach the log.
func apiLogMiddleware(repo *infra.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			body := ""
			if req.Method == http.MethodPost && req.URL.Path == "/api/pool" {
				b, err := io.ReadAll(req.Body)
				if err == nil {
					body = string(b)
					req.Body = io.NopCloser(bytes.NewReader(b))
				}
			}
			if err := repo.CreateApiLog(infra.ApiLog{
				Time:   time.Now(),
				URL:    req.URL.String(),
				Method: req.Method,
				IP:     req.RemoteAddr,
				Body:   body,
			}); err != nil {
				log.Println("[err] create api log: ", err)
			}
			next.ServeHTTP(w, req)
		})
	}
}

func registerDebugMegrics(r *chi.Mux) {
	r.Get("/debug/pprof", pprof.Index)
	r.Get("/debug/cmdline", pprof.Cmdline)
	r.Get("/debug/profile", pprof.Profile)
	r.Get("/debug/trace", pprof.Trace)

	r.Get("/debug/allocs", pprof.Handler("allocs").ServeHTTP)
	r.Get("/debug/block", pprof.Handler("block").ServeHTTP)
	r.Get("/debug/goroutine", pprof.Handler("goroutine").ServeHTTP)
	r.Get("/debug/heap", pprof.Handler("heap").ServeHTTP)
	r.Get("/debug/mutex", pprof.Handler("mutex").ServeHTTP)
	r.Get("/debug/threadcreate", pprof.Handler("threadcreate").ServeHTTP)
}

func NewJobs(conf infra.Conf, walletClient *wallet.Client, calc *reward.Calc) []infra.Job {
	jobs := []infra.Job{
		{ // snapshot today's rewards
			Name:    "calc_daily_reward",
			Cron:    "@every 1h",
			Run:     calc.DailyRewardCalc,
			Timeout: time.Hour,
		},
	}
	if len(conf.SweepWallets) > 0 {
		jobs = append(jobs, infra.Job{ // receive pending blocks of the service wallets
			Name: "sweep_pending",
			Cron: "@every 5m",
			Run: func(ctx context.Context) (string, error) {
				return sweepPending(ctx, conf.SweepWallets, walletClient)
			},
			Timeout: 4 * time.Minute,
		})
	}
	return jobs
}

// sweepPending receives for each service wallet in turn; a failing wallet
// is logged and the sweep moves to the next one.
func sweepPending(ctx context.Context, wallets []infra.SweepWallet, client *wallet.Client) (string, error) {
	var received, failed int
	for _, w := range wallets {
		result, err := client.ReceiveAllPending(ctx, w.Address, w.Secret)
		if err != nil {
			log.Printf("[err] sweep %s: %v", w.Address, err)
			failed++
			continue
		}
		received += result.Received
		failed += result.Failed
	}
	if received == 0 && failed == 0 {
		return "", nil
	}
	return fmt.Sprintf("received: %d, failed: %d", received, failed), nil
}
