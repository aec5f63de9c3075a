package infra

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// Job is a scheduled task definition.
type Job struct {
	Name    string // snake_case, shows up in logs
	Cron    string // see https://pkg.go.dev/github.com/robfig/cron/v3
	Run     func(context.Context) (string, error)
	Timeout time.Duration // keep below the schedule interval so a job never overlaps itself
}

// Sched wraps the cron scheduler so running jobs can be stopped gracefully.
type Sched struct {
	cron         *cron.Cron
	runningMap   *sync.Map // key: uid, value: RunningJob
	runningCount uint64
}

type RunningJob struct {
	UID        uint64
	Name       string
	StartAt    time.Time
	CancelFunc func()
}

func (c *Sched) Start() { c.cron.Start() }

// Shutdown stops the scheduler, cancels running jobs and waits for them,
// printing the survivors every second.
func (c *Sched) Shutdown() {
	log.Println("stopping scheduler")
	stopCtx := c.cron.Stop()
	log.Println("waiting for running jobs")
	printCtx, printCancel := context.WithCancel(context.Background())
	defer printCancel()
	go func(ctx context.Context) {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				jobs := []string{}
				c.runningMap.Range(func(k, v interface{}) bool {
					jobs = append(jobs, v.(RunningJob).Name)
					return true
				})
				log.Println("running jobs:", jobs)
			case <-ctx.Done():
				return
			}
		}
	}(printCtx)
	c.runningMap.Range(func(k, v interface{}) bool {
		v.(RunningJob).CancelFunc()
		return true
	})
	<-stopCtx.Done()
	log.Println("all jobs done")
}

func (c *Sched) wrapJobFunc(job Job) func() {
	return func() {
		ctx, cancelFunc := context.WithTimeout(context.Background(), job.Timeout)
		defer cancelFunc()

		rJob := RunningJob{
			UID:        atomic.AddUint64(&c.runningCount, 1),
			Name:       job.Name,
			StartAt:    time.Now(),
			CancelFunc: cancelFunc, // Shutdown calls this directly
		}
		c.runningMap.Store(rJob.UID, rJob)
		defer c.runningMap.Delete(rJob.UID)

		var (
			result string
			err    error
		)
		triggerAt := time.Now()
		defer func() {
			if reErr := recover(); reErr != nil {
				err = errors.Errorf("recover err: %v", reErr)
			}
			du := time.Now().Sub(triggerAt).Truncate(time.Microsecond)
			if err != nil || result != "" {
				log.Printf("[job]%s done (duration: %s, result: <%s>, err: %v)\n", job.Name, du, result, err)
			}
		}()
		result, err = job.Run(ctx)
	}
}

type cronLog struct{}

func (l *cronLog) Info(msg string, keysAndValues ...interface{}) {
	log.Println(append([]interface{}{msg}, keysAndValues...))
}
func (l *cronLog) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Println(append([]interface{}{"[err]", err, msg}, keysAndValues...))
}

// NewSched registers the jobs; Start/Shutdown are driven by the app
// lifecycle.
func NewSched(jobs []Job) (*Sched, error) {
	if len(jobs) == 0 {
		return nil, errors.New("no jobs provided")
	}
	logger := &cronLog{}

	sched := Sched{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(
				cron.Recover(logger),
				cron.SkipIfStillRunning(logger),
			),
		),
		runningMap: &sync.Map{},
	}
	for _, job := range jobs {
		_id, e := sched.cron.AddFunc(job.Cron, sched.wrapJobFunc(job))
		if e != nil {
			return nil, errors.Wrap(e, "schedule job failed")
		}
		log.Printf("job registered: %20s => %s (entry: %d)\n", job.Cron, job.Name, _id)
	}
	return &sched, nil
}
