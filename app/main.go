package main

import (
	"log"
	"os"
	"os/signal"
	"time"

	"shotrewards/infra"
)

func main() {
	closeChan := make(chan os.Signal, 1)
	signal.Notify(closeChan, os.Interrupt)

	app, err := InitializeApp()
	infra.PanicErr(err)
	app.start()

	lastINT := time.Now()
	stopCount := 0
outer:
	for {
		select {
		case <-closeChan:
			if time.Now().Sub(lastINT) > time.Minute {
				stopCount = 0
			}
			lastINT = time.Now()
			stopCount++
			if stopCount < 3 {
				log.Printf("%d/3 Ctrl+c to stop\n", stopCount)
			} else {
				log.Println("stopping...")
				break outer
			}
		}
	}
	app.stop()
	log.Println("[quit]")
}
