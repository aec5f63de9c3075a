//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"shotrewards/infra"
	"shotrewards/reward"
	"shotrewards/wallet"
)

func InitializeApp() (*App, error) {
	wire.Build(infra.Module, wallet.Module, reward.Module,
		NewApp, NewRouter, NewJobs)
	return &App{}, nil
}
