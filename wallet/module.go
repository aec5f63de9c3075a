package wallet

import (
	"github.com/google/wire"

	"shotrewards/node"
	"shotrewards/work"
)

var Module = wire.NewSet(
	NewClient,
	NewRepo,
	NewHandler,
	node.NewClient,
	work.NewChain,
	wire.Bind(new(Node), new(*node.Client)),
	wire.Bind(new(WorkSource), new(*work.Chain)),
	wire.Bind(new(Recorder), new(*Repo)),
)
