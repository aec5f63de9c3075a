package reward

import "github.com/google/wire"

var Module = wire.NewSet(
	NewEngine,
	NewCalc,
	NewRepo,
	NewHandler,
	wire.Bind(new(Stats), new(*Repo)),
	wire.Bind(new(PoolStore), new(*Repo)),
)
