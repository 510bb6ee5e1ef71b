package main

import (
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

// counterApp is the canonical counter: a label showing the count and a
// button whose action increments it.
func counterApp(ctx weft.Context) {
	n := weft.GetState(ctx, 0)

	host.Label(ctx, weft.AsText(ctx, n))
	host.Button(ctx, weft.Value("increment"), weft.Increment[int](n))

	weft.If(ctx, weft.Gt(n, weft.Value(9)), func(ctx weft.Context) {
		host.Label(ctx, weft.Value("double digits!"))
	})
}
