package main

import (
	"context"
	"os"

	"github.com/dwikikusuma/gomarketplace/pkg/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	root, sess := newRootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := sess.close(); cerr != nil {
		root.PrintErrln("close store:", cerr)
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		return 1
	}
	return 0
}
