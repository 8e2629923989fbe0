package main

import (
	"context"

	"github.com/faizmokh/jalan/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
