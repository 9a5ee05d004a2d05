package main

import (
	"context"
	"os"

	"prev-engine/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
