package main

import (
	"github.com/vkaradzhov/belot-server/internal/cli"
)

func main() {
	cli.Execute()
}
