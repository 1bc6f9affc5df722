package main

import (
	"github.com/torplabs/torp/pkg/cli"
)

func main() {
	cli.Execute()
}
