package main

import (
	"github.com/mcoot/dragonword-go/internal/cli"
)

func main() {
	cli.Execute()
}
