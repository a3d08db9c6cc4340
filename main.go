package main

import (
	"fitcheck/cli"
)

func main() {
	cli.Start()
}
