package main

import "github.com/ds124wfegd/animegen/internal/cli"

func main() {
	cli.Execute()
}
