package main

import (
	"cudeca-ticket/cmd"
	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
