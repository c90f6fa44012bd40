package main

import (
	"github.com/robotalks/arduino.go/pkg/cli/sh"
	"github.com/robotalks/arduino.go/pkg/env"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
