package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/arduino.go/pkg/env"
	fx "github.com/robotalks/arduino.go/pkg/framework"
)

func init() {
	env.SetupFlags()
	env.SetupBridgeFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.NewConfig()
	ctl := conf.MustOpen()
	runner := fx.NewRunner(context.Background()).HandleSignals()
	runner.Go(fx.NamedRun("bridge", fx.RunFunc(func(ctx context.Context) error {
		return conf.RunBridge(ctx, ctl)
	})))
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
