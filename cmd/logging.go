package cmd

import (
	"github.com/urfave/cli"

	"github.com/QPG-MIT/optiverse-sub000/log"
)

var logger = log.New("optiverse")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
