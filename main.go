/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdash/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "labdash",
		Usage: "Lab report indicator dashboard",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdIndicators,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
