package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "hdvault CLI"
	app.Usage = "Command line interface for the hdvault key derivation vault"
	app.Commands = append(
		app.Commands,
		&seed,
		&roots,
		&derive,
		&resolve,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	log.Fatalf("%s", err)
}
