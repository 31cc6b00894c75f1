package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/hdvault/hdvault/internal/config"
	"github.com/hdvault/hdvault/internal/storage"
	"github.com/hdvault/hdvault/pkg/vault"
)

var seed = cli.Command{
	Name:  "seed",
	Usage: "generate a mnemonic and store the root it seeds",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "entropy",
			Usage: "entropy size in bits, a multiple of 32 in [128, 256]",
			Value: 256,
		},
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "optional BIP39 passphrase",
		},
	},
	Action: seedAction,
}

var roots = cli.Command{
	Name:   "roots",
	Usage:  "list the stored vault roots",
	Action: rootsAction,
}

func seedAction(ctx *cli.Context) error {
	network, err := config.GetNetwork()
	if err != nil {
		return err
	}
	addrType, err := config.GetAddressType()
	if err != nil {
		return err
	}

	mnemonic, err := storage.NewMnemonic(ctx.Int("entropy"))
	if err != nil {
		return err
	}
	seedBytes, err := storage.SeedFromMnemonic(mnemonic, ctx.String("passphrase"))
	if err != nil {
		return err
	}
	root, err := storage.NewRootFromSeed(seedBytes, addrType, network)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(config.GetString(config.DatadirKey))
	if err != nil {
		return err
	}
	defer store.Close()

	file := vault.File{Type: vault.FileSeed, ID: uuid.New()}
	if err := store.PutRoot(file, root); err != nil {
		return err
	}

	fmt.Println("mnemonic:", strings.Join(mnemonic, " "))
	fmt.Println("root:", file)
	return nil
}

func rootsAction(ctx *cli.Context) error {
	store, err := storage.NewStore(config.GetString(config.DatadirKey))
	if err != nil {
		return err
	}
	defer store.Close()

	files, err := store.ListRoots()
	if err != nil {
		return err
	}
	for _, file := range files {
		fmt.Println(file)
	}
	return nil
}
