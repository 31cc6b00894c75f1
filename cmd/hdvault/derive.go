package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/hdvault/hdvault/internal/config"
	"github.com/hdvault/hdvault/internal/storage"
	"github.com/hdvault/hdvault/pkg/hdkey"
	"github.com/hdvault/hdvault/pkg/vault"
)

var derive = cli.Command{
	Name:  "derive",
	Usage: "derive a range of receive addresses from a stored root",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "root",
			Usage:    "id of the stored root",
			Required: true,
		},
		&cli.UintFlag{
			Name:  "account",
			Usage: "account branch under the root",
			Value: 0,
		},
		&cli.UintFlag{
			Name:  "first",
			Usage: "first address index",
			Value: 0,
		},
		&cli.UintFlag{
			Name:  "count",
			Usage: "number of addresses",
			Value: 10,
		},
	},
	Action: deriveAction,
}

var resolve = cli.Command{
	Name:      "resolve",
	Usage:     "resolve a single derivation path to an address",
	ArgsUsage: "<path, e.g. m/0/5>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "root",
			Usage:    "id of the stored root",
			Required: true,
		},
	},
	Action: resolveAction,
}

func loadRoot(ctx *cli.Context) (hdkey.Node, *storage.Store, error) {
	id, err := uuid.Parse(ctx.String("root"))
	if err != nil {
		return hdkey.Node{}, nil, fmt.Errorf("bad root id: %w", err)
	}

	store, err := storage.NewStore(config.GetString(config.DatadirKey))
	if err != nil {
		return hdkey.Node{}, nil, err
	}

	root, err := store.RootNode(vault.File{Type: vault.FileSeed, ID: id})
	if err != nil {
		store.Close()
		return hdkey.Node{}, nil, err
	}
	return root, store, nil
}

func deriveAction(ctx *cli.Context) error {
	root, store, err := loadRoot(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := vault.DeriveRange(
		ctx.Context, root,
		[]uint32{uint32(ctx.Uint("account"))},
		uint32(ctx.Uint("first")), uint32(ctx.Uint("count")),
	)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Err != nil {
			fmt.Printf("%d\t<failed: %s>\n", entry.Index, entry.Err)
			continue
		}
		fmt.Printf("%d\t%s\n", entry.Index, entry.Address)
	}
	return nil
}

func resolveAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one derivation path argument")
	}
	path, err := hdkey.ParseDerivationPath(ctx.Args().First())
	if err != nil {
		return err
	}

	root, store, err := loadRoot(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	addr, err := vault.ResolveAddress(root, path)
	if err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}
