package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/veritas-L2/triedb/storage/leveldb"
)

// triekv is a thin collaborator around the storage adapter: it opens the
// store at --datadir and issues a single get/put/has/del call, which is
// handy for poking at the node and root keys a trie engine has persisted.
func main() {
	app := cli.NewApp()
	app.Name = "triekv"
	app.Usage = "inspect and edit a trie storage directory"

	app.Flags = []cli.Flag{
		DataDirFlag,
	}

	app.Commands = []cli.Command{
		getCommand,
		putCommand,
		hasCommand,
		delCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var getCommand = cli.Command{
	Name:      "get",
	Usage:     "print the value stored under a key",
	ArgsUsage: "<key>",
	Action:    runGet,
}

var putCommand = cli.Command{
	Name:      "put",
	Usage:     "store a value under a key, overwriting any previous value",
	ArgsUsage: "<key> <value>",
	Action:    runPut,
}

var hasCommand = cli.Command{
	Name:      "has",
	Usage:     "report whether a key holds a value",
	ArgsUsage: "<key>",
	Action:    runHas,
}

var delCommand = cli.Command{
	Name:      "del",
	Usage:     "remove a key",
	ArgsUsage: "<key>",
	Action:    runDel,
}

func openStore(ctx *cli.Context) (*leveldb.Database, error) {
	dir := ctx.GlobalString(DataDirFlag.Name)

	db, err := leveldb.Open(dir)
	if err != nil {
		return nil, err
	}
	log.WithField("datadir", dir).Debug("opened trie store")
	return db, nil
}

// parseArg treats 0x-prefixed arguments as hex, which is how trie node keys
// (content hashes) are usually written down.
func parseArg(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") {
		return hex.DecodeString(strings.TrimPrefix(s, "0x"))
	}
	return []byte(s), nil
}

func runGet(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("get expects exactly one key", 1)
	}
	key, err := parseArg(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	value, err := db.Get(key)
	if err != nil {
		return err
	}
	if value == nil {
		return cli.NewExitError("not found", 1)
	}
	fmt.Printf("0x%x\n", value)
	return nil
}

func runPut(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.NewExitError("put expects a key and a value", 1)
	}
	key, err := parseArg(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	value, err := parseArg(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Put(key, value); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"key":   fmt.Sprintf("0x%x", key),
		"bytes": len(value),
	}).Info("stored value")
	return nil
}

func runHas(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("has expects exactly one key", 1)
	}
	key, err := parseArg(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	has, err := db.Has(key)
	if err != nil {
		return err
	}
	fmt.Println(has)
	return nil
}

func runDel(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("del expects exactly one key", 1)
	}
	key, err := parseArg(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Delete(key); err != nil {
		return err
	}
	log.WithField("key", fmt.Sprintf("0x%x", key)).Info("removed key")
	return nil
}
