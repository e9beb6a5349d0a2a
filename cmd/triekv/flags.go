package main

import (
	"github.com/urfave/cli"
)

var (
	// DataDirFlag points at the directory owned by the storage engine.
	DataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "Directory holding the trie storage database",
		Value: "data",
	}
)
