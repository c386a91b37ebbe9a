package main

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/elimu/core/catalog"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db      *sqlx.DB
	catRepo catalog.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a migration command: up, up-by-one, down, redo, reset, status, version")
	fmt.Println("  seed                   - load the initial subject/lesson/quiz catalog")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}
