package main

import (
	"errors"

	"github.com/trezcool/elimu/storage/database"
)

func (cli *commandLine) seed() error {
	subjects, err := cli.catRepo.QueryAllSubjects()
	if err != nil {
		return err
	}
	if len(subjects) > 0 {
		return errors.New("catalog is not empty; refusing to seed")
	}
	return database.Seed(cli.catRepo)
}
