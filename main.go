package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"schrodinger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.WithError(err).Error("exit")
		os.Exit(1)
	}
}
