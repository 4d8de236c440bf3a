package main

import (
	"os"

	"github.com/agendum/agendum/cmd"
	log "github.com/sirupsen/logrus"
)

// version will be set by the build
var version = "dev"

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
