package main

import (
	"flag"
	"log"
)

// Set at build time with -ldflags "-X main.GitCommit=...".
var (
	GitCommit string
	GitTag    string
	BuildTime string
)

func main() {
	configFile := flag.String("config", "./config.yml", "path to the yaml configuration file")
	envFile := flag.String("env", "./config.env", "path to the environment overrides file")
	flag.Parse()

	app, err := NewApp(*configFile, *envFile)
	if err != nil {
		log.Fatal("library catalog failed to start: ", err)
	}
	if err = app.Run(); err != nil {
		log.Fatal("library catalog exited. check logs for more details: ", err)
	}
}
