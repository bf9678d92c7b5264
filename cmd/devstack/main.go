package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iankorovinsky/lifeos/internal/devstack"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a disposable MariaDB for local lifeos development.

Usage:

devstack [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devstack -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	ctx := context.Background()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var containers *devstack.Containers
	go func() {
		var err error
		containers, err = devstack.Start(ctx, log.Printf)
		if err != nil {
			log.Fatalf("Failed to start dev stack: %v\n", err)
		}
		log.Printf("Point the server at it with DB_TYPE=mariadb DB_HOST=localhost DB_PORT=%s\n", containers.HostPort)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating dev stack...\n", sig)
	if containers != nil {
		containers.Terminate(ctx)
	}
}
