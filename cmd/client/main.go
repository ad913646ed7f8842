package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"

	"github.com/dmitrijs2005/tasklist/internal/client/api"
	"github.com/dmitrijs2005/tasklist/internal/client/cli"
)

func main() {

	serverURL := flag.String("s", "http://localhost:8080", "task-list server base URL")
	flag.Parse()

	ctx := context.Background()

	client := api.New(*serverURL)
	if err := client.Health(ctx); err != nil {
		log.Printf("warning: server %s is not reachable: %v", *serverURL, err)
	}

	app := cli.NewApp(bufio.NewReader(os.Stdin), os.Stdout, client)
	app.Root(ctx)
}
