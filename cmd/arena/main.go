// Command arena runs reasoning agents from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mcparena/arena-go/interfaces/cli"
)

func main() {
	app := cli.New()
	if err := app.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
