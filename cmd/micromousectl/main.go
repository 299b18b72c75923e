// Command micromousectl is a small operator console for the firmware: it
// inspects maze files, runs the explorer offline against a static maze,
// and drives a fully simulated operator loop end to end.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "micromousectl",
		Usage: "inspect mazes and exercise the operator loop offline",
		Commands: []*cli.Command{
			mazeCommand,
			simCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
