package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/ardentmouse/firmware/explorer"
	"github.com/ardentmouse/firmware/maze"
)

var mazeCommand = &cli.Command{
	Name:  "maze",
	Usage: "inspect and plan against static maze files",
	Subcommands: []*cli.Command{
		{
			Name:      "show",
			Usage:     "parse and re-print a maze file",
			ArgsUsage: "<file>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "width", Value: 16},
			},
			Action: func(c *cli.Context) error {
				store, err := loadMaze(c.Args().First(), c.Int("width"))
				if err != nil {
					return err
				}
				fmt.Print(maze.Format(store))
				return nil
			},
		},
		{
			Name:      "plan",
			Usage:     "run the explorer to completion against a static maze file",
			ArgsUsage: "<file>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "width", Value: 16},
				&cli.StringFlag{Name: "start", Value: "0,0,top"},
				&cli.StringFlag{Name: "goal", Value: "7,7,top"},
			},
			Action: func(c *cli.Context) error {
				width := c.Int("width")
				store, err := loadMaze(c.Args().First(), width)
				if err != nil {
					return err
				}
				start, err := parseCoord(width, c.String("start"))
				if err != nil {
					return errors.Wrap(err, "start")
				}
				goal, err := parseCoord(width, c.String("goal"))
				if err != nil {
					return errors.Wrap(err, "goal")
				}
				return printDriveSequence(store, start, goal)
			},
		},
	},
}

func loadMaze(path string, width int) (*maze.Store, error) {
	if path == "" {
		return nil, errors.New("maze file argument required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return maze.Parse(width, string(data)), nil
}

// parseCoord reads a "x,y,top|right" wall coordinate, the format the maze
// ASCII scenarios in every testable property are quoted in.
func parseCoord(width int, s string) (maze.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return maze.Coord{}, errors.Errorf("coordinate %q must be x,y,top|right", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return maze.Coord{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return maze.Coord{}, err
	}
	var isTop bool
	switch strings.TrimSpace(parts[2]) {
	case "top":
		isTop = true
	case "right":
		isTop = false
	default:
		return maze.Coord{}, errors.Errorf("coordinate %q's third field must be top or right", s)
	}
	return maze.NewCoord(width, x, y, isTop)
}

// printDriveSequence repeatedly plans from the current wall coordinate to
// the goal, printing each unchecked wall the explorer would drive toward
// next, until every wall on the optimistic shortest path is known.
func printDriveSequence(store *maze.Store, start, goal maze.Coord) error {
	current := start
	const maxSteps = 4096
	for i := 0; i < maxSteps; i++ {
		result, err := explorer.Plan(store, start, goal, current)
		if err != nil {
			return err
		}
		if result.Finished {
			fmt.Printf("finished after %d step(s): every wall on the shortest path is known\n", i)
			return nil
		}
		fmt.Printf("drive to (%d, %d, top=%v)\n", result.Next.X, result.Next.Y, result.Next.IsTop)
		current = result.Next
	}
	return errors.Errorf("exceeded %d planning steps without finishing", maxSteps)
}
