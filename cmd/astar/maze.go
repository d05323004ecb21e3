package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/astar/v2/grid"
	"github.com/pdrpinto/astar/v2/mazes"
)

type mazeReport struct {
	Found     bool   `yaml:"found" json:"found"`
	Cost      int    `yaml:"cost" json:"cost"`
	Turns     int    `yaml:"turns" json:"turns"`
	BestTiles int    `yaml:"best_tiles,omitempty" json:"best_tiles,omitempty"`
	Drawing   string `yaml:"drawing,omitempty" json:"drawing,omitempty"`
}

func (r mazeReport) writeText(w io.Writer) error {
	if !r.Found {
		_, err := fmt.Fprintln(w, "no route from S to E")
		return err
	}
	if _, err := fmt.Fprintf(w, "cost: %d (%d turns)\n", r.Cost, r.Turns); err != nil {
		return err
	}
	if r.BestTiles > 0 {
		if _, err := fmt.Fprintf(w, "best tiles: %d\n", r.BestTiles); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, r.Drawing)
	return err
}

func newMazeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maze [file]",
		Short: "Find the cheapest route through a maze that charges for turning",
		Long: `Reads a maze of '#' walls with a start 'S' and an end 'E'. The walker starts
facing east; a step forward costs 1 and a quarter turn costs 1000.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			draw, _ := cmd.Flags().GetBool("draw")

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			maze, err := grid.Parse(in)
			if err != nil {
				return err
			}

			solution, found, err := mazes.Solve(maze)
			if err != nil {
				return err
			}
			r := mazeReport{Found: found, Cost: solution.Cost}
			for _, hop := range solution.Path {
				if !hop.Initial && hop.Edge != mazes.Forward {
					r.Turns++
				}
			}
			a.logger.Info("maze solved", "width", maze.Width(), "height", maze.Height(), "found", found, "cost", solution.Cost)

			switch {
			case all && found:
				tiles, marked, err := mazes.BestTiles(maze)
				if err != nil {
					return err
				}
				r.BestTiles = tiles
				if draw {
					r.Drawing = grid.Render(marked)
				}
			case draw && found:
				r.Drawing = grid.Render(mazes.Draw(maze, solution.Path))
			}
			return writeReport(cmd.OutOrStdout(), a.config.Output, r)
		},
	}
	cmd.Flags().Bool("all", false, "also count the tiles on every cheapest route")
	cmd.Flags().Bool("draw", false, "draw the route (or the best tiles with --all)")
	return cmd
}
