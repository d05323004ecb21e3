package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/astar/v2/mazes"
)

type bytesReport struct {
	Size     int    `yaml:"size" json:"size"`
	Fallen   int    `yaml:"fallen" json:"fallen"`
	Found    bool   `yaml:"found" json:"found"`
	Steps    int    `yaml:"steps" json:"steps"`
	Blocking string `yaml:"blocking,omitempty" json:"blocking,omitempty"`
	Index    *int   `yaml:"index,omitempty" json:"index,omitempty"`
}

func (r bytesReport) writeText(w io.Writer) error {
	if r.Found {
		if _, err := fmt.Fprintf(w, "steps after %d bytes: %d\n", r.Fallen, r.Steps); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "no exit after %d bytes\n", r.Fallen); err != nil {
			return err
		}
	}
	if r.Blocking != "" {
		_, err := fmt.Fprintf(w, "first blocking byte: %s (index %d)\n", r.Blocking, *r.Index)
		return err
	}
	return nil
}

func newBytesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bytes [file]",
		Short: "Escape a memory field while bytes fall into it",
		Long: `Reads one "x,y" coordinate per line. After --take bytes have fallen, finds
the fewest steps from the top-left to the bottom-right corner.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			firstBlocking, _ := cmd.Flags().GetBool("first-blocking")
			cfg := a.config.Bytes
			if cfg.Size <= 0 {
				return fmt.Errorf("bytes: size must be positive, got %d", cfg.Size)
			}
			if cfg.Take < 0 {
				return fmt.Errorf("bytes: take must not be negative, got %d", cfg.Take)
			}

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			falling, err := mazes.ParseBytes(in)
			if err != nil {
				return err
			}

			r := bytesReport{Size: cfg.Size, Fallen: min(cfg.Take, len(falling))}
			r.Steps, r.Found = mazes.Escape(cfg.Size, falling, cfg.Take)
			a.logger.Info("memory escaped", "size", cfg.Size, "fallen", r.Fallen, "found", r.Found, "steps", r.Steps)

			if firstBlocking {
				if p, index, ok := mazes.FirstBlocking(cfg.Size, falling); ok {
					r.Blocking = fmt.Sprintf("%d,%d", p.X, p.Y)
					r.Index = &index
				} else {
					a.logger.Warn("no byte blocks the exit", "bytes", len(falling))
				}
			}
			return writeReport(cmd.OutOrStdout(), a.config.Output, r)
		},
	}
	cmd.Flags().Int("size", 71, "side of the square memory field")
	cmd.Flags().Int("take", 1024, "number of bytes fallen before escaping")
	cmd.Flags().Bool("first-blocking", false, "also find the first byte that cuts off the exit")
	_ = a.v.BindPFlag("bytes.size", cmd.Flags().Lookup("size"))
	_ = a.v.BindPFlag("bytes.take", cmd.Flags().Lookup("take"))
	return cmd
}
