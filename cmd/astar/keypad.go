package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/astar/v2/keypad"
)

type codeReport struct {
	Code       string `yaml:"code" json:"code"`
	Presses    int    `yaml:"presses" json:"presses"`
	Complexity int    `yaml:"complexity" json:"complexity"`
	Sequence   string `yaml:"sequence,omitempty" json:"sequence,omitempty"`
}

type keypadReport struct {
	Robots int          `yaml:"robots" json:"robots"`
	Codes  []codeReport `yaml:"codes" json:"codes"`
	Total  int          `yaml:"total_complexity" json:"total_complexity"`
}

func (r keypadReport) writeText(w io.Writer) error {
	for _, code := range r.Codes {
		if _, err := fmt.Fprintf(w, "%s: %d presses, complexity %d\n", code.Code, code.Presses, code.Complexity); err != nil {
			return err
		}
		if code.Sequence != "" {
			if _, err := fmt.Fprintf(w, "  %s\n", code.Sequence); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "total complexity: %d\n", r.Total)
	return err
}

func newKeypadCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keypad [file]",
		Short: "Type door codes through a chain of robot keypads",
		Long: `Reads one door code per line and finds the shortest sequence of buttons a
human must press on a directional pad so that the robot chain types it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showSequence, _ := cmd.Flags().GetBool("sequence")

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			codes, err := keypad.ParseCodes(in)
			if err != nil {
				return err
			}

			pads, err := keypad.New(a.config.Keypad.Robots)
			if err != nil {
				return err
			}
			r := keypadReport{Robots: a.config.Keypad.Robots}
			for _, code := range codes {
				presses, err := pads.Presses(code)
				if err != nil {
					return err
				}
				value, err := keypad.NumericPart(code)
				if err != nil {
					return err
				}
				complexity := len(presses) * value
				entry := codeReport{Code: code, Presses: len(presses), Complexity: complexity}
				if showSequence {
					entry.Sequence = presses
				}
				r.Codes = append(r.Codes, entry)
				r.Total += complexity
				a.logger.Debug("code typed", "code", code, "presses", len(presses))
			}
			return writeReport(cmd.OutOrStdout(), a.config.Output, r)
		},
	}
	cmd.Flags().Int("robots", 2, "directional robots between the human and the door")
	cmd.Flags().Bool("sequence", false, "print the button sequence of each code")
	_ = a.v.BindPFlag("keypad.robots", cmd.Flags().Lookup("robots"))
	return cmd
}
