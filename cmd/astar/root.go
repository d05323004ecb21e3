package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdrpinto/astar/v2/internal/logging"
)

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	config  Config
	logger  *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New(), logger: logging.NewNop()}

	root := &cobra.Command{
		Use:   "astar",
		Short: "Tie-aware A* search over grids and keypads",
		Long: `astar drives a step-wise A* search that keeps every predecessor tied for
the best cost, so all minimal paths can be reconstructed afterwards.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.astar.yaml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn or error")
	flags.StringP("output", "o", "text", "report format: text, yaml or json")
	_ = a.v.BindPFlag("log-level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("output", flags.Lookup("output"))

	root.AddCommand(
		newMazeCommand(a),
		newBytesCommand(a),
		newKeypadCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigName(".astar")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("ASTAR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.config); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	level, err := logging.ParseLevel(a.config.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level).With("cmd", cmd.Name())
	return nil
}

// openInput opens the file named by the first argument, or stdin when there
// is none or it is "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
