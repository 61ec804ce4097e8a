package cmd

import (
	"fmt"
	"os"

	"github.com/aburry/learning-by-wrote/lisp"
	"github.com/aburry/learning-by-wrote/repl"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var (
	rootTraceEval  bool
	rootMaxDepth   int
	rootConfigFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "protolisp",
	Short: "A minimal lisp interpreter",
	Long: `A minimal lisp interpreter with symbols, lists, closures and primitives.

Without a subcommand protolisp reads expressions from stdin, evaluates them and
prints each result.  When stdin is a terminal an interactive repl with line
editing is started.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig(cmd)
		ip := mustInterpreter(cfg)
		var err error
		if readline.DefaultIsTerminal() {
			err = repl.RunInteractive(ip, repl.Options{
				Prompt:      cfg.Prompt,
				HistoryFile: cfg.HistoryFile,
			})
		} else {
			prompt := cfg.Prompt
			if prompt == "" {
				prompt = repl.DefaultPrompt
			}
			err = repl.RunPrompt(prompt, os.Stdin, os.Stdout, os.Stderr, ip)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTraceEval, "trace-eval", false,
		"Write each expression to stderr before it is evaluated")
	rootCmd.PersistentFlags().IntVar(&rootMaxDepth, "max-depth", lisp.DefaultMaximumDepth,
		"Maximum nesting of evaluation (0 for no limit)")
	rootCmd.PersistentFlags().StringVar(&rootConfigFile, "config", "",
		"Configuration file (default $HOME/"+DefaultConfigFile+")")
}

// loadConfig reads the configuration file and applies the command line flags
// of cmd on top of it.  Flag values only replace file values when the flag was
// given.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	flags := cmd.Flags()
	path := rootConfigFile
	required := flags.Changed("config")
	if !required {
		path = DefaultConfigPath()
	}
	cfg, err := LoadConfig(path, required)
	if err != nil {
		return nil, err
	}
	if flags.Changed("trace-eval") {
		cfg.TraceEval = rootTraceEval
	}
	if flags.Changed("max-depth") {
		depth := rootMaxDepth
		cfg.MaxDepth = &depth
	}
	return cfg, nil
}

func mustLoadConfig(cmd *cobra.Command) *Config {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

func mustInterpreter(cfg *Config) *lisp.Interpreter {
	ip, err := lisp.New(cfg.Interpreter(os.Stderr)...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return ip
}
