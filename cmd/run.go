package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aburry/learning-by-wrote/lisp"
	"github.com/aburry/learning-by-wrote/parser/rdparser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := mustInterpreter(mustLoadConfig(cmd))
		var out io.Writer
		if runPrint {
			out = os.Stdout
		}
		err := runSources(ip, args, runExpression, out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// runSources evaluates each source in the global environment of ip.  Sources
// are file paths unless expr is true, in which case they are source text.
// When out is not nil the value of each top-level expression is written to
// it.  runSources stops at the first error.
func runSources(ip *lisp.Interpreter, sources []string, expr bool, out io.Writer) error {
	for i, src := range sources {
		var err error
		if expr {
			err = runStream(ip, fmt.Sprintf("expr%d", i), strings.NewReader(src), out)
		} else {
			err = runFile(ip, src, out)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func runFile(ip *lisp.Interpreter, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return runStream(ip, path, f, out)
}

func runStream(ip *lisp.Interpreter, name string, r io.Reader, out io.Writer) error {
	p := rdparser.NewFromReader(name, r)
	for {
		expr, err := p.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		v, err := ip.EvalGlobal(expr)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if out != nil {
			lisp.Format(out, v)
			io.WriteString(out, "\n")
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
