package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aburry/learning-by-wrote/lisp"
	"github.com/aburry/learning-by-wrote/parser/rdparser"
	"github.com/chzyer/readline"
)

// Options configure an interactive session.
type Options struct {
	// Prompt is shown when a new expression is expected.  When empty
	// DefaultPrompt is used.
	Prompt string
	// HistoryFile persists line history between sessions when not empty.
	HistoryFile string
}

// RunInteractive runs a line editing repl on the terminal.  A partially typed
// expression is discarded with Ctrl-C.  The session ends with Ctrl-D or the
// :quit command.
func RunInteractive(ip *lisp.Interpreter, opts Options) error {
	return runReadline(ip, &readline.Config{
		Prompt:      opts.Prompt,
		HistoryFile: opts.HistoryFile,
	})
}

// runReadline runs a session on the terminal described by cfg.
func runReadline(ip *lisp.Interpreter, cfg *readline.Config) error {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &session{
		ip:         ip,
		rl:         rl,
		out:        rl.Stdout(),
		errw:       rl.Stderr(),
		prompt:     cfg.Prompt,
		contPrompt: strings.Repeat(" ", len(cfg.Prompt)), // prompt had better be ascii...
	}
	s.parser = rdparser.NewFromReader("stdin", s)
	return s.loop()
}

type session struct {
	ip         *lisp.Interpreter
	rl         *readline.Instance
	parser     *rdparser.Parser
	out        io.Writer
	errw       io.Writer
	prompt     string
	contPrompt string
	buf        []byte
	quit       bool
}

func (s *session) loop() error {
	for {
		expr, err := s.parser.Read()
		if err == io.EOF {
			return nil
		}
		if errors.Is(err, readline.ErrInterrupt) {
			s.buf = nil
			continue
		}
		if err != nil {
			if !lisp.IsKind(err, lisp.SyntaxError) {
				return err
			}
			errln(s.errw, err)
			continue
		}
		v, err := s.ip.EvalGlobal(expr)
		if err != nil {
			errln(s.errw, err)
			continue
		}
		lisp.Format(s.out, v)
		io.WriteString(s.out, "\n")
	}
}

// Read feeds the parser one line of terminal input at a time.  The prompt
// shows whether the parser is waiting on the rest of an expression.
func (s *session) Read(p []byte) (int, error) {
	for len(s.buf) == 0 {
		if s.quit {
			return 0, io.EOF
		}
		parsing := s.parser.IsParsing()
		if parsing {
			s.rl.SetPrompt(s.contPrompt)
		} else {
			s.rl.SetPrompt(s.prompt)
		}
		line, err := s.rl.Readline()
		if err != nil {
			return 0, err
		}
		if !parsing && strings.HasPrefix(strings.TrimSpace(line), ":") {
			s.command(strings.Fields(strings.TrimSpace(line)))
			continue
		}
		s.buf = append([]byte(line), '\n')
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

func (s *session) command(args []string) {
	switch args[0] {
	case ":help":
		fmt.Fprint(s.out, replHelp)
	case ":quit":
		s.quit = true
	case ":env":
		env := s.ip.Global()
		for _, sym := range env.Symbols() {
			v, _ := env.Lookup(sym)
			fmt.Fprintf(s.out, "%s\t%s\n", sym.Name(), lisp.String(v))
		}
	case ":trace":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			fmt.Fprintln(s.errw, "usage: :trace on|off")
			return
		}
		s.ip.SetTrace(args[1] == "on")
	default:
		fmt.Fprintf(s.errw, "unknown command: %s (try :help)\n", args[0])
	}
}

const replHelp = `:help        show this message
:quit        end the session
:env         list global bindings
:trace on    write each expression to stderr before evaluating it
:trace off   stop tracing
`
