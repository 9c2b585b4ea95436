/*
Package repl is a small interactive command loop: a readline-backed
prompt with a handful of internal administrative commands (help, bye,
mode, setprompt) that fall through to a caller-supplied Interpreter for
everything else. The prompt and tab completion are domain-aware: an
Interpreter that implements Status or Completer lets the loop show live
formula state and complete against its variable and parameter names,
not just the REPL's own administrative vocabulary.
*/
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tformula.repl")
}

var welcomeMessage = "Welcome to %s [V%s]"
var stdprompt = "%s> "
var editmode = "emacs"

// adminWords are the REPL's own commands, always offered by the
// completer alongside whatever Completer.Completions contributes.
var adminWords = []string{"help", "bye", "mode", "setprompt"}

// Interpreter is implemented by callers of REPL: everything typed that
// isn't one of the internal administrative commands is handed to
// InterpretCommand verbatim.
type Interpreter interface {
	InterpretCommand(line string)
}

// Status is optionally implemented by an Interpreter that wants the
// prompt to reflect its live state, e.g. the name of the formula
// currently loaded ("tform[gaus1]> " rather than a bare "tform> ").
type Status interface {
	PromptStatus() string
}

// Completer is optionally implemented by an Interpreter that wants its
// own vocabulary offered as tab-completion candidates: a formula's
// current variable and parameter names, its own sub-command verbs, and
// so on, alongside the REPL's fixed administrative commands.
type Completer interface {
	Completions() []string
}

// REPL is a readline-backed command loop for a single Interpreter.
type REPL struct {
	Interpreter Interpreter
	Helper      func(io.Writer)
	readline    *readline.Instance
	toolname    string
	version     string
	basePrompt  string
}

// New creates a REPL for toolname/version. Command history is kept in a
// per-tool temp file across invocations.
func New(toolname, version string) *REPL {
	r := &REPL{
		toolname:   toolname,
		version:    version,
		basePrompt: fmt.Sprintf(stdprompt, toolname),
	}
	r.readline = newReadline(toolname, r)
	return r
}

func newReadline(toolname string, r *REPL) *readline.Instance {
	histfile := fmt.Sprintf("%s/%s-repl-history.tmp", os.TempDir(), toolname)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              r.basePrompt,
		HistoryFile:         histfile,
		AutoComplete:        &dynamicCompleter{repl: r},
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		panic(err)
	}
	return rl
}

// dynamicCompleter re-derives its candidate list on every keystroke from
// the REPL's administrative commands plus whatever the current
// Interpreter's Completer.Completions returns, so completion tracks a
// formula's variables and parameters as they change rather than a fixed
// set baked in at startup.
type dynamicCompleter struct {
	repl *REPL
}

func (c *dynamicCompleter) Do(line []rune, pos int) ([][]rune, int) {
	word := string(line[:pos])
	start := strings.LastIndexAny(word, " \t")
	prefix := word[start+1:]

	candidates := append([]string{}, adminWords...)
	if comp, ok := c.repl.Interpreter.(Completer); ok {
		candidates = append(candidates, comp.Completions()...)
	}

	var matches [][]rune
	for _, cand := range candidates {
		if cand != prefix && strings.HasPrefix(cand, prefix) {
			matches = append(matches, []rune(cand[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

// Outputs returns the stdout and stderr streams a command's output
// should be written to.
func (r *REPL) Outputs() (io.Writer, io.Writer) {
	return r.readline.Stdout(), r.readline.Stderr()
}

func (r *REPL) displayCommands(out io.Writer) {
	io.WriteString(out, fmt.Sprintf(welcomeMessage, r.toolname, r.version))
	io.WriteString(out, "\n\nThe following commands are available:\n\n")
	io.WriteString(out, "  help               : print this message\n")
	io.WriteString(out, "  bye                : quit application\n")
	io.WriteString(out, "  mode [mode]        : display or set current editing mode\n")
	io.WriteString(out, "  setprompt [prompt] : set current prompt [to default]\n")
}

// refreshPrompt recomputes the live prompt from basePrompt plus the
// Interpreter's Status.PromptStatus, if it implements Status. Called
// before every line read so the prompt always shows current state.
func (r *REPL) refreshPrompt() {
	prompt := r.basePrompt
	if st, ok := r.Interpreter.(Status); ok {
		if suffix := st.PromptStatus(); suffix != "" {
			base := strings.TrimSuffix(strings.TrimRight(r.basePrompt, " "), ">")
			prompt = base + suffix + "> "
		}
	}
	r.readline.SetPrompt(prompt)
}

// Run enters the REPL and executes commands until "bye" or EOF. If
// exitOnBye is true, os.Exit is called afterwards.
func (r *REPL) Run(exitOnBye bool) {
	defer r.readline.Close()
	io.WriteString(r.readline.Stderr(), fmt.Sprintf(welcomeMessage, r.toolname, r.version))
	if !strings.HasSuffix(welcomeMessage, "\n") {
		r.readline.Stderr().Write([]byte{'\n'})
	}
	for {
		r.refreshPrompt()
		line, err := r.readline.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		words := strings.Fields(line)
		command := ""
		if len(words) > 0 {
			command = words[0]
		}
		if r.executeCommand(command, words, line) {
			break
		}
	}
	if exitOnBye {
		os.Exit(0)
	}
}

func (r *REPL) executeCommand(cmd string, args []string, line string) bool {
	switch cmd {
	case "":
		// nothing typed
	case "help":
		r.displayCommands(r.readline.Stderr())
		if r.Helper != nil {
			r.Helper(r.readline.Stderr())
		}
	case "bye":
		fmt.Fprintln(r.readline.Stderr(), "> goodbye!")
		return true
	case "mode":
		if len(args) > 1 {
			switch args[1] {
			case "vi":
				r.readline.SetVimMode(true)
				editmode = "vi"
				return false
			case "emacs":
				r.readline.SetVimMode(false)
				editmode = "emacs"
				return false
			}
		}
		fmt.Fprintf(r.readline.Stderr(), "> current input mode: %s\n", editmode)
	case "setprompt":
		if len(line) <= 10 {
			r.basePrompt = fmt.Sprintf(stdprompt, r.toolname)
		} else {
			r.basePrompt = line[10:] + " "
		}
	default:
		tracer().Debugf("call interpreter on: %q", line)
		r.interpret(line)
	}
	return false
}

func (r *REPL) interpret(line string) {
	if r.Interpreter == nil {
		return
	}
	r.Interpreter.InterpretCommand(line)
}

func filterReplInput(rn rune) (rune, bool) {
	if rn == readline.CharCtrlZ {
		return rn, false
	}
	return rn, true
}
