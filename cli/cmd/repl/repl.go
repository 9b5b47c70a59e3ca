package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/snow/lang"
	"github.com/ardnew/snow/lang/ast"
	"github.com/ardnew/snow/lang/diag"
	"github.com/ardnew/snow/lang/interp"
	"github.com/ardnew/snow/lang/lexer"
	"github.com/ardnew/snow/lang/token"
	"github.com/ardnew/snow/lang/value"
	"github.com/ardnew/snow/log"
)

// sourceName labels REPL input in error reports.
const sourceName = "repl"

// editDoneMsg is sent when the editor produced a program that parses.
type editDoneMsg struct{ src string }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-parse error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "❄ "
	contPrompt = "· "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this help
  vars     List bound variables
  edit     Compose a program in $EDITOR and run it
  reset    Discard all bindings made in this session
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type statements to run them; the value of a trailing expression is shown
  Variables persist between inputs
  An input with unclosed braces continues on the next line
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C to discard the current input, or on an empty line to exit
  Press Ctrl+D on an empty line to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	outputStyle     = lipgloss.NewStyle()
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	keywordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo of an eval input. Continuation lines get the
// continuation prompt.
func formatCommand(input string) string {
	lines := strings.Split(input, "\n")

	for i, line := range lines {
		prompt := evalPrompt
		if i > 0 {
			prompt = contPrompt
		}

		lines[i] = promptStyle.Render(prompt) + inputStyle.Render(line)
	}

	return strings.Join(lines, "\n")
}

// formatCtrlCommand formats the echo of a control command.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	env          *interp.Environment
	initial      map[string]value.Value // bindings restored by reset
	logger       log.Logger
	history      *History
	historyIdx   int
	pending      []string      // lines of an unfinished block
	lastSource   string        // most recent program, offered to the editor
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session. Every input runs against env, so
// variables persist between inputs; a nil env starts empty. History is
// kept in cacheDir, or only in memory when cacheDir is empty.
func Run(
	ctx context.Context,
	env *interp.Environment,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if env == nil {
		env = interp.NewEnvironment()
	}

	var historyPath string
	if cacheDir != "" {
		historyPath = filepath.Join(cacheDir, baseHistory)
	}

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", historyPath),
		slog.Int("bindings", env.Len()),
	)

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.String("error", err.Error()),
		)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, env, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	env *interp.Environment,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	initial := make(map[string]value.Value, env.Len())

	for _, name := range env.Names() {
		initial[name], _ = env.Get(name)
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		env:        env,
		initial:    initial,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl edit complete",
			slog.Int("bytes", len(msg.src)),
		)

		return m.evaluate(msg.src)

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(
			errorStyle.Render("error: " + msg.err.Error()),
		)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case len(m.pending) > 0 && strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("continuing block, %d open (Ctrl+C to discard)", blockDepth(m.source(input))),
		))

	case strings.TrimSpace(input) == "":
		if m.mode == modeEval {
			b.WriteString(hintStyle.Render("Type a statement or press Esc for commands"))
		} else {
			b.WriteString(hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"))
		}

	case len(m.matches) > 0:
		if hint, ok := m.bindingHint(); ok {
			b.WriteString(hint)
		} else {
			b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
		}
	}

	b.WriteString("\n")

	return b.String()
}

// bindingHint describes the variable under the cursor when the word is
// complete and bound, e.g. "n int = 3".
func (m model) bindingHint() (string, bool) {
	if m.mode != modeEval || m.tabActive || len(m.matches) != 1 {
		return "", false
	}

	name := m.input.Value()[m.wordStart:m.wordEnd]
	if m.matches[0].Str != name {
		return "", false
	}

	v, ok := m.env.Get(name)
	if !ok {
		v, ok = interp.Builtin(name)
	}

	if !ok {
		return "", false
	}

	return suggestionStyle.Render(name) + " " +
		hintStyle.Render(v.TypeName()+" = "+display(v)), true
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" && len(m.pending) == 0 {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.pending = nil
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" && len(m.pending) == 0 {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		return m.historyStep(-1, false)

	case tea.KeyDown:
		return m.historyStep(1, false)

	case tea.KeyShiftUp:
		return m.historyStep(-1, true)

	case tea.KeyShiftDown:
		return m.historyStep(1, true)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes, tea.KeySpace:
		// Any typed character ends tab-cycling and keeps the candidate.
		m.tabActive = false

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around. A single candidate
// is completed and confirmed immediately.
func (m model) cycle(step int) (model, tea.Cmd) {
	n := len(m.matches)
	if n == 0 {
		return m, nil
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also drops the candidates once the typed word
// equals the only one left. Deletions and cursor movement pass false so
// that editing never completes unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	if m.tabActive {
		return
	}

	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	// Keep the sole match for a bound variable so its hint is shown.
	word := m.input.Value()[m.wordStart:m.wordEnd]
	if word == m.matches[0].Str && m.mode == modeEval {
		if _, bound := m.env.Get(word); !bound && !interp.IsBuiltin(word) {
			m.matches = nil
		}
	}
}

// source joins the pending lines and input into one program.
func (m model) source(input string) string {
	return strings.Join(append(append([]string(nil), m.pending...), input), "\n")
}

// blockDepth returns the number of unclosed braces in src, or 0 when src
// does not lex.
func blockDepth(src string) int {
	toks, err := lexer.Lex(src)
	if err != nil {
		return 0
	}

	depth := 0

	for _, tok := range toks {
		switch tok.Type {
		case token.LCurly:
			depth++
		case token.RCurly:
			depth--
		}
	}

	return max(depth, 0)
}

func (m model) executeInput() (model, tea.Cmd) {
	input := m.input.Value()
	if strings.TrimSpace(input) == "" && len(m.pending) == 0 {
		return m, nil
	}

	m.input.SetValue("")
	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.matches = nil

	if m.mode == modeCtrl {
		input = strings.TrimSpace(input)

		if err := m.history.Add(input, modeCtrl); err != nil {
			m.logger.DebugContext(m.ctxFunc(), "history write failed", slog.String("error", err.Error()))
		}

		m.historyIdx = m.history.Len()
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	src := m.source(input)

	if blockDepth(src) > 0 {
		m.pending = append(m.pending, input)
		m.input.Prompt = promptStyle.Render(contPrompt)

		return m, nil
	}

	m.pending = nil
	m.input.Prompt = promptStyle.Render(evalPrompt)

	if err := m.history.Add(src, modeEval); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history write failed", slog.String("error", err.Error()))
	}

	m.historyIdx = m.history.Len()

	m, cmd := m.evaluate(src)

	return m, tea.Sequence(tea.Println(formatCommand(src)), cmd)
}

// evaluate runs src in the session environment. Program output is printed
// as it was written, followed by either the error report or, when the last
// statement is an expression, its value.
func (m model) evaluate(src string) (model, tea.Cmd) {
	ctx := m.ctxFunc()

	m.lastSource = src

	m.logger.TraceContext(
		ctx,
		"repl eval",
		slog.String("input", src),
	)

	var (
		out    bytes.Buffer
		result value.Value
		cmds   []tea.Cmd
	)

	// Interactive input is rarely repeated; keep it out of the compile cache.
	nodes, err := lang.Parse(src)
	if err == nil {
		result, err = interp.New(nodes, &out,
			interp.WithLogger(m.logger),
			interp.WithEnvironment(m.env),
		).Run(ctx)
	}

	if out.Len() > 0 {
		cmds = append(cmds, tea.Println(outputStyle.Render(strings.TrimSuffix(out.String(), "\n"))))
	}

	switch {
	case err != nil:
		m.logger.TraceContext(
			ctx,
			"repl eval result",
			slog.Any("error", err),
		)

		cmds = append(cmds, tea.Println(errorStyle.Render(report(src, err))))

	case echoes(nodes) && result != nil:
		m.logger.TraceContext(
			ctx,
			"repl eval result",
			slog.String("type", result.TypeName()),
		)

		cmds = append(cmds, tea.Println(resultStyle.Render(display(result))))
	}

	return m, tea.Sequence(cmds...)
}

// echoes reports whether the value of the last statement should be shown:
// it is an expression other than a plain assignment.
func echoes(nodes []ast.Node) bool {
	if len(nodes) == 0 {
		return false
	}

	switch nodes[len(nodes)-1].(type) {
	case *ast.VarAssign, *ast.Out, *ast.If, *ast.Loop, *ast.Repeat, *ast.Break:
		return false
	default:
		return true
	}
}

// display formats v for the result line. Strings are quoted so that they
// are distinguishable from other values.
func display(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return strconv.Quote(s.V)
	}

	return v.String()
}

// report formats err for the error line.
func report(src string, err error) string {
	if e, ok := diag.As(err); ok {
		return e.Detail(sourceName, src)
	}

	return "error: " + err.Error()
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCtrlCommand(input))

	cmd := parts[0]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
		slog.Any("args", parts[1:]),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "v", "vars":
		return m, tea.Sequence(echoCmd, tea.Println(m.listVars()))

	case "r", "reset":
		m.env = interp.NewEnvironment()
		for name, v := range m.initial {
			m.env.Set(name, v)
		}

		refreshMatches(&m, false)

		return m, tea.Sequence(echoCmd, tea.Println(hintStyle.Render("environment reset")))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echoCmd, m.edit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

// edit opens the editor on the pending input or the most recent program.
func (m model) edit() tea.Cmd {
	content := m.lastSource
	if len(m.pending) > 0 {
		content = m.source("")
	}

	cmd := &editCommand{
		content: content,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.result == "":
			return editCancelledMsg{}
		default:
			return editDoneMsg{src: cmd.result}
		}
	})
}

// listVars renders the bound variables, one per line, in lexical order.
func (m model) listVars() string {
	names := m.env.Names()
	if len(names) == 0 {
		return hintStyle.Render("  no variables bound")
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	var b strings.Builder

	for _, name := range names {
		v, _ := m.env.Get(name)
		fmt.Fprintf(&b, "  %-*s %s\n", width, name, hintStyle.Render(v.TypeName()+" = "+display(v)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historyStep moves through history by step (-1 older, +1 newer). With
// inMode set only entries of the current mode are visited; otherwise the
// mode follows the entry. Moving past the newest entry clears the input.
func (m model) historyStep(step int, inMode bool) (model, tea.Cmd) {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if inMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m, _ = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m, nil
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// toggleMode switches between eval and control modes, preserving input state.
func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to the specified mode, preserving input state.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modeEval {
		m.evalText = m.input.Value()
		m.evalCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		prompt := evalPrompt
		if len(m.pending) > 0 {
			prompt = contPrompt
		}

		m.input.Prompt = promptStyle.Render(prompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m, nil
}
