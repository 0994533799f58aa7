// Package tui implements the interactive calcium REPL.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/calciumlabs/calcium"
	"github.com/calciumlabs/calcium/config"
	"github.com/calciumlabs/calcium/logging"
)

const replHelp = `commands:
  <expression>              simplify and show
  eval <expr> [x=1 y=2]     evaluate numerically
  diff <var> <expr>         differentiate
  int <var> <expr>          integrate symbolically
  int <var> <lo> <hi> <expr>  definite integral
  latex <expr>              render as LaTeX
  help                      show this help
  quit                      leave the REPL`

// Model is the bubbletea model backing the REPL.
type Model struct {
	input     textinput.Model
	history   []string
	sessionID string
	cfg       config.Config
	log       logging.Logger
	quitting  bool
}

// New builds a REPL model with a fresh session identifier.
func New(cfg config.Config, log logging.Logger) Model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(cfg.Prompt)
	ti.Placeholder = "x^2 + sin(x)"
	ti.Focus()

	id := uuid.NewString()
	return Model{
		input:     ti,
		sessionID: id,
		cfg:       cfg,
		log:       log.With("session", id),
	}
}

// Run starts the REPL and blocks until the user quits.
func Run(cfg config.Config, log logging.Logger) error {
	m := New(cfg, log)
	m.log.Info("repl started")
	_, err := tea.NewProgram(m).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			m.log.Info("repl closed")
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				m.quitting = true
				m.log.Info("repl closed")
				return m, tea.Quit
			}
			m.history = append(m.history, inputEchoStyle.Render(m.cfg.Prompt+line))
			m.history = append(m.history, m.execute(line))
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("calcium"))
	sb.WriteString(helpStyle.Render("  type 'help' for commands"))
	sb.WriteString("\n\n")
	for _, line := range m.history {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	return sb.String()
}

// execute runs one REPL line and returns the rendered output.
func (m Model) execute(line string) string {
	m.log.Debug("input", "line", line)
	out, err := m.dispatch(line)
	if err != nil {
		m.log.Debug("error", "err", err.Error())
		return errorStyle.Render(err.Error())
	}
	return resultStyle.Render(out)
}

func (m Model) dispatch(line string) (string, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "help":
		return replHelp, nil
	case "eval":
		return m.runEval(rest)
	case "diff":
		return m.runDiff(rest)
	case "int":
		return m.runIntegrate(rest)
	case "latex":
		e, err := calcium.Parse(rest)
		if err != nil {
			return "", err
		}
		return calcium.LaTeX(e), nil
	}
	e, err := calcium.Parse(line)
	if err != nil {
		return "", err
	}
	s, err := calcium.Simplify(e)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

func (m Model) runEval(rest string) (string, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", fmt.Errorf("usage: eval <expr> [name=value ...]")
	}
	vars := map[string]float64{}
	exprEnd := len(fields)
	for exprEnd > 1 && strings.Contains(fields[exprEnd-1], "=") {
		name, val, _ := strings.Cut(fields[exprEnd-1], "=")
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return "", fmt.Errorf("invalid binding %q", fields[exprEnd-1])
		}
		vars[name] = v
		exprEnd--
	}
	e, err := calcium.Parse(strings.Join(fields[:exprEnd], " "))
	if err != nil {
		return "", err
	}
	v, err := calcium.Evaluate(e, vars)
	if err != nil {
		return "", err
	}
	return m.formatNumber(v), nil
}

func (m Model) runDiff(rest string) (string, error) {
	wrt, exprSrc, ok := strings.Cut(strings.TrimSpace(rest), " ")
	if !ok {
		return "", fmt.Errorf("usage: diff <var> <expr>")
	}
	e, err := calcium.Parse(exprSrc)
	if err != nil {
		return "", err
	}
	d, err := calcium.Differentiate(e, wrt)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func (m Model) runIntegrate(rest string) (string, error) {
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return "", fmt.Errorf("usage: int <var> [<lo> <hi>] <expr>")
	}
	wrt := fields[0]

	if len(fields) >= 4 {
		lo, loErr := strconv.ParseFloat(fields[1], 64)
		hi, hiErr := strconv.ParseFloat(fields[2], 64)
		if loErr == nil && hiErr == nil {
			e, err := calcium.Parse(strings.Join(fields[3:], " "))
			if err != nil {
				return "", err
			}
			v, err := calcium.IntegrateDefinite(e, wrt, lo, hi,
				calcium.DefiniteOptions{NumRectangles: m.cfg.Rectangles})
			if err != nil {
				return "", err
			}
			return m.formatNumber(v), nil
		}
	}

	e, err := calcium.Parse(strings.Join(fields[1:], " "))
	if err != nil {
		return "", err
	}
	res, err := calcium.IntegrateIndefinite(e, wrt)
	if err != nil {
		return "", err
	}
	if res.Unintegratable {
		return "", fmt.Errorf("no antiderivative found for %s", e)
	}
	return res.Expression.String(), nil
}

func (m Model) formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', m.cfg.Precision, 64)
}
