package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/surveyscope/surveyscope-cli/internal/analyzer"
	cfgpkg "github.com/surveyscope/surveyscope-cli/internal/config"
	"github.com/surveyscope/surveyscope-cli/internal/survey"
	"github.com/surveyscope/surveyscope-cli/internal/visualizer"
)

const welcome = `
Welcome to SurveyScope!
Type 'help' for available commands.
Start by loading a survey file with: load <path>
`

// errExit signals a clean end of the prompt loop.
var errExit = errors.New("exit")

// usageError marks malformed command input; it never alters filter state.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// repl is the interactive command loop. It has two states: before a
// successful load only load/help/exit run; after one, every command does.
type repl struct {
	cfg      *cfgpkg.Global
	log      *slog.Logger
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	analyzer *analyzer.Analyzer
	loaded   string // path of the loaded file, empty before a load
}

// replCommand binds a handler to its validity state and help line.
type replCommand struct {
	handler   func(r *repl, arg string) error
	needsData bool
	help      string
}

// commandOrder drives help output; the map drives dispatch.
var commandOrder = []string{
	"load", "list_questions", "search", "filter", "distribution",
	"chart", "options", "stats", "status", "reset", "help", "exit",
}

var commands map[string]replCommand

// Populated here rather than in the var block: cmdHelp walks the map,
// which would otherwise be an initialization cycle.
func init() {
	commands = map[string]replCommand{
		"load":           {handler: (*repl).cmdLoad, help: "load <file>          - Load a survey XLSX/CSV file"},
		"list_questions": {handler: (*repl).cmdListQuestions, needsData: true, help: "list_questions       - List all questions in the dataset"},
		"search":         {handler: (*repl).cmdSearch, needsData: true, help: "search <keyword>     - Search questions containing keyword"},
		"filter":         {handler: (*repl).cmdFilter, needsData: true, help: "filter <q>=<opt>     - Filter respondents by question and option"},
		"distribution":   {handler: (*repl).cmdDistribution, needsData: true, help: "distribution <q>     - Show answer distribution for a question"},
		"chart":          {handler: (*repl).cmdChart, needsData: true, help: "chart <q> [format]   - Chart a distribution (terminal/png/table)"},
		"options":        {handler: (*repl).cmdOptions, needsData: true, help: "options <q>          - Show unique answer options for a question"},
		"stats":          {handler: (*repl).cmdStats, needsData: true, help: "stats <q>            - Numeric summary for a question"},
		"status":         {handler: (*repl).cmdStatus, needsData: true, help: "status               - Show loaded file, counts, active filters"},
		"reset":          {handler: (*repl).cmdReset, needsData: true, help: "reset                - Clear all filters"},
		"help":           {handler: (*repl).cmdHelp, help: "help                 - Show this help"},
		"exit":           {handler: (*repl).cmdExit, help: "exit/quit            - Exit the tool"},
		"quit":           {handler: (*repl).cmdExit, help: ""},
	}
}

func newREPL(cfg *cfgpkg.Global, log *slog.Logger, in io.Reader, out, errOut io.Writer) *repl {
	return &repl{
		cfg:      cfg,
		log:      log,
		in:       in,
		out:      out,
		errOut:   errOut,
		analyzer: analyzer.New(),
	}
}

// run reads commands until exit or EOF. Recognized errors print one line
// and re-prompt; anything else is logged with context and also re-prompts.
func (r *repl) run() error {
	fmt.Fprint(r.out, welcome)

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, r.cfg.Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, arg := splitCommand(line)

		c, ok := commands[name]
		if !ok {
			fmt.Fprintf(r.out, "Unknown command: %s\nType 'help' for available commands.\n", name)
			continue
		}
		if c.needsData && !r.analyzer.Loaded() {
			fmt.Fprintln(r.out, "Error: no data loaded. Use 'load <file>' to load a survey file.")
			continue
		}

		err := c.handler(r, arg)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			return nil
		case recognized(err):
			fmt.Fprintln(r.out, color.RedString("Error: %v", err))
		default:
			r.log.Error("command failed", "command", name, "arg", arg, "error", err)
			fmt.Fprintln(r.errOut, color.RedString("Unexpected error: %v", err))
		}
	}
}

// splitCommand takes the first whitespace-delimited token as the
// case-insensitive command name; the rest is argument text.
func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	name := strings.ToLower(parts[0])
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return name, arg
}

// recognized reports whether err belongs to the known taxonomy and can
// be shown as-is without logging.
func recognized(err error) bool {
	var (
		notFound  *survey.FileNotFoundError
		badFormat *survey.InvalidFormatError
		dupHeader *survey.DuplicateHeaderError
		unknown   *analyzer.UnknownColumnError
		noNumeric *analyzer.NoNumericDataError
		usage     *usageError
	)
	return errors.Is(err, analyzer.ErrNoDataLoaded) ||
		errors.Is(err, visualizer.ErrEmptyDistribution) ||
		errors.As(err, &notFound) ||
		errors.As(err, &badFormat) ||
		errors.As(err, &dupHeader) ||
		errors.As(err, &unknown) ||
		errors.As(err, &noNumeric) ||
		errors.As(err, &usage)
}

// load reads a file, replaces the analyzer's table, and echoes counts.
// Shared by the load command and the startup positional argument.
func (r *repl) load(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return &usageError{msg: "usage: load <file>"}
	}
	t, err := survey.LoadSheet(path, r.cfg.SheetName)
	if err != nil {
		return err
	}
	r.analyzer.SetTable(t)
	r.loaded = path
	fmt.Fprintf(r.out, "Successfully loaded: %s\n", path)
	fmt.Fprintf(r.out, "Total respondents: %d\n", t.NumRespondents())
	fmt.Fprintf(r.out, "Total questions: %d\n", t.NumQuestions())
	return nil
}

func (r *repl) cmdLoad(arg string) error { return r.load(arg) }

func (r *repl) cmdListQuestions(_ string) error {
	questions, err := r.analyzer.Questions()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "\nAvailable questions (%d):\n", len(questions))
	r.printQuestions(questions)
	return nil
}

func (r *repl) cmdSearch(arg string) error {
	matches, err := r.analyzer.Search(arg)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintf(r.out, "No questions found matching %q\n", arg)
		return nil
	}
	fmt.Fprintf(r.out, "\nFound %d question(s) matching %q:\n", len(matches), arg)
	r.printQuestions(matches)
	return nil
}

func (r *repl) printQuestions(questions []string) {
	for i, q := range questions {
		mc := ""
		if r.analyzer.Table().IsMultipleChoice(q) {
			mc = " (MC)"
		}
		fmt.Fprintf(r.out, "%3d. %s%s\n", i+1, q, mc)
	}
	fmt.Fprintln(r.out)
}

func (r *repl) cmdFilter(arg string) error {
	question, option, ok := strings.Cut(arg, "=")
	question = strings.TrimSpace(question)
	option = strings.TrimSpace(option)
	if !ok || question == "" || option == "" {
		return &usageError{msg: "usage: filter <question>=<option>"}
	}
	remaining, err := r.analyzer.Filter(question, option)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Filter applied: %s = %s\n", question, option)
	fmt.Fprintf(r.out, "Remaining respondents: %d\n", remaining)
	if conds := r.analyzer.Conditions(); len(conds) > 1 {
		fmt.Fprintf(r.out, "Active filters: %d\n", len(conds))
		for _, c := range conds {
			fmt.Fprintf(r.out, "  - %s = %s\n", c.Question, c.Option)
		}
	}
	return nil
}

func (r *repl) cmdDistribution(arg string) error {
	if arg == "" {
		return &usageError{msg: "usage: distribution <question>"}
	}
	dist, err := r.analyzer.Distribution(arg)
	if err != nil {
		return err
	}
	chart, err := visualizer.TerminalBarChart(dist, dist.Question, r.cfg.BarWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(r.out, chart)
	fmt.Fprintf(r.out, "Total responses: %d\n", dist.TotalTokens)
	fmt.Fprintf(r.out, "Unique answers: %d\n", len(dist.Entries))
	return nil
}

func (r *repl) cmdChart(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return &usageError{msg: "usage: chart <question> [terminal|png|table]"}
	}
	question := fields[0]
	format := "terminal"
	if len(fields) > 1 {
		format = strings.ToLower(fields[1])
	}

	dist, err := r.analyzer.Distribution(question)
	if err != nil {
		return err
	}
	switch format {
	case "terminal":
		chart, err := visualizer.TerminalBarChart(dist, dist.Question, r.cfg.BarWidth)
		if err != nil {
			return err
		}
		fmt.Fprint(r.out, chart)
	case "png":
		path, err := visualizer.SaveBarChart(dist, dist.Question, r.cfg.ChartDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Chart saved to: %s\n", path)
	case "table":
		table, err := visualizer.SummaryTable(dist, dist.Question, r.cfg.TableTopN)
		if err != nil {
			return err
		}
		fmt.Fprint(r.out, table)
	default:
		return &usageError{msg: fmt.Sprintf("unknown chart format %q (use terminal, png, or table)", format)}
	}
	return nil
}

func (r *repl) cmdOptions(arg string) error {
	if arg == "" {
		return &usageError{msg: "usage: options <question>"}
	}
	opts, err := r.analyzer.Options(arg)
	if err != nil {
		return err
	}
	mc := ""
	if r.analyzer.Table().IsMultipleChoice(arg) {
		mc = " (Multiple Choice)"
	}
	fmt.Fprintf(r.out, "\nUnique options for: %s%s\n", strings.TrimSpace(arg), mc)
	for i, o := range opts {
		fmt.Fprintf(r.out, "%3d. %s\n", i+1, o)
	}
	fmt.Fprintf(r.out, "\nTotal unique options: %d\n", len(opts))
	return nil
}

func (r *repl) cmdStats(arg string) error {
	if arg == "" {
		return &usageError{msg: "usage: stats <question>"}
	}
	s, err := r.analyzer.NumericStats(arg)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "\nNumeric summary for: %s\n", s.Question)
	fmt.Fprintf(r.out, "  Count:   %d\n", s.Count)
	fmt.Fprintf(r.out, "  Mean:    %.2f\n", s.Mean)
	fmt.Fprintf(r.out, "  Median:  %.2f\n", s.Median)
	fmt.Fprintf(r.out, "  Std dev: %.2f\n", s.StdDev)
	fmt.Fprintf(r.out, "  Min:     %.2f\n", s.Min)
	fmt.Fprintf(r.out, "  Max:     %.2f\n", s.Max)
	return nil
}

func (r *repl) cmdStatus(_ string) error {
	t := r.analyzer.Table()
	conds := r.analyzer.Conditions()
	fmt.Fprintln(r.out, "\n=== Survey Status ===")
	fmt.Fprintf(r.out, "Loaded file: %s\n", r.loaded)
	fmt.Fprintf(r.out, "Total respondents: %d\n", t.NumRespondents())
	fmt.Fprintf(r.out, "Current view: %d respondents\n", r.analyzer.Respondents())
	fmt.Fprintf(r.out, "Total questions: %d\n", t.NumQuestions())
	fmt.Fprintf(r.out, "Active filters: %d\n", len(conds))
	for _, c := range conds {
		fmt.Fprintf(r.out, "  - %s = %s\n", c.Question, c.Option)
	}
	fmt.Fprintln(r.out)
	return nil
}

func (r *repl) cmdReset(_ string) error {
	if err := r.analyzer.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "All filters reset.")
	fmt.Fprintf(r.out, "Total respondents: %d\n", r.analyzer.Respondents())
	return nil
}

func (r *repl) cmdHelp(_ string) error {
	fmt.Fprintln(r.out, "\nAvailable commands:")
	for _, name := range commandOrder {
		fmt.Fprintln(r.out, "  "+commands[name].help)
	}
	fmt.Fprintln(r.out)
	return nil
}

func (r *repl) cmdExit(_ string) error {
	fmt.Fprintln(r.out, "Thank you for using SurveyScope!")
	return errExit
}
