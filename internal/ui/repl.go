package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	shellwords "github.com/mattn/go-shellwords"

	"weekplanner/internal/models/task"
	"weekplanner/internal/planner"
	"weekplanner/internal/service"
	"weekplanner/internal/week"
)

// REPL is the interactive front-end. It reads one command per line,
// tokenizes it so quoted paths survive, turns it into an intent and lets
// the controller do the rest. Strictly synchronous: every loop iteration
// is one user action followed by a redraw.
type REPL struct {
	ctrl   *planner.Controller
	in     *bufio.Reader
	out    io.Writer
	parser *shellwords.Parser
	clock  func() time.Time

	lines   chan lineResult
	readErr error
}

type lineResult struct {
	text string
	err  error
}

func NewREPL(ctrl *planner.Controller, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		ctrl:   ctrl,
		in:     bufio.NewReader(in),
		out:    out,
		parser: shellwords.NewParser(),
		clock:  time.Now,
	}
}

func (r *REPL) Run(ctx context.Context) error {
	// A single goroutine owns the reader; readLine races its results
	// against ctx so an interrupt ends the loop even mid-read.
	r.lines = make(chan lineResult, 1)
	go func() {
		for {
			line, err := r.in.ReadString('\n')
			r.lines <- lineResult{strings.TrimSpace(line), err}
			if err != nil {
				return
			}
		}
	}()

	r.redraw(ctx)

	for {
		fmt.Fprint(r.out, "> ")
		line, err := r.readLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		args, err := r.parser.Parse(line)
		if err != nil {
			fmt.Fprintf(r.out, "cannot parse command: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		if args[0] == "quit" || args[0] == "q" || args[0] == "exit" {
			return nil
		}
		r.dispatch(ctx, args)
	}
}

// readLine hands out the next input line. Errors are sticky: once the
// reader is done, every later call fails the same way instead of blocking
// on an empty channel.
func (r *REPL) readLine(ctx context.Context) (string, error) {
	if r.readErr != nil {
		return "", r.readErr
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-r.lines:
		if res.err != nil {
			r.readErr = res.err
		}
		return res.text, res.err
	}
}

func (r *REPL) dispatch(ctx context.Context, args []string) {
	switch args[0] {
	case "help", "h", "?":
		r.printHelp()

	case "next", "n":
		r.apply(ctx, planner.NextWeek{})

	case "prev", "p":
		r.apply(ctx, planner.PrevWeek{})

	case "today":
		r.apply(ctx, planner.GoToDate{Date: r.clock()})

	case "week":
		if len(args) < 2 {
			fmt.Fprintln(r.out, "usage: week <YYYY-MM-DD>")
			return
		}
		d, err := task.ParseDate(args[1])
		if err != nil {
			fmt.Fprintf(r.out, "bad date %q, expected YYYY-MM-DD\n", args[1])
			return
		}
		r.apply(ctx, planner.GoToDate{Date: d})

	case "add":
		if len(args) < 2 {
			fmt.Fprintln(r.out, "usage: add <YYYY-MM-DD | monday..sunday>")
			return
		}
		r.addFlow(ctx, args[1])

	case "edit":
		if id, ok := r.idArg(args, "edit <id>"); ok {
			r.editFlow(ctx, id)
		}

	case "del", "rm":
		if id, ok := r.idArg(args, "del <id>"); ok {
			r.deleteFlow(ctx, id)
		}

	case "done", "toggle":
		if id, ok := r.idArg(args, "done <id>"); ok {
			r.apply(ctx, planner.ToggleTask{ID: id})
		}

	case "open":
		if id, ok := r.idArg(args, "open <id>"); ok {
			if err := r.ctrl.Apply(ctx, planner.OpenAttachment{ID: id}); err != nil {
				r.report(err)
			} else {
				fmt.Fprintln(r.out, "opening attachment...")
			}
		}

	default:
		fmt.Fprintf(r.out, "unknown command %q, try 'help'\n", args[0])
	}
}

// apply runs the intent and redraws on success.
func (r *REPL) apply(ctx context.Context, intent planner.Intent) {
	if err := r.ctrl.Apply(ctx, intent); err != nil {
		r.report(err)
		return
	}
	r.redraw(ctx)
}

func (r *REPL) addFlow(ctx context.Context, dayArg string) {
	date, err := r.resolveDate(dayArg)
	if err != nil {
		fmt.Fprintln(r.out, err.Error())
		return
	}

	in := service.CreateTaskInput{Date: date}
	var ok bool
	if in.Name, ok = r.prompt(ctx, "Name"); !ok {
		return
	}
	if in.Description, ok = r.prompt(ctx, "Description (optional)"); !ok {
		return
	}
	if in.Time, ok = r.prompt(ctx, "Time HH:MM (optional)"); !ok {
		return
	}
	if in.Location, ok = r.prompt(ctx, "Location (optional)"); !ok {
		return
	}
	// Stand-in for the file picker: an empty answer means "no attachment
	// chosen", same as cancelling the dialog.
	if in.AttachmentSource, ok = r.prompt(ctx, "Attachment path (optional)"); !ok {
		return
	}

	r.apply(ctx, planner.AddTask{Input: in})
}

func (r *REPL) editFlow(ctx context.Context, id int64) {
	current, err := r.ctrl.Task(ctx, id)
	if err != nil {
		r.report(err)
		return
	}

	fmt.Fprintln(r.out, "press enter to keep the current value, '-' clears an optional field")
	in := service.UpdateTaskInput{}

	name, ok := r.prompt(ctx, fmt.Sprintf("Name [%s]", current.Name))
	if !ok {
		return
	}
	if name != "" {
		in.Name = &name
	}

	desc, ok := r.prompt(ctx, fmt.Sprintf("Description [%s]", current.Description))
	if !ok {
		return
	}
	if desc != "" {
		desc = clearDash(desc)
		in.Description = &desc
	}

	tm, ok := r.prompt(ctx, fmt.Sprintf("Time [%s]", current.Time))
	if !ok {
		return
	}
	if tm != "" {
		tm = clearDash(tm)
		in.Time = &tm
	}

	loc, ok := r.prompt(ctx, fmt.Sprintf("Location [%s]", current.Location))
	if !ok {
		return
	}
	if loc != "" {
		loc = clearDash(loc)
		in.Location = &loc
	}

	dateStr, ok := r.prompt(ctx, fmt.Sprintf("Date [%s]", current.DateString()))
	if !ok {
		return
	}
	if dateStr != "" {
		d, err := task.ParseDate(dateStr)
		if err != nil {
			fmt.Fprintf(r.out, "bad date %q, edit cancelled\n", dateStr)
			return
		}
		in.Date = &d
	}

	att, ok := r.prompt(ctx, fmt.Sprintf("Attachment [%s] (path replaces, '-' removes)", current.AttachmentPath))
	if !ok {
		return
	}
	if att != "" {
		att = clearDash(att)
		in.AttachmentSource = &att
	}

	r.apply(ctx, planner.EditTask{ID: id, Input: in})
}

// clearDash maps the explicit "clear this field" answer onto the empty
// value the service expects.
func clearDash(answer string) string {
	if answer == "-" {
		return ""
	}
	return answer
}

func (r *REPL) deleteFlow(ctx context.Context, id int64) {
	answer, ok := r.prompt(ctx, fmt.Sprintf("Delete task %d? [y/N]", id))
	if !ok {
		return
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(r.out, "kept")
		return
	}
	r.apply(ctx, planner.DeleteTask{ID: id})
}

// resolveDate accepts either an explicit date or a weekday name, which maps
// onto the currently displayed week.
func (r *REPL) resolveDate(arg string) (time.Time, error) {
	if d, err := task.ParseDate(arg); err == nil {
		return d, nil
	}

	names := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	dates := week.Dates(r.ctrl.Anchor())
	for i, name := range names {
		if strings.EqualFold(arg, name) || strings.EqualFold(arg, name[:3]) {
			return dates[i], nil
		}
	}
	return time.Time{}, fmt.Errorf("bad day %q: use YYYY-MM-DD or a weekday name", arg)
}

func (r *REPL) idArg(args []string, usage string) (int64, bool) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "usage: "+usage)
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[1], "#"), 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "bad task id %q\n", args[1])
		return 0, false
	}
	return id, true
}

// prompt asks for one field. ok=false means the input ended or the context
// was cancelled mid-flow; callers abandon the flow then.
func (r *REPL) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprintf(r.out, "%s: ", label)
	line, err := r.readLine(ctx)
	if err != nil {
		return "", false
	}
	return line, true
}

func (r *REPL) redraw(ctx context.Context) {
	view, err := r.ctrl.Week(ctx)
	if err != nil {
		r.report(err)
		return
	}
	RenderWeek(r.out, view, r.clock())
}

// report turns a failure into a one-line user-visible message. Nothing is
// swallowed and nothing is fatal.
func (r *REPL) report(err error) {
	var b *service.BusinessError
	if errors.As(err, &b) {
		fmt.Fprintf(r.out, "error: %s\n", b.Message)
		return
	}
	fmt.Fprintf(r.out, "error: %v\n", err)
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `commands:
  next | prev | today      move between weeks
  week <YYYY-MM-DD>        jump to the week containing a date
  add <date|weekday>       add a task (prompts for details)
  edit <id>                edit a task (enter keeps, '-' clears)
  del <id>                 delete a task (asks for confirmation)
  done <id>                toggle completion
  open <id>                open the attachment with the default app
  quit                     leave
`)
}
