package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vugu/vgnav"
	"github.com/vugu/vgnav/approutes"
	"github.com/vugu/vgnav/internal/config"
	"github.com/vugu/vgnav/internal/logs"
	"github.com/vugu/vgnav/rgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {

	fs := flag.NewFlagSet("vgnavdemo", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "", "Config file to use instead of searching for vgnav.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logs.New(cfg.Logging, out)
	if err != nil {
		return err
	}
	defer closeLog()

	table, err := loadTable(cfg)
	if err != nil {
		// an invalid table must stop startup
		return err
	}

	history, err := newHistory(cfg, logger)
	if err != nil {
		return err
	}

	r := vgnav.New(table, history, vgnav.Options{Base: cfg.BaseURL, Logger: logger})
	defer r.Close()

	s := &shell{out: out, history: history}
	s.NavigatorSet(r)
	r.AddHandler(vgnav.RouteHandlerFunc(s.mount))
	r.SetNotFound(vgnav.RouteHandlerFunc(s.notFound))

	s.mountCurrent(r)

	return s.loop(r, in)
}

func loadTable(cfg config.Config) (*vgnav.Table, error) {
	if cfg.RoutesFile != "" {
		return rgen.Table(cfg.RoutesFile)
	}
	return approutes.MakeTable()
}

// newHistory uses the browser's history when running in one and a
// MemoryHistory starting at the configured address otherwise.
func newHistory(cfg config.Config, logger *slog.Logger) (vgnav.History, error) {
	bh, err := vgnav.NewBrowserHistory(cfg.UseFragment)
	if err == nil {
		return bh, nil
	}
	logger.Debug("using memory history", "reason", err)
	return vgnav.NewMemoryHistory(strings.TrimSuffix(cfg.BaseURL, "/") + cfg.InitialPath), nil
}

// shell renders the current view as a line of text.
type shell struct {
	vgnav.NavigatorRef
	out     io.Writer
	history vgnav.History
}

func (s *shell) mount(rm *vgnav.RouteMatch) {
	if rm.Found {
		fmt.Fprintf(s.out, "view: %s (%s)\n", rm.Route.View, rm.Path)
	}
}

// mountCurrent renders whatever the resolver currently points at.
func (s *shell) mountCurrent(r *vgnav.Resolver) {
	cur, ok := r.CurrentView()
	rm := &vgnav.RouteMatch{Path: r.CurrentPath(), Route: cur, Found: ok}
	if !ok {
		s.notFound(rm)
		return
	}
	s.mount(rm)
}

func (s *shell) notFound(rm *vgnav.RouteMatch) {
	fmt.Fprintf(s.out, "not found: %s\n", rm.Path)
}

func (s *shell) loop(r *vgnav.Resolver, in io.Reader) error {

	sc := bufio.NewScanner(in)
	for sc.Scan() {

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, arg := fields[0], ""
		if len(fields) > 1 {
			arg = fields[1]
		}

		switch cmd {
		case "go", "replace":
			if arg == "" {
				fmt.Fprintf(s.out, "usage: %s <path or name>\n", cmd)
				continue
			}
			var opts []vgnav.NavigatorOpt
			if cmd == "replace" {
				opts = append(opts, vgnav.NavReplace)
			}
			_, err := s.Navigate(arg, opts...)
			if err != nil && !vgnav.IsPath(arg) {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		case "back", "forward":
			mh, ok := s.history.(*vgnav.MemoryHistory)
			if !ok {
				fmt.Fprintln(s.out, "use the browser's buttons")
				continue
			}
			moved := mh.Back
			if cmd == "forward" {
				moved = mh.Forward
			}
			if !moved() {
				fmt.Fprintf(s.out, "cannot go %s\n", cmd)
			}
		case "current":
			if rt, ok := r.CurrentView(); ok {
				fmt.Fprintf(s.out, "current: %s (%s)\n", rt.Name, rt.Path)
			} else {
				fmt.Fprintf(s.out, "current: not found (%s)\n", r.CurrentPath())
			}
		case "state":
			st := r.State()
			fmt.Fprintf(s.out, "state: %s [%s] at %d\n", st.CurrentPath, strings.Join(st.Stack, " "), st.Index)
		case "routes":
			for _, rt := range r.Table().Routes() {
				fmt.Fprintf(s.out, "%-10s %s\n", rt.Name, rt.Path)
			}
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(s.out, "unknown command %q\n", cmd)
		}
	}

	return sc.Err()
}
