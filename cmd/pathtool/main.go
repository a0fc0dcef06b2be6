// Command pathtool parses, combines, measures and renders paths in the
// vpath text form.
//
// Usage:
//
//	pathtool [-v] <command> [flags] [path...]
//
// The commands are:
//
//	parse         print paths in normalized form
//	union         combine paths with a boolean operation
//	intersection
//	difference
//	xor
//	simplify      remove overlaps and self-intersections from a path
//	bounds        print the bounding box of paths
//	length        print the length of paths
//	render        fill paths into a PNG image
//	text          convert text to a path
//	run           run the tasks of a TOML or YAML job file
//
// Paths are given as arguments. Without arguments, a single path is read
// from standard input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"honnef.co/go/vpath"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes pathtool with the given arguments and returns the exit
// status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pathtool", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log progress to standard error")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: pathtool [-v] <command> [flags] [path...]")
		fmt.Fprintln(fs.Output(), "commands: parse, union, intersection, difference, xor, simplify, bounds, length, render, text, run")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *verbose {
		vpath.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer vpath.SetLogger(nil)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	var err error
	if cmd == "run" {
		err = runJobs(rest, stdout)
	} else {
		err = runCommand(cmd, rest, stdin, stdout, stderr)
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errFlags):
		return 2
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "pathtool %s: %v\n", cmd, err)
		return 2
	default:
		fmt.Fprintf(stderr, "pathtool %s: %v\n", cmd, err)
		return 1
	}
}

// runCommand handles a single command given on the command line.
func runCommand(cmd string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	t := &task{Command: cmd}
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&t.Output, "o", "", "write output to `file` instead of standard output")
	fs.IntVar(&t.Precision, "prec", 0, "maximum number of `digits` after the decimal point")

	switch cmd {
	case "parse", "length":
	case "bounds":
		fs.BoolVar(&t.Control, "control", false, "include control points")
	case "union", "intersection", "difference", "xor", "simplify":
		fs.StringVar(&t.Rule, "rule", "winding", "fill `rule` of the inputs: winding or evenodd")
	case "render":
		fs.StringVar(&t.Rule, "rule", "winding", "fill `rule`: winding or evenodd")
		fs.IntVar(&t.Width, "w", 0, "image width; fitted to the paths when zero")
		fs.IntVar(&t.Height, "h", 0, "image height; fitted to the paths when zero")
		fs.Float64Var(&t.Scale, "scale", 1, "scale factor from path units to pixels")
	case "text":
		fs.StringVar(&t.Font, "font", "", "TrueType or OpenType font `file`; Go Regular when empty")
		fs.Float64Var(&t.Size, "size", 16, "font size in pixels per em")
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errFlags
	}

	if cmd == "text" {
		t.Text = strings.Join(fs.Args(), " ")
	} else {
		t.Paths = fs.Args()
		if len(t.Paths) == 0 {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return err
			}
			t.Paths = []string{string(data)}
		}
	}

	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	return t.exec(stdout, dir)
}
