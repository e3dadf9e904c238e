package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rubiojr/lvgen/codegen"
	"github.com/rubiojr/lvgen/config"
)

// Redirected by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Execute runs the lvgen CLI with the given version string.
func Execute(version string) {
	if err := newApp(version).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(version string) *cli.Command {
	return &cli.Command{
		Name:                   "lvgen",
		Usage:                  "Generate cgo wrappers for LVGL from bindgen declarations",
		Version:                version,
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: nearest " + config.FileName + ")",
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Deny-list profile (" + strings.Join(config.ProfileNames(), ", ") + ")",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "C symbol prefix",
			},
			&cli.StringFlag{
				Name:  "package",
				Usage: "Go package of the generated files",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log progress (repeat for more)",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Write one <widget>_gen.go file per widget plus " + codegen.ConstructorsFile,
				ArgsUsage: "<bindings.rs>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print what would be generated without writing files",
					},
				},
				Action: generateAction,
			},
			{
				Name:      "groups",
				Usage:     "List the widgets found in the declarations and their members",
				ArgsUsage: "<bindings.rs>",
				Action:    groupsAction,
			},
			{
				Name:      "skipped",
				Usage:     "List functions that cannot be wrapped",
				ArgsUsage: "<bindings.rs>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "Include expected skips (deny-list, constructors)",
					},
				},
				Action: skippedAction,
			},
			{
				Name:      "functions",
				Usage:     "List every prefixed function in the declarations",
				ArgsUsage: "<bindings.rs>",
				Action:    functionsAction,
			},
		},
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return nil, err
	}
	if p := cmd.String("profile"); p != "" {
		cfg.Profile = p
	}
	if p := cmd.String("prefix"); p != "" {
		cfg.Prefix = p
	}
	if p := cmd.String("package"); p != "" {
		cfg.Package = p
	}
	return cfg, nil
}

// loadGenerator builds a generator from the flags and loads the input
// file named by the first argument.
func loadGenerator(cmd *cli.Command) (*codegen.Generator, error) {
	if cmd.NArg() < 1 {
		return nil, fmt.Errorf("usage: lvgen %s <bindings.rs>", cmd.Name)
	}
	commonlog.Configure(cmd.Count("verbose"), nil)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	g, err := codegen.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := g.LoadFile(cmd.Args().First()); err != nil {
		return nil, err
	}
	return g, nil
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	g, err := loadGenerator(cmd)
	if err != nil {
		return err
	}
	res, err := g.Generate()
	if err != nil {
		return err
	}

	p := newPalette(cmd)
	if cmd.Bool("dry-run") {
		printPlan(stdout, cmd.Args().First(), g, res, p)
		return nil
	}

	out := cmd.String("output")
	if err := res.WriteDir(out); err != nil {
		return err
	}
	printSkips(stderr, res.Loud(), p)

	wrappers := 0
	for _, f := range res.Files {
		wrappers += len(f.Functions)
	}
	fmt.Fprintf(stderr, "%s%d wrappers%s in %d files written to %s, %d skipped\n",
		p.ok, wrappers, p.reset, len(res.Files), filepath.Clean(out), len(res.Skipped))
	return nil
}

func groupsAction(ctx context.Context, cmd *cli.Command) error {
	g, err := loadGenerator(cmd)
	if err != nil {
		return err
	}
	for _, w := range g.Widgets() {
		ctor := "-"
		if w.Ctor != nil {
			ctor = w.Ctor.Name
		}
		fmt.Fprintf(stdout, "%s (%d members, constructor %s)\n", w.Name, len(w.Methods), ctor)
		for _, m := range w.Methods {
			fmt.Fprintf(stdout, "  %s\n", m.Name)
		}
	}
	return nil
}

func skippedAction(ctx context.Context, cmd *cli.Command) error {
	g, err := loadGenerator(cmd)
	if err != nil {
		return err
	}
	res, err := g.Generate()
	if err != nil {
		return err
	}
	skips := res.Loud()
	if cmd.Bool("all") {
		skips = res.Skipped
	}
	for _, s := range skips {
		fmt.Fprintln(stdout, s)
	}
	return nil
}

func functionsAction(ctx context.Context, cmd *cli.Command) error {
	g, err := loadGenerator(cmd)
	if err != nil {
		return err
	}
	for _, name := range g.FunctionNames() {
		fmt.Fprintln(stdout, name)
	}
	return nil
}

type palette struct {
	ok, fail, reset string
}

// newPalette enables colour only when stderr is a terminal and neither
// --no-color nor NO_COLOR ask otherwise.
func newPalette(cmd *cli.Command) palette {
	if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" {
		return palette{}
	}
	f, ok := stderr.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return palette{}
	}
	return palette{ok: "\033[32m", fail: "\033[31m", reset: "\033[0m"}
}

func printSkips(w io.Writer, skips []codegen.Skip, p palette) {
	for _, s := range skips {
		fmt.Fprintf(w, "  %s✗%s %-32s // %s\n", p.fail, p.reset, s.Function, s.Reason)
	}
}

func printPlan(w io.Writer, input string, g *codegen.Generator, res *codegen.Result, p palette) {
	wrappers := 0
	for _, f := range res.Files {
		wrappers += len(f.Functions)
	}
	fmt.Fprintf(w, "Input: %s\n", input)
	fmt.Fprintf(w, "Total: %d functions, %d widgets\n", len(g.Functions()), len(g.Widgets()))
	fmt.Fprintf(w, "  wrapped: %d\n", wrappers)
	fmt.Fprintf(w, "  skipped: %d (%d reported)\n\n", len(res.Skipped), len(res.Loud()))

	for _, f := range res.Files {
		fmt.Fprintf(w, "%s\n", f.FileName)
		for _, name := range f.Functions {
			fmt.Fprintf(w, "  %s✓%s %s\n", p.ok, p.reset, name)
		}
	}
	if loud := res.Loud(); len(loud) > 0 {
		fmt.Fprintln(w, "skipped")
		printSkips(w, loud, p)
	}
}
