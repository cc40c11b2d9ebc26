package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/leftmike/algebra/pkg/config"
	"github.com/leftmike/algebra/pkg/evaluate"
)

const (
	historyFile   = ".algebra_history"
	defaultConfig = "algebra.yaml"
	prompt        = "algebra: "
)

type defines []string

func (d *defines) String() string {
	return strings.Join(*d, ",")
}

func (d *defines) Set(s string) error {
	if name, _, ok := strings.Cut(s, "="); !ok || name == "" {
		return fmt.Errorf("expected NAME=EXPR: %s", s)
	}
	*d = append(*d, s)
	return nil
}

var (
	exprFlag     = flag.String("e", "", "evaluate `expr` and exit")
	fileFlag     = flag.String("f", "", "evaluate the statements in `file` and exit")
	simplifyFlag = flag.Bool("s", false, "simplify results")
	isolateFlag  = flag.String("x", "", "isolate `name` in results containing it")
	precFlag     = flag.Uint("p", 0, "precision in `bits`")
	tolFlag      = flag.Int("t", 0, "collapse runs of `n` or more trailing 0s or 9s")
	configFlag   = flag.String("config", defaultConfig, "configuration `file`")
	jsonFlag     = flag.Bool("json", false, "print results as JSON trees")
	jsonInFlag   = flag.Bool("json-in", false, "read statements as JSON trees, one per line")
	verboseFlag  = flag.Bool("v", false, "log each evaluation stage")
	defineFlags  defines
)

func init() {
	flag.Var(&defineFlags, "d", "define `NAME=EXPR` before evaluating; may be repeated")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [expression ...]\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

// absPath makes path usable with a filesystem rooted at /.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func loadConfig(fsys billy.Filesystem) (config.Config, error) {
	var cfg config.Config
	var err error
	if *configFlag == defaultConfig {
		cfg, err = config.LoadIfExists(fsys, absPath(*configFlag))
	} else {
		cfg, err = config.Load(fsys, absPath(*configFlag))
	}
	if err != nil {
		return cfg, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.Simplify = *simplifyFlag
		case "x":
			cfg.Isolate = *isolateFlag
		case "p":
			cfg.Precision = *precFlag
		case "t":
			cfg.Tolerance = *tolFlag
		case "json":
			cfg.JSON = *jsonFlag
		case "json-in":
			cfg.JSONInput = *jsonInFlag
		case "v":
			if *verboseFlag {
				cfg.LogLevel = zerolog.DebugLevel.String()
			}
		}
	})
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	fsys := osfs.New("/")

	cfg, err := loadConfig(fsys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "algebra: %s\n", err)
		os.Exit(2)
	}
	lvl, _ := cfg.Level()
	log = log.Level(lvl)

	ses := evaluate.NewSession(
		evaluate.Options{
			Prec:      cfg.Precision,
			Simplify:  cfg.Simplify,
			Isolate:   cfg.Isolate,
			Format:    cfg.FormatOptions(),
			JSON:      cfg.JSON,
			JSONInput: cfg.JSONInput,
		}, log)
	defer ses.Close()

	err = define(ses, cfg)
	if err == nil {
		err = run(ses, fsys, cfg.JSONInput)
	}
	if err != nil {
		if *verboseFlag {
			fmt.Fprintf(os.Stderr, "algebra: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "algebra: %s\n", err)
		}
		ses.Close()
		os.Exit(1)
	}
}

func define(ses *evaluate.Session, cfg config.Config) error {
	for _, name := range cfg.DefineNames() {
		if err := ses.Define(name, cfg.Defines[name]); err != nil {
			return err
		}
	}
	for _, d := range defineFlags {
		name, src, _ := strings.Cut(d, "=")
		if err := ses.Define(strings.TrimSpace(name), src); err != nil {
			return err
		}
	}
	return nil
}

func run(ses *evaluate.Session, fsys billy.Filesystem, jsonIn bool) error {
	if *exprFlag != "" {
		return evaluateString(ses, *exprFlag, jsonIn)
	} else if *fileFlag != "" {
		return errors.Wrap(ses.RunFile(fsys, absPath(*fileFlag), os.Stdout), "algebra")
	} else if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			if err := evaluateString(ses, arg, jsonIn); err != nil {
				return err
			}
		}
		return nil
	} else if jsonIn {
		return ses.RunJSON(os.Stdin, "stdin", os.Stdout, false)
	} else if isatty.IsTerminal(os.Stdin.Fd()) {
		return repl(ses)
	}
	return ses.Run(bufio.NewReader(os.Stdin), "stdin", os.Stdout, false)
}

func evaluateString(ses *evaluate.Session, s string, jsonIn bool) error {
	var r evaluate.Result
	var err error
	if jsonIn {
		r, err = ses.EvaluateJSON([]byte(s))
	} else {
		r, err = ses.EvaluateString(s)
	}
	if err != nil {
		return errors.Wrapf(err, "%s", s)
	}
	return ses.Print(os.Stdout, r)
}

func repl(ses *evaluate.Session) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	var failed error
	for {
		line, err := ln.Prompt(prompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			break
		} else if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if command(ses, line) {
				break
			}
			continue
		}

		err = ses.Run(strings.NewReader(line), "console", os.Stdout, false)
		if err != nil {
			failed = err
		}
	}

	return failed
}

// command runs a REPL command; it returns true to quit.
func command(ses *evaluate.Session, cmd string) bool {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":vars":
		fmt.Println(strings.Join(ses.Scope().Names(), " "))
	case ":truth":
		fmt.Println(ses.Scope().Truth())
	case ":reset":
		ses.Reset()
	default:
		fmt.Printf("unknown command %s; try :quit, :vars, :truth, or :reset\n", cmd)
	}
	return false
}
