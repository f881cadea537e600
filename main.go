package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kingpin"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jesspatton/arctree/config"
	"github.com/jesspatton/arctree/engine"
	"github.com/jesspatton/arctree/filesystem"
	"github.com/jesspatton/arctree/logger"
	"github.com/jesspatton/arctree/render"
	"github.com/jesspatton/arctree/ui"
)

var version = "v0.1.0"

var (
	source      = kingpin.Arg("source", "project directory or archive (.zip, .jar, .tar, .tar.gz, .tar.xz, .tar.zst)").Default(".").String()
	style       = kingpin.Flag("style", "listing style: tree, indent or paths").Enum(config.StyleTree, config.StyleIndent, config.StylePaths)
	noCompress  = kingpin.Flag("no-compress", "list every directory on its own line").Bool()
	plain       = kingpin.Flag("plain", "disable colors").Bool()
	interactive = kingpin.Flag("interactive", "open the tree explorer").Short('i').Bool()
	watch       = kingpin.Flag("watch", "reprint the listing when the directory changes").Short('w').Bool()
	gitignore   = kingpin.Flag("gitignore", "honour nested .gitignore and .ignore files").Bool()
	verifyClean = kingpin.Flag("verify-clean", "fail when the git working tree has uncommitted changes").Bool()
	force       = kingpin.Flag("force", "skip the working tree check").Bool()
	logLevel    = kingpin.Flag("log-level", "debug, info, warn or error").Envar("ARCTREE_LOG_LEVEL").Default("warn").String()
)

func main() {
	kingpin.Version(version)
	kingpin.Parse()

	logger.SetLevel(*logLevel)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "arctree: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	info, err := os.Stat(*source)
	if err != nil {
		return err
	}
	isDir := info.IsDir()

	root := *source
	if !isDir {
		root = filepath.Dir(*source)
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	applyFlags(&cfg)
	logger.Debugf("config for %s: %+v", root, cfg)

	if isDir && cfg.VerifyClean && !*force {
		if err := filesystem.VerifyClean(*source); err != nil {
			return fmt.Errorf("%w\nuse --force to list anyway", err)
		}
	}

	opts := render.Options{Style: render.Style(cfg.Style), Plain: *plain}

	switch {
	case *interactive:
		e := engine.New(*source, cfg, isDir)
		defer e.Close()
		p := tea.NewProgram(ui.NewModel(e), tea.WithAltScreen())
		_, err := p.Run()
		return err

	case *watch && isDir:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return engine.Watch(ctx, *source, cfg, func(res engine.Result, err error) {
			if err != nil {
				logger.Errorf("reload %s: %v", *source, err)
				return
			}
			// clear the screen before each listing
			fmt.Print("\033[H\033[2J")
			if err := printListing(os.Stdout, res, opts); err != nil {
				logger.Errorf("print: %v", err)
			}
		})

	default:
		if *watch {
			logger.Warnf("%s is not a directory, --watch ignored", *source)
		}
		res, err := engine.Load(*source, cfg)
		if err != nil {
			return err
		}
		return printListing(os.Stdout, res, opts)
	}
}

// applyFlags lets command line flags override the project config.
func applyFlags(cfg *config.Config) {
	if *style != "" {
		cfg.Style = *style
	}
	if *noCompress {
		cfg.Compress = false
	}
	if *gitignore {
		cfg.Gitignore = true
	}
	if *verifyClean {
		cfg.VerifyClean = true
	}
}

func printListing(out io.Writer, res engine.Result, opts render.Options) error {
	w := bufio.NewWriter(out)
	opts.Marks = res.Marks
	if res.Summary != nil {
		if err := render.Summary(w, *res.Summary, opts); err != nil {
			return err
		}
	}
	if err := render.Tree(w, res.Builder, opts); err != nil {
		return err
	}
	return w.Flush()
}
