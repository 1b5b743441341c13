package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/charmbracelet/log"

	"github.com/sambigeara/machi/pkg/prompt"
	"github.com/sambigeara/machi/pkg/service"
	"github.com/sambigeara/machi/pkg/term"
)

const namespace = "MACHI"

type config struct {
	Root          string        `conf:"default:.machi,help:directory holding one json file per list"`
	Config        string        `conf:"default:.machi.yml,help:yaml file with theme and remotes"`
	OnError       string        `conf:"default:abort,help:abort|skip|ask when a list fails to load"`
	LogFile       string        `conf:"help:append logs to this file"`
	LogLevel      string        `conf:"default:info"`
	ErrorExitCode int           `conf:"default:0,help:exit code used after reporting an error"`
	Timeout       time.Duration `conf:"default:10s,help:time allowed for loading all lists"`
}

func main() {
	var cfg config
	if err := conf.Parse(os.Args[1:], namespace, &cfg); err != nil {
		// Handle `--help` on first attempt of parsing inputs
		if err == conf.ErrHelpWanted {
			usage, err := conf.Usage(namespace, &cfg)
			if err != nil {
				log.Fatal("generating config usage", "err", err)
			}
			fmt.Println(usage)
			os.Exit(0)
		}
		log.Fatal("parsing config", "err", err)
	}

	logger, logCloser, err := service.NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatal("opening log", "err", err)
	}

	err = run(cfg, logger)
	logCloser.Close()

	os.Exit(report(os.Stdout, err, cfg.ErrorExitCode))
}

// report prints err, which only happens once the terminal has been restored, and
// returns the process exit code
func report(w io.Writer, err error, errorExitCode int) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(w, err)
	return errorExitCode
}

func run(cfg config, logger *log.Logger) error {
	policy, err := service.ParsePolicy(cfg.OnError)
	if err != nil {
		return err
	}

	fileCfg, err := service.GetFileConfig(cfg.Config)
	if err != nil {
		return err
	}

	sources, err := fileCfg.Sources(cfg.Root)
	if err != nil {
		return err
	}

	loader := service.NewLoader(policy, logger, sources...)
	loader.SetConfirm(prompt.ConfirmSkip)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	lists, err := loader.Load(ctx)
	if err != nil {
		logger.Error("load", "err", err)
		return err
	}

	s, err := term.NewScreen()
	if err != nil {
		return err
	}

	t := term.NewTerm(service.NewSelector(lists), s, fileCfg.Theme, logger)
	t.EmptyMessage = fmt.Sprintf("No lists found in %s", cfg.Root)
	if err := t.Run(); err != nil {
		logger.Error("terminal", "err", err)
		return err
	}
	return nil
}
