package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/charmbracelet/log"

	"github.com/sambigeara/machi/pkg/service"
)

func main() {
	// Loads every configured source without starting the terminal client, and prints
	// one line per entry, e.g.
	// go run cmd/debug/main.go --root .machi

	var cfg struct {
		Root    string        `conf:"default:.machi"`
		Config  string        `conf:"default:.machi.yml"`
		Timeout time.Duration `conf:"default:10s"`
	}
	if err := conf.Parse(os.Args[1:], "MACHI", &cfg); err != nil {
		if err == conf.ErrHelpWanted {
			usage, err := conf.Usage("MACHI", &cfg)
			if err != nil {
				log.Fatal("generating config usage", "err", err)
			}
			fmt.Println(usage)
			os.Exit(0)
		}
		log.Fatal("parsing config", "err", err)
	}

	fileCfg, err := service.GetFileConfig(cfg.Config)
	if err != nil {
		log.Fatal(err)
	}
	sources, err := fileCfg.Sources(cfg.Root)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	results, err := service.NewLoader(service.PolicySkip, nil, sources...).Collect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("[FAIL] [%s] [%s] [%v]\n", r.Source, r.Path, r.Err)
			continue
		}
		fmt.Printf("[OK] [%s] [%s] [%s] [%d items]\n", r.Source, r.Path, r.List.Name, len(r.List.Items))
	}
	if failed > 0 {
		os.Exit(1)
	}
}
