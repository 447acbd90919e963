// cmd/mathkit/main.go: interactive shell for mathkit
//
// Usage:
//
//	go run ./cmd/mathkit -config mathkit.yaml
//
// Definitions and equations are saved to the SQLite store named in the
// configuration and reloaded on the next start.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/njchilds90/mathkit/internal/config"
	"github.com/njchilds90/mathkit/internal/store"
)

const banner = "mathkit shell. Type :help for commands, :quit to exit."

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	storePath := flag.String("store", "", "SQLite store (overrides config, \"none\" disables)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}

	ctx := context.Background()
	var st *store.Store
	if cfg.StorePath != "none" {
		if st, err = store.Open(cfg.StorePath); err != nil {
			log.Fatal(err)
		}
	}
	se := newSession(cfg, st)
	if st != nil {
		if err := st.Restore(ctx, se.s); err != nil {
			log.Printf("restore: %v", err)
		}
	}

	code := repl(ctx, se, historyPath(cfg.HistoryFile))
	if st != nil {
		st.Close()
	}
	os.Exit(code)
}

func historyPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, name)
}

func repl(ctx context.Context, se *session, histPath string) int {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			return 0
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		out, err := se.exec(ctx, line)
		if errors.Is(err, errQuit) {
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
		if se.store != nil {
			if err := se.store.AddHistory(ctx, line, out); err != nil {
				log.Printf("history: %v", err)
			}
		}
	}
}
