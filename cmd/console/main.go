// Command console is the command-line admin console for the computer lab
// scheduling API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/config"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/client"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/console"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/session"
	applogger "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/logger"
)

const usage = `usage: console [-config file] <command> [args]

commands:
  login <email> <password>     sign in and remember the token
  logout                       revoke the token and forget the teacher
  whoami                       show the acting teacher
  use <teacherID>              act as another teacher
  labs [list|add|edit|delete|show]
  teachers [list|add]
  courses [list|add]
  subjects [list|add]
  schedule [list|week|add|edit|delete|export|import]
  routes [path]
`

var errUsage = errors.New("invalid usage")

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config/config.yaml)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateClient(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Human-facing output: notifications go to stderr in console format.
	logCfg := cfg.Log
	logCfg.Format = "console"
	logger, err := applogger.NewLogger(&logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewFileStore(cfg.Client.SessionFile)
	api := client.New(cfg.Client.BaseURL, cfg.Client.Timeout, client.WithLogger(logger))
	if token, err := store.Token(); err != nil {
		logger.Warn("read stored token failed", zap.Error(err))
	} else {
		api.SetToken(token)
	}

	app := console.NewApp(api, nil, console.NewZapNotifier(logger), logger)
	app.PageSize = cfg.Client.PageSize

	cli := &cli{app: app, api: api, store: store, out: os.Stdout}
	if err := cli.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			flag.Usage()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
