package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/passvault/internal/app"
	"github.com/dmitrijs2005/passvault/internal/buildinfo"
	"github.com/dmitrijs2005/passvault/internal/cli"
	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// keep log lines off the REPL's stdout
	logger := logging.New(cfg.LogLevel, "text", os.Stderr)

	core, err := app.NewCore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer core.Close()

	cli.NewApp(core.Auth, core.Records, core.Backup, cfg.ClipboardClearAfter, os.Stdin, os.Stdout).Run(ctx)

}
