package main

import (
	"fmt"
	"log"
	"os"

	"github.com/m3rciful/apptbot/bot/app"
	botconfig "github.com/m3rciful/apptbot/bot/config"
	"github.com/m3rciful/apptbot/core/buildinfo"
	corecmd "github.com/m3rciful/apptbot/core/cmd"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" {
			fmt.Printf("apptbot %s (%s, %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
			return
		}
	}

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return botconfig.Load(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			botCfg, ok := cfg.(*botconfig.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", cfg)
			}
			return app.Bootstrap(botCfg)
		},
	})
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
