package main

import (
	"fmt"

	"github.com/cipherchat/cipherchat/internal/config"
	"github.com/cipherchat/cipherchat/internal/crypto"
	handler "github.com/cipherchat/cipherchat/internal/handler/http"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/server"
	"github.com/cipherchat/cipherchat/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("cipherchat-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	var key []byte
	if cfg.App.KeyHash != "" {
		key, err = crypto.DeriveKey(cfg.App.KeyHash)
		if err != nil {
			log.Fatal().Err(err).Msg("derive encryption key")
		}
	}

	handlers := handler.NewHandler(
		store.NewMemoryConversationStore(),
		handler.NewEchoResponder(),
		key,
		log,
	)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
