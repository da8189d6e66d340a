package main

import (
	"fmt"

	"github.com/cipherchat/cipherchat/internal/adapter"
	"github.com/cipherchat/cipherchat/internal/client"
	"github.com/cipherchat/cipherchat/internal/config"
	"github.com/cipherchat/cipherchat/internal/crypto"
	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/service"
	"github.com/cipherchat/cipherchat/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("cipherchat-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	kv, err := store.New(cfg.Storage.KVPath)
	if err != nil {
		log.Fatal().Err(err).Msg("create key store")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Error().Err(err).Msg("close key store")
		}
	}()

	keys := crypto.NewKeyring(kv, log)
	codec := crypto.NewCodec(keys, crypto.ParseClearPolicy(cfg.App.ClearPolicy), log)

	backend, err := adapter.NewHTTPBackendClient(cfg.Adapter, adapter.NewTransport(keys, codec), log)
	if err != nil {
		log.Fatal().Err(err).Msg("create backend client")
	}

	services := service.NewClientServices(keys, codec, backend, cfg.App.Model, log)

	app, err := client.NewApp(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
