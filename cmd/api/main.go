package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	"disperser/internal/adapter/repo"
	"disperser/internal/chain"
	"disperser/internal/domain"
	"disperser/internal/http/handlers"
	"disperser/internal/http/httpapi"
	"disperser/internal/infra"
	"disperser/internal/infra/geoip"
	"disperser/internal/service"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	signers, err := chain.NewRegistry(cfg.SignerKeys)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load signer keys")
	}
	for _, addr := range signers.Addresses() {
		logger.Info().Str("address", addr.Hex()).Msg("signer loaded")
	}

	node, err := chain.Dial(ctx, cfg.RPCURL, signers,
		common.HexToAddress(cfg.DisperseContract), cfg.TxConfirmTimeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect rpc endpoint")
	}
	defer node.Close()

	// Journal is optional: no DATABASE_URL, no journal.
	var journal domain.TxJournal
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	if dbpool != nil {
		defer dbpool.Close()
		journal = repo.NewTxJournal(dbpool)
	}

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer geo.Close()

	svc := service.New(node, journal, logger)
	app := handlers.NewApp(svc, logger)
	router := httpapi.NewRouter(app, logger, geo, cfg.AllowedOrigins)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
