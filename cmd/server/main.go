package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbodonnell/pong/pkg/api"
	authproviders "github.com/cbodonnell/pong/pkg/auth/providers"
	"github.com/cbodonnell/pong/pkg/config"
	"github.com/cbodonnell/pong/pkg/game"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/network"
	"github.com/cbodonnell/pong/pkg/queue"
	"github.com/cbodonnell/pong/pkg/repositories"
	"github.com/cbodonnell/pong/pkg/state"
	"github.com/cbodonnell/pong/pkg/version"
	"github.com/cbodonnell/pong/pkg/workers"
	"golang.org/x/sync/errgroup"
)

func main() {
	wsPort := flag.Int("ws-port", 8888, "WebSocket port to listen on")
	apiPort := flag.Int("api-port", 9090, "API port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	envFile := flag.String("env-file", ".env", "Optional file with environment variables")
	seed := flag.Uint64("seed", 0, "Serve randomisation seed, 0 picks one from the clock")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting pong server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	codec, err := messages.NewCodec(cfg.Compression)
	if err != nil {
		panic(fmt.Sprintf("Failed to create codec: %v", err))
	}
	log.Info("Using %s frame compression", codec.Name())

	var authProvider authproviders.AuthProvider
	if cfg.FirebaseProjectID != "" {
		authProvider, err = authproviders.NewFirebaseAuthProvider(ctx, cfg.FirebaseProjectID, cfg.FirebaseAPIKey)
		if err != nil {
			panic(fmt.Sprintf("Failed to create Firebase auth provider: %v", err))
		}
		log.Info("Firebase authentication enabled for project %s", cfg.FirebaseProjectID)
	}

	repository, err := repositories.NewRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	clientManager := network.NewClientManager()
	clientMessageQueue := queue.NewInMemoryQueue(10000)
	serverEventQueue := queue.NewInMemoryQueue(1000)

	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
		AuthProvider:  authProvider,
		ClientManager: clientManager,
		MessageQueue:  clientMessageQueue,
		Codec:         codec,
		WSPort:        *wsPort,
	})

	connectionEventWorker := workers.NewConnectionEventWorker(workers.NewConnectionEventWorkerOptions{
		ConnectionEventChan: clientManager.GetConnectionEventChan(),
		ServerEventQueue:    serverEventQueue,
	})

	serverMessageChannelSize := 1000
	serverMessageChan := make(chan workers.ServerMessage, serverMessageChannelSize)
	serverMessageWorker := workers.NewServerMessageWorker(workers.NewServerMessageWorkerOptions{
		Sender:            networkManager,
		ServerMessageChan: serverMessageChan,
	})

	saveMatchResultChannelSize := 100
	saveMatchResultChan := make(chan workers.SaveMatchResultRequest, saveMatchResultChannelSize)
	saveMatchResultWorker := workers.NewSaveMatchResultWorker(workers.NewSaveMatchResultWorkerOptions{
		Repository:          repository,
		SaveMatchResultChan: saveMatchResultChan,
	})

	stateManager := state.NewInMemoryStateManager()
	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		Config:              cfg.Game,
		ClientMessageQueue:  clientMessageQueue,
		ServerEventQueue:    serverEventQueue,
		ServerMessageChan:   serverMessageChan,
		SaveMatchResultChan: saveMatchResultChan,
		StateManager:        stateManager,
		Seed:                *seed,
	})

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:         *apiPort,
		AuthProvider: authProvider,
		Repository:   repository,
		StateManager: stateManager,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		connectionEventWorker.Start(ctx)
		return nil
	})
	g.Go(func() error {
		serverMessageWorker.Start(ctx)
		return nil
	})
	g.Go(func() error {
		saveMatchResultWorker.Start(ctx)
		return nil
	})
	g.Go(func() error {
		return networkManager.Start(ctx)
	})
	g.Go(func() error {
		return apiServer.Start(ctx)
	})
	g.Go(func() error {
		log.Info("Starting game manager")
		return gameManager.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped: %v", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
