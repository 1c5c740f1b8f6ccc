package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbodonnell/pong/pkg/client/bot"
	"github.com/cbodonnell/pong/pkg/client/network"
	"github.com/cbodonnell/pong/pkg/config"
	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/messages"
	"github.com/cbodonnell/pong/pkg/queue"
	"github.com/cbodonnell/pong/pkg/version"
	"golang.org/x/sync/errgroup"
)

func main() {
	serverURL := flag.String("server-url", network.DefaultServerURL, "WebSocket URL of the server")
	token := flag.String("token", "", "Bearer token presented when connecting")
	logLevel := flag.String("log-level", "info", "Log level")
	envFile := flag.String("env-file", ".env", "Optional file with environment variables")
	deadband := flag.Float64("deadband", 2, "Smallest paddle correction sent to the server")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	log.Info("Starting pong bot version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the bot shares the server's environment so codec and paddle size match
	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	codec, err := messages.NewCodec(cfg.Compression)
	if err != nil {
		panic(fmt.Sprintf("Failed to create codec: %v", err))
	}

	messageQueue := queue.NewInMemoryQueue(1000)
	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
		ServerURL:    *serverURL,
		Token:        *token,
		Codec:        codec,
		MessageQueue: messageQueue,
	})
	if err := networkManager.Connect(ctx); err != nil {
		panic(fmt.Sprintf("Failed to connect: %v", err))
	}
	defer networkManager.Close()

	b := bot.NewBot(bot.NewBotOptions{
		Sender:       networkManager,
		MessageQueue: messageQueue,
		Interval:     cfg.Game.TickInterval(),
		PaddleHeight: cfg.Game.PaddleHeight,
		Deadband:     *deadband,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return networkManager.Listen(ctx)
	})
	g.Go(func() error {
		return b.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Bot stopped: %v", err)
		return
	}
	log.Info("Bot stopped")
}
