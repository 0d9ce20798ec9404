package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"threecard.com/server/game"
	"threecard.com/server/logging"
	"threecard.com/server/nats"
	"threecard.com/server/poker"
	"threecard.com/server/rest"
	"threecard.com/server/util"
)

var configFile *string
var port *int
var restPort *int
var mainLogger = logging.GetZeroLogger("main::main", nil)

func init() {
	configFile = flag.String("config", "", "YAML file containing the table configuration")
	port = flag.Int("port", 0, "table port (overrides config and SERVER_PORT)")
	restPort = flag.Int("rest-port", 0, "admin REST port (overrides config and REST_PORT)")
}

func main() {
	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	logLevel := util.Env.GetZeroLogLogLevel()
	fmt.Printf("Setting log level to %s\n", logLevel)
	zerolog.SetGlobalLevel(logLevel)
	flag.Parse()

	config, err := game.ParseTableConfig(*configFile)
	if err != nil {
		return errors.Wrap(err, "Error while parsing table config")
	}
	applyOverrides(&config)

	publisher, err := newEventPublisher()
	if err != nil {
		return errors.Wrap(err, "Error while creating event publisher")
	}

	eventLog := game.NewEventLog(publisher, config.EventQueueSize)
	defer eventLog.Close()
	match := game.NewMatch(config, poker.NewDeck(nil), eventLog)
	manager := game.NewSessionManager(config, match)

	if config.RestPort > 0 {
		go rest.RunRestServer(config.RestPort, manager, nil)
	}

	chSignal := make(chan os.Signal, 1)
	signal.Notify(chSignal, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-chSignal
		mainLogger.Info().Msgf("Received %s. Stopping the table.", sig)
		manager.Stop()
	}()

	mainLogger.Info().Msgf("Starting the table on port %d", config.Port)
	err = manager.Start(config.Port)
	if err != nil {
		return errors.Wrap(err, "Error while running the table")
	}
	return nil
}

func applyOverrides(config *game.TableConfig) {
	if p := util.Env.GetServerPort(); p > 0 {
		config.Port = p
	}
	if p := util.Env.GetRestPort(); p > 0 {
		config.RestPort = p
	}
	if *port > 0 {
		config.Port = *port
	}
	if *restPort > 0 {
		config.RestPort = *restPort
	}
}

func newEventPublisher() (game.EventPublisher, error) {
	prefix := util.Env.GetEventSubjectPrefix()
	switch util.Env.GetPublishMethod() {
	case util.PublishNats:
		natsURL := util.Env.GetNatsURL()
		mainLogger.Info().Msgf("Publishing table log to NATS (%s)", natsURL)
		return nats.Connect(natsURL, prefix)
	case util.PublishRedis:
		redisURL := fmt.Sprintf("%s:%d", util.Env.GetRedisHost(), util.Env.GetRedisPort())
		mainLogger.Info().Msgf("Publishing table log to Redis (%s)", redisURL)
		return game.NewRedisEventPublisher(redisURL, util.Env.GetRedisPW(), util.Env.GetRedisDB(), prefix), nil
	}
	return nil, nil
}
