package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

const (
	PublishNone  = "none"
	PublishNats  = "nats"
	PublishRedis = "redis"
)

type environment struct {
	ServerPort         string
	RestPort           string
	LogLevel           string
	ColorizeLog        string
	PublishMethod      string
	NatsURL            string
	EventSubjectPrefix string
	RedisHost          string
	RedisPort          string
	RedisPW            string
	RedisDB            string
}

// Env is a helper object for accessing environment variables.
var Env = &environment{
	ServerPort:         "SERVER_PORT",
	RestPort:           "REST_PORT",
	LogLevel:           "LOG_LEVEL",
	ColorizeLog:        "COLORIZE_LOG",
	PublishMethod:      "PUBLISH_METHOD",
	NatsURL:            "NATS_URL",
	EventSubjectPrefix: "EVENT_SUBJECT_PREFIX",
	RedisHost:          "REDIS_HOST",
	RedisPort:          "REDIS_PORT",
	RedisPW:            "REDIS_PW",
	RedisDB:            "REDIS_DB",
}

// GetServerPort returns the table port from the environment, or 0 when it is
// not set so the config file value is used.
func (e *environment) GetServerPort() int {
	return e.getOptionalInt(e.ServerPort)
}

func (e *environment) GetRestPort() int {
	return e.getOptionalInt(e.RestPort)
}

func (e *environment) GetLogLevel() string {
	v := os.Getenv(e.LogLevel)
	if v == "" {
		defaultVal := "info"
		environmentLogger.Warn().Msgf("%s is not defined. Using default %s", e.LogLevel, defaultVal)
		return defaultVal
	}
	return v
}

// IsColorizeLog defaults to true. Only "1" and "true" keep colours on once
// the variable is set.
func (e *environment) IsColorizeLog() bool {
	v := os.Getenv(e.ColorizeLog)
	if v == "" {
		return true
	}
	return v == "1" || strings.ToLower(v) == "true"
}

func (e *environment) GetZeroLogLogLevel() zerolog.Level {
	l := e.GetLogLevel()
	switch strings.ToLower(l) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		fallthrough
	case "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		panic(fmt.Sprintf("Unsupported %s: %s", e.LogLevel, l))
	}
}

func (e *environment) GetPublishMethod() string {
	v := strings.ToLower(os.Getenv(e.PublishMethod))
	switch v {
	case "":
		return PublishNone
	case PublishNone, PublishNats, PublishRedis:
		return v
	default:
		msg := fmt.Sprintf("Unsupported %s: %s", e.PublishMethod, v)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
}

func (e *environment) GetNatsURL() string {
	url := os.Getenv(e.NatsURL)
	if url == "" {
		msg := fmt.Sprintf("%s is not defined", e.NatsURL)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return url
}

func (e *environment) GetEventSubjectPrefix() string {
	v := os.Getenv(e.EventSubjectPrefix)
	if v == "" {
		return "threecard"
	}
	return v
}

func (e *environment) GetRedisHost() string {
	host := os.Getenv(e.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", e.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (e *environment) GetRedisPort() int {
	portStr := os.Getenv(e.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", e.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (e *environment) GetRedisPW() string {
	return os.Getenv(e.RedisPW)
}

func (e *environment) GetRedisDB() int {
	dbStr := os.Getenv(e.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

func (e *environment) getOptionalInt(name string) int {
	s := os.Getenv(name)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		msg := fmt.Sprintf("Invalid integer [%s] for %s", s, name)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return v
}
