package main

import "time"

type Config struct {
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,required=true"`
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,required=true"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true"`
	GCInterval           time.Duration `env:"GC_INTERVAL,default=10m"`

	AuthTokenSecret   string        `env:"AUTH_TOKEN_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`

	DailyAPIURL      string        `env:"DAILY_API_URL,default=https://api.daily.co/v1"`
	DailyToken       string        `env:"DAILY_TOKEN,required=true"`
	ProvisionTimeout time.Duration `env:"PROVISION_TIMEOUT,default=15s"`
}
