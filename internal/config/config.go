package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultBotThinkDelay = 1500 * time.Millisecond

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8081"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	BotThinkDelay string `yaml:"bot-think-delay" env:"BOT_THINK_DELAY" env-default:"1500ms"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// GetBotThinkDelay - parses the configured pause before a bot vs bot round
// resolves, falling back to the default when the value does not parse.
func (that *Game) GetBotThinkDelay() time.Duration {
	delay, err := time.ParseDuration(that.BotThinkDelay)
	if err != nil || delay < 0 {
		return defaultBotThinkDelay
	}

	return delay
}
