package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"fortune.db"`
	PuzzleCorpusPath  string `yaml:"puzzle-corpus-path" env:"PUZZLE_CORPUS_PATH" env-default:"data/puzzles/valid.csv"`
	Hints             Hints  `yaml:"hints"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Hints struct {
	// An empty API key means the remote provider is unavailable and every
	// hint takes the fallback path.
	GeminiAPIKey string        `yaml:"gemini-api-key" env:"GEMINI_API_KEY" env-default:""`
	GeminiModel  string        `yaml:"gemini-model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
	Timeout      time.Duration `yaml:"timeout" env:"HINT_TIMEOUT" env-default:"15s"`
	MaxPerRound  int           `yaml:"max-per-round" env:"HINT_MAX_PER_ROUND" env-default:"3"`
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
