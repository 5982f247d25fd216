package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"survey/internal/structures"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "LiffSurveyApi"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional; real environment variables always win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("store.database", "survey")
	v.SetDefault("store.collection", "survey_responses")
	v.SetDefault("store.connectTimeout", 5*time.Second)
	v.SetDefault("identity.verifyUrl", "https://api.line.me/oauth2/v2.1/verify")
	v.SetDefault("identity.timeout", 10*time.Second)
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.BindEnv("webServer.port", "PORT")
	v.BindEnv("logger.level", "SURVEY_LOG_LEVEL")
	v.BindEnv("store.uri", "MONGODB_URI")
	v.BindEnv("identity.devMode", "SURVEY_DEV_MODE")
	v.BindEnv("identity.clientId", "LINE_CHANNEL_ID")
	v.BindEnv("cache.enabled", "SURVEY_CACHE_ENABLED")
	v.BindEnv("metrics.enabled", "SURVEY_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
