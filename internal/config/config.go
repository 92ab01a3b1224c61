package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Facebook struct {
		PageAccessToken string `yaml:"page_access_token" env:"FACEBOOK_PAGE_ACCESS_TOKEN" env-default:""`
		VerifyToken     string `yaml:"verify_token" env:"FACEBOOK_VERIFY_TOKEN" env-default:""`
		AppSecret       string `yaml:"app_secret" env:"FACEBOOK_APP_SECRET" env-default:""`
		MetadataTag     string `yaml:"metadata_tag" env-default:"CAR_BOT"`
	} `yaml:"facebook"`
	OpenAI struct {
		ApiKey        string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		Model         string `yaml:"model" env-default:"gpt-4o-mini"`
		MaxTokens     int    `yaml:"max_tokens" env-default:"400"`
		TimeoutSec    int    `yaml:"timeout_sec" env-default:"10"`
		MaxToolRounds int    `yaml:"max_tool_rounds" env-default:"5"`
	} `yaml:"openai"`
	Dealership struct {
		Name            string `yaml:"name" env-default:"DriveLine Motors"`
		Timezone        string `yaml:"timezone" env-default:"Asia/Manila"`
		OpenHour        int    `yaml:"open_hour" env-default:"9"`
		CloseHour       int    `yaml:"close_hour" env-default:"17"`
		SlotMinutes     int    `yaml:"slot_minutes" env-default:"60"`
		HumanPauseMin   int    `yaml:"human_pause_min" env-default:"30"`
		HandoffPauseMin int    `yaml:"handoff_pause_min" env-default:"5"`
		HistoryLimit    int    `yaml:"history_limit" env-default:"10"`
	} `yaml:"dealership"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"DriveLineBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:""`
	} `yaml:"mongo"`
	Google struct {
		Enabled         bool   `yaml:"enabled" env-default:"false"`
		CredentialsPath string `yaml:"credentials_path" env-default:"google-credentials.json"`
		CalendarId      string `yaml:"calendar_id" env-default:"primary"`
		SheetId         string `yaml:"sheet_id" env-default:""`
	} `yaml:"google"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
