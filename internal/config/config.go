package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"prod"`
	HTTPServer `yaml:"http_server"`

	DBUser     string `yaml:"db_user" env:"DB_USER" env-required:"true"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD" env-default:""`
	DBHost     string `yaml:"db_host" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env-default:"3306"`
	DBName     string `yaml:"db_name" env-required:"true"`

	// Planning parameters. These were hardcoded constants in the legacy
	// scripts; kept in config so a run is reproducible without a rebuild.
	HorizonDays              int    `yaml:"horizon_days" env-default:"60"`
	LeadWorkdays             int    `yaml:"lead_workdays" env-default:"5"`
	OrderStatusOpenThreshold int    `yaml:"order_status_open_threshold" env-default:"6"`
	TerminalStepCode         string `yaml:"terminal_step_code" env-default:"050"`

	// Optional pre-exploded requirements CSV. When set, the engine reads
	// daily child demand from this file instead of exploding the schedule.
	RequirementsCSV string `yaml:"requirements_csv" env-default:""`

	AdminLogin string `yaml:"admin_login"`
	AdminPass  string `yaml:"admin_pass"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4002"`
	Timeout     time.Duration `yaml:"timeout" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustConfig() *Config {
	var cfg Config

	if err := cleanenv.ReadConfig("./config/local.yaml", &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
