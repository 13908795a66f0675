package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets yaml carry values like "15m" or "168h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type AuthConfig struct {
	JWTSecret        string   `yaml:"jwt_secret"`
	TokenTTL         Duration `yaml:"token_ttl"`
	MaxLoginAttempts int      `yaml:"max_login_attempts"`
	LockDuration     Duration `yaml:"lock_duration"`
	OTPTTL           Duration `yaml:"otp_ttl"`
	MaxOTPAttempts   int      `yaml:"max_otp_attempts"`
	DemoAccounts     []string `yaml:"demo_accounts"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AlertChatID int64  `yaml:"alert_chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth     AuthConfig     `yaml:"auth"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	// secrets may come from the environment instead of the file
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = Duration(7 * 24 * time.Hour)
	}
	if c.Auth.MaxLoginAttempts == 0 {
		c.Auth.MaxLoginAttempts = 5
	}
	if c.Auth.LockDuration == 0 {
		c.Auth.LockDuration = Duration(15 * time.Minute)
	}
	if c.Auth.OTPTTL == 0 {
		c.Auth.OTPTTL = Duration(5 * time.Minute)
	}
	if c.Auth.MaxOTPAttempts == 0 {
		c.Auth.MaxOTPAttempts = 5
	}
	if len(c.Auth.DemoAccounts) == 0 {
		c.Auth.DemoAccounts = []string{"demo@gradevision.edu", "admin@gradevision.edu"}
	}
}
