package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/gommon/random"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host          string `yaml:"host" json:"host"`
	Port          int    `yaml:"port" json:"port"`
	SessionSecret string `yaml:"session_secret" json:"session_secret"`
	JwtSecret     string `yaml:"jwt_secret" json:"jwt_secret"`
	UploadDir     string `yaml:"upload_dir" json:"upload_dir"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	NotifyTo string `yaml:"notify_to" json:"notify_to"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system" json:"system"`
	Web      WebConfig  `yaml:"web" json:"web"`
	Database DBConfig   `yaml:"database" json:"database"`
	Logger   LogConfig  `yaml:"logger" json:"logger"`
	Smtp     SmtpConfig `yaml:"smtp" json:"smtp"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "CampusMarket",
		Location: "Asia/Shanghai",
		Workdir:  "/var/campusmarket",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1880,
		UploadDir: "",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "campusmarket",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/campusmarket/campusmarket.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

// GetUploadDir returns the directory product images are stored in,
// defaulting to <workdir>/uploads.
func (c *AppConfig) GetUploadDir() string {
	if c.Web.UploadDir != "" {
		return c.Web.UploadDir
	}
	return filepath.Join(c.System.Workdir, "uploads")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0755)
	_ = os.MkdirAll(c.GetLogDir(), 0755)
	_ = os.MkdirAll(c.GetDataDir(), 0755)
	_ = os.MkdirAll(c.GetUploadDir(), 0755)
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

func setEnvInt(name string, f func(v int)) {
	if v, ok := os.LookupEnv(name); ok {
		if i, err := strconv.Atoi(v); err == nil {
			f(i)
		}
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			var fc AppConfig
			if err := yaml.Unmarshal(data, &fc); err == nil {
				cfg = &fc
			}
		}
	}

	setEnvValue("CAMPUSMARKET_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("CAMPUSMARKET_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("CAMPUSMARKET_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("CAMPUSMARKET_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("CAMPUSMARKET_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("CAMPUSMARKET_WEB_SECRET", func(v string) { cfg.Web.SessionSecret = v })
	setEnvValue("CAMPUSMARKET_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })
	setEnvInt("CAMPUSMARKET_WEB_PORT", func(v int) { cfg.Web.Port = v })
	setEnvInt("CAMPUSMARKET_DB_PORT", func(v int) { cfg.Database.Port = v })

	// Secrets fall back to ephemeral random values so a bare install
	// still starts; sessions then reset on every restart.
	if cfg.Web.SessionSecret == "" {
		cfg.Web.SessionSecret = random.String(32)
	}
	if cfg.Web.JwtSecret == "" {
		cfg.Web.JwtSecret = random.String(32)
	}

	cfg.initDirs()
	return cfg
}
