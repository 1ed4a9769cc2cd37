package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storykura/internal/appdirs"
	"storykura/log"
)

type App struct {
	MaxConcurrency int      `toml:"max_concurrency"`
	CorsOrigins    []string `toml:"cors_origins"`
	EnvFile        string   `toml:"env_file"`
}

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type Llm struct {
	BaseUrl     string  `toml:"base_url"`
	ApiKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	TimeoutSec  int     `toml:"timeout_sec"`
}

type DashscopeTts struct {
	ApiKey     string `toml:"api_key"`
	PythonPath string `toml:"python_path"`
	ScriptPath string `toml:"script_path"`
	Model      string `toml:"model"`
	Voice      string `toml:"voice"`
}

type MinimaxTts struct {
	ApiKey  string `toml:"api_key"`
	GroupId string `toml:"group_id"`
	Model   string `toml:"model"`
	BaseUrl string `toml:"base_url"`
}

type DoubaoTts struct {
	AppId       string `toml:"app_id"`
	AccessToken string `toml:"access_token"`
	ResourceId  string `toml:"resource_id"`
	BaseUrl     string `toml:"base_url"`
}

type Tts struct {
	Provider   string       `toml:"provider"`
	TimeoutSec int          `toml:"timeout_sec"`
	Dashscope  DashscopeTts `toml:"dashscope"`
	Minimax    MinimaxTts   `toml:"minimax"`
	Doubao     DoubaoTts    `toml:"doubao"`
}

type Video struct {
	BaseUrl            string `toml:"base_url"`
	ApiKey             string `toml:"api_key"`
	Orientation        string `toml:"orientation"`
	TimeoutSec         int    `toml:"timeout_sec"`
	PlaceholderBaseUrl string `toml:"placeholder_base_url"`
}

type Config struct {
	App    App    `toml:"app"`
	Server Server `toml:"server"`
	Llm    Llm    `toml:"llm"`
	Tts    Tts    `toml:"tts"`
	Video  Video  `toml:"video"`
}

var Conf = defaultConfig()

var resolveConfigPath = ResolveConfigPath

func defaultConfig() Config {
	return Config{
		App: App{
			MaxConcurrency: 3,
			CorsOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
			EnvFile: ".env",
		},
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Llm: Llm{
			Model:       "gpt-4",
			Temperature: 0.7,
			TimeoutSec:  120,
		},
		Tts: Tts{
			Provider:   "dashscope",
			TimeoutSec: 120,
			Dashscope: DashscopeTts{
				PythonPath: "python",
				Model:      "cosyvoice-v2",
				Voice:      "longxiaochun_v2",
			},
			Minimax: MinimaxTts{
				Model:   "speech-01-turbo",
				BaseUrl: "https://api.minimax.chat/v1/t2a_v2",
			},
			Doubao: DoubaoTts{
				ResourceId: "seed-tts-1.0",
				BaseUrl:    "https://openspeech.bytedance.com/api/v3/tts/unidirectional",
			},
		},
		Video: Video{
			BaseUrl:            "https://api.pexels.com/videos",
			Orientation:        "landscape",
			TimeoutSec:         30,
			PlaceholderBaseUrl: "https://via.placeholder.com",
		},
	}
}

func ResolveConfigPath() (string, error) {
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return dirs.ConfigFile, nil
}

// LoadOrCreateConfig reads the TOML config, writing the defaults first when the file is missing.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, fmt.Errorf("resolve config path: %w", err)
	}

	if _, err = os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		Conf = defaultConfig()
		if err = SaveConfig(); err != nil {
			return false, err
		}
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	loaded := defaultConfig()
	if _, err = toml.DecodeFile(configPath, &loaded); err != nil {
		return false, fmt.Errorf("decode config file %s: %w", configPath, err)
	}
	Conf = loaded
	return false, nil
}

// LoadConfig loads the config file and overlays environment variables (and the .env file).
func LoadConfig() bool {
	created, err := LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("加载配置文件失败", zap.Error(err))
		return false
	}
	if created {
		log.GetLogger().Info("未找到配置文件，已生成默认配置")
	}

	envFile := strings.TrimSpace(Conf.App.EnvFile)
	if envFile != "" {
		if err = godotenv.Load(envFile); err != nil {
			log.GetLogger().Debug("no env file loaded", zap.String("file", envFile), zap.Error(err))
		} else {
			log.GetLogger().Info("Loaded environment variables from env file", zap.String("file", envFile))
		}
	}
	ApplyEnv(&Conf, os.Getenv)
	return true
}

// ApplyEnv overrides config values with the variables the web editor has always used.
func ApplyEnv(c *Config, getenv func(string) string) {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	setString(&c.Llm.ApiKey, "LLM_API_KEY")
	setString(&c.Llm.BaseUrl, "LLM_API_URL")
	setString(&c.Llm.Model, "LLM_MODEL_NAME")
	setString(&c.Tts.Dashscope.ApiKey, "TTS_API_KEY")
	setString(&c.Tts.Provider, "TTS_PROVIDER")
	setString(&c.Tts.Minimax.ApiKey, "MINIMAX_API_KEY")
	setString(&c.Tts.Minimax.GroupId, "MINIMAX_GROUP_ID")
	setString(&c.Tts.Doubao.AppId, "DOUBAO_APP_ID")
	setString(&c.Tts.Doubao.AccessToken, "DOUBAO_ACCESS_TOKEN")
	setString(&c.Video.ApiKey, "VIDEO_API_KEY")
	setString(&c.Video.BaseUrl, "VIDEO_API_URL")

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// CheckConfig validates structural values only; missing credentials are reported per operation.
func CheckConfig() error {
	if Conf.Server.Port <= 0 || Conf.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", Conf.Server.Port)
	}
	if Conf.App.MaxConcurrency <= 0 {
		Conf.App.MaxConcurrency = 1
	}
	switch strings.ToLower(strings.TrimSpace(Conf.Tts.Provider)) {
	case "", "dashscope", "minimax", "doubao":
	default:
		return fmt.Errorf("unsupported tts provider %q", Conf.Tts.Provider)
	}
	if Conf.Llm.ApiKey == "" || Conf.Llm.BaseUrl == "" {
		log.GetLogger().Warn("LLM API配置缺失, breakdown and rewrite will report a configuration error")
	}
	if Conf.Video.ApiKey == "" {
		log.GetLogger().Warn("视频API配置缺失, video search will report a configuration error")
	}
	return nil
}

func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()

	if err = toml.NewEncoder(file).Encode(Conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
