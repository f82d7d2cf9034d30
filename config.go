package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Defaults applied by InitConfig for missing settings.
const (
	DefaultBooksFile    = "books.csv"
	DefaultCSVExport    = "Library_Books_List.csv"
	DefaultReportExport = "Library_Books_Report.txt"
	DefaultPDFExport    = "Library_Books_Report.pdf"
	DefaultLinesPerPage = 25
	DefaultLogFile      = "./logs/library.log"

	DefaultShutdownTimeout = 10 * time.Second
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string        `yaml:"git_commit" envconfig:"LIBM_GIT_COMMIT"`
	GitTag             string        `yaml:"git_tag" envconfig:"LIBM_GIT_TAG"`
	BuildTime          string        `yaml:"build_time" envconfig:"LIBM_BUILD_TIME"`
	IsProduction       bool          `yaml:"is_production" envconfig:"LIBM_IS_PRODUCTION"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"LIBM_LOG_LEVEL"`
	LogFile            string        `yaml:"log_file" envconfig:"LIBM_LOG_FILE"`
	Timezone           string        `yaml:"timezone" envconfig:"LIBM_TIMEZONE"`
	OpsEndpointsEnable bool          `yaml:"ops_endpoints_enable" envconfig:"LIBM_OPS_ENDPOINTS_ENABLE"`
	ProfilerEnable     bool          `yaml:"profiler_enable" envconfig:"LIBM_PROFILER_ENABLE"`
	Server             ServerConfig  `yaml:"server"`
	Storage            StorageConfig `yaml:"storage"`
	Redis              RedisConfig   `yaml:"redis"`
	BoltDB             BoltDBConfig  `yaml:"boltdb"`
	Export             ExportConfig  `yaml:"export"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"LIBM_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"LIBM_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"LIBM_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"LIBM_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"LIBM_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"LIBM_SERVER_SHUTDOWN_TIMEOUT"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver" envconfig:"LIBM_STORAGE_DRIVER"`
	FilePath string `yaml:"file_path" envconfig:"LIBM_STORAGE_FILE_PATH"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"LIBM_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"LIBM_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"LIBM_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"LIBM_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"LIBM_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"LIBM_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"LIBM_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"LIBM_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"LIBM_REDIS_PASSWORD" json:"-"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"LIBM_REDIS_DATABASE_INDEX"`
	Key           string        `yaml:"key" envconfig:"LIBM_REDIS_KEY"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"LIBM_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"LIBM_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"LIBM_BOLTDB_BUCKET_NAME"`
}

type ExportConfig struct {
	Folder       string `yaml:"folder" envconfig:"LIBM_EXPORT_FOLDER"`
	CSVFile      string `yaml:"csv_file" envconfig:"LIBM_EXPORT_CSV_FILE"`
	ReportFile   string `yaml:"report_file" envconfig:"LIBM_EXPORT_REPORT_FILE"`
	PDFFile      string `yaml:"pdf_file" envconfig:"LIBM_EXPORT_PDF_FILE"`
	LinesPerPage int    `yaml:"lines_per_page" envconfig:"LIBM_EXPORT_LINES_PER_PAGE"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and updates the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.LogFile) == 0 {
		config.LogFile = DefaultLogFile
	}

	if config.Server.ShutdownTimeout <= 0 {
		config.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if len(config.Storage.Driver) == 0 {
		config.Storage.Driver = StorageCSV
	}

	switch config.Storage.Driver {
	case StorageCSV:
		if len(config.Storage.FilePath) == 0 {
			config.Storage.FilePath = DefaultBooksFile
		}
	case StorageBolt:
		if len(config.BoltDB.FilePath) == 0 || len(config.BoltDB.BucketName) == 0 {
			return errors.New("make sure to set valid boltdb file path and bucket name in configuration file")
		}
	case StorageRedis:
		if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port in configuration file")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", config.Storage.Driver)
	}

	if len(config.Export.CSVFile) == 0 {
		config.Export.CSVFile = DefaultCSVExport
	}

	if len(config.Export.ReportFile) == 0 {
		config.Export.ReportFile = DefaultReportExport
	}

	if len(config.Export.PDFFile) == 0 {
		config.Export.PDFFile = DefaultPDFExport
	}

	if config.Export.LinesPerPage <= 0 {
		config.Export.LinesPerPage = DefaultLinesPerPage
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(configFile, envFile, gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile(configFile)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration. A missing env file is not an error.
	err = godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `LIBM`.
	err = LoadConfigEnvs("LIBM", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
