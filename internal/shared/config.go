package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSOAPBase        = "https://realdecuenca-btccaacvcpgyadhb.canadacentral-01.azurewebsites.net"
	DefaultIntegrationBase = "https://realdecuencaintegracion-abachrhfgzcrb0af.canadacentral-01.azurewebsites.net"

	// IntegrationService is served from the integration host, not the main one.
	IntegrationService = "WS_GestionIntegracionDetalleEspacio"
)

type Config struct {
	AppEnv          string
	LogLevel        string
	HTTPAddr        string
	MetricsAddr     string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	SOAPBase        string
	IntegrationBase string
	SOAPTimeout     time.Duration
	SOAPRPS         int
	SOAPStrict      bool
	EndpointsFile   string
	Endpoints       map[string]string
	CacheTTL        time.Duration
	SweepWorkers    int
	SweepInterval   time.Duration
	CORSOrigins     []string
}

// endpointsFile is the optional YAML override of per-service URLs:
//
//	endpoints:
//	  WS_GestionHotel: https://staging.example/WS_GestionHotel.asmx
type endpointsFile struct {
	Endpoints map[string]string `yaml:"endpoints"`
}

func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/cuenca?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisDB:         atoi("REDIS_DB", 0),
		RedisPass:       env("REDIS_PASSWORD", ""),
		SOAPBase:        strings.TrimRight(env("SOAP_BASE_URL", DefaultSOAPBase), "/"),
		IntegrationBase: strings.TrimRight(env("SOAP_INTEGRATION_URL", DefaultIntegrationBase), "/"),
		SOAPTimeout:     time.Duration(atoi("SOAP_TIMEOUT_SECONDS", 30)) * time.Second,
		SOAPRPS:         atoi("SOAP_RPS", 0),
		SOAPStrict:      strings.EqualFold(env("SOAP_STRICT", "false"), "true"),
		EndpointsFile:   env("SOAP_ENDPOINTS_FILE", ""),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SweepWorkers:    atoi("SWEEP_WORKERS", 4),
		SweepInterval:   time.Duration(atoi("SWEEP_INTERVAL_SECONDS", 0)) * time.Second,
		CORSOrigins:     splitList(env("CORS_ORIGINS", "*")),
	}
	if c.EndpointsFile != "" {
		eps, err := LoadEndpoints(c.EndpointsFile)
		if err != nil {
			log.Warn().Err(err).Str("file", c.EndpointsFile).Msg("ignoring endpoints file")
		} else {
			c.Endpoints = eps
		}
	}
	if c.SweepWorkers <= 0 {
		log.Warn().Int("workers", c.SweepWorkers).Msg("SWEEP_WORKERS must be positive, using 1")
		c.SweepWorkers = 1
	}
	return c
}

// LoadEndpoints reads the YAML override file. ${VAR} references are expanded.
func LoadEndpoints(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f endpointsFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f.Endpoints, nil
}

// Endpoint returns the URL of an .asmx service, honouring overrides.
func (c Config) Endpoint(service string) string {
	if u, ok := c.Endpoints[service]; ok && u != "" {
		return u
	}
	base := c.SOAPBase
	if service == IntegrationService {
		base = c.IntegrationBase
	}
	return base + "/" + service + ".asmx"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
