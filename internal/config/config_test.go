package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Convert: ConvertConfig{MaxFileSize: 1, MaxBodySize: 1, MaxConcurrent: 1, MaxWaitTime: time.Second},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100, UploadLimit: 30},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Convert.MaxConcurrent != 8 {
		t.Errorf("Convert.MaxConcurrent = %d, want %d", cfg.Convert.MaxConcurrent, 8)
	}
	if cfg.Convert.MaxFileSize != 20971520 {
		t.Errorf("Convert.MaxFileSize = %d, want %d", cfg.Convert.MaxFileSize, 20971520)
	}
	if cfg.Convert.StrictLineLength {
		t.Error("Convert.StrictLineLength should default to false")
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CONVERT_MAX_CONCURRENT", "2")
	t.Setenv("CONVERT_STRICT_LINE_LENGTH", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Convert.MaxConcurrent != 2 {
		t.Errorf("Convert.MaxConcurrent = %d, want %d", cfg.Convert.MaxConcurrent, 2)
	}
	if !cfg.Convert.StrictLineLength {
		t.Error("Convert.StrictLineLength = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("CONVERT_MAX_WAIT_TIME", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Convert.MaxWaitTime != 90*time.Second {
		t.Errorf("Convert.MaxWaitTime = %v, want %v", cfg.Convert.MaxWaitTime, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if !reflect.DeepEqual(cfg.Security.TrustedProxies, expected) {
		t.Errorf("TrustedProxies = %v, want %v", cfg.Security.TrustedProxies, expected)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("CONVERT_MAX_WAIT_TIME", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for invalid duration")
	}
}

func TestLoad_APIKeyWithoutKeys(t *testing.T) {
	t.Setenv("REQUIRE_API_KEY", "true")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error when REQUIRE_API_KEY has no keys")
	}
	if !strings.Contains(err.Error(), "API_KEYS") {
		t.Errorf("error should mention API_KEYS: %v", err)
	}
}

func TestPopulate_RequiredAndAlt(t *testing.T) {
	type sample struct {
		Path string `env:"PARSEOS_TEST_PATH" envAlt:"PARSEOS_TEST_PATH_ALT" required:"true"`
	}

	env := map[string]string{}
	lookup := func(key string) string { return env[key] }

	var s sample
	if err := populate(reflect.ValueOf(&s).Elem(), lookup); err == nil {
		t.Fatal("populate() expected error for missing required value")
	}

	env["PARSEOS_TEST_PATH_ALT"] = "/tmp/aliases.yaml"
	if err := populate(reflect.ValueOf(&s).Elem(), lookup); err != nil {
		t.Fatalf("populate() error = %v", err)
	}
	if s.Path != "/tmp/aliases.yaml" {
		t.Errorf("Path = %q, want %q", s.Path, "/tmp/aliases.yaml")
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(" a, ,b ,"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("splitList() = %v, want [a b]", got)
	}
	if got := splitList(" , "); got != nil {
		t.Errorf("splitList() = %v, want nil", got)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("SERVER_PORT", "1234")

	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("Default() should ignore the environment, got port %d", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestValidate_NonPositiveConcurrency(t *testing.T) {
	cfg := validConfig()
	cfg.Convert.MaxConcurrent = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for zero concurrency")
	}
	if !strings.Contains(err.Error(), "CONVERT_MAX_CONCURRENT") {
		t.Errorf("error should mention CONVERT_MAX_CONCURRENT: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksAPIKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Security.APIKeys = []string{"super-secret-key"}

	str := cfg.String()
	if strings.Contains(str, "super-secret-key") {
		t.Error("String() should mask API keys")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
