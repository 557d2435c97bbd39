/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIPrefix         = "api"
	defaultStudentEmail      = "student@test.dz"
	defaultStudentPassword   = "student123"
	defaultManagerEmail      = "manager8@auto-ecoleblidacentreschool.dz"
	defaultManagerPassword   = "manager123"
	defaultRegistrationState = "Alger"
)

type TestConfig struct {
	BaseURL           string
	APIPrefix         string
	RequestTimeout    time.Duration
	TestTimeout       time.Duration
	Student           Credentials
	Manager           Credentials
	RegistrationState string
	SkipIntegration   bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
	ValidateResponses bool
	ExpectJWT         bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	config := ReadTestConfig()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ReadTestConfig loads configuration without validating it, so that callers
// such as the CLI can apply overrides first.
func ReadTestConfig() *TestConfig {
	loadEnvFile()

	return &TestConfig{
		BaseURL:        os.Getenv("API_BASE_URL"),
		APIPrefix:      getStringWithDefault("API_PREFIX", defaultAPIPrefix),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:    getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		Student: Credentials{
			Email:    getStringWithDefault("STUDENT_EMAIL", defaultStudentEmail),
			Password: getStringWithDefault("STUDENT_PASSWORD", defaultStudentPassword),
		},
		Manager: Credentials{
			Email:    getStringWithDefault("MANAGER_EMAIL", defaultManagerEmail),
			Password: getStringWithDefault("MANAGER_PASSWORD", defaultManagerPassword),
		},
		RegistrationState: getStringWithDefault("REGISTRATION_STATE", defaultRegistrationState),
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:      getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", true),
		ExpectJWT:         getBoolWithDefault("EXPECT_JWT", false),
	}
}

// Validate checks that all required configuration values are set.
func (c *TestConfig) Validate() error {
	var missing []string

	required := map[string]string{
		"API_BASE_URL":     c.BaseURL,
		"STUDENT_EMAIL":    c.Student.Email,
		"STUDENT_PASSWORD": c.Student.Password,
		"MANAGER_EMAIL":    c.Manager.Email,
		"MANAGER_PASSWORD": c.Manager.Password,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		// Map iteration order is random, keep the message stable.
		slices.Sort(missing)

		return fmt.Errorf("missing required configuration: %s. Please set these environment variables or add them to a .env file", strings.Join(missing, ", "))
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}

	return nil
}

// getStringWithDefault gets a string from environment variable or returns default.
// An explicitly empty value is honoured, which allows API_PREFIX to be cleared.
func getStringWithDefault(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		".env",               // From the repository root, e.g. the CLI
		"../../test/.env",    // From test/api
		"../../../test/.env", // From test/api/suites and test/api/workflow
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
