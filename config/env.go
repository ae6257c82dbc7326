// Package config loads the monitoring stack configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Account     string `envconfig:"ACCOUNT_ID"`
	Region      string `envconfig:"AWS_REGION" default:"us-east-1" validate:"required"`

	Watchful   WatchfulConfig
	ALB        ALBConfig
	APIGateway APIGatewayConfig
}

type WatchfulConfig struct {
	DashboardName  string `envconfig:"WATCHFUL_DASHBOARD_NAME" validate:"required"`
	AlarmTopicName string `envconfig:"WATCHFUL_ALARM_TOPIC_NAME" default:"watchful-alarms"`
	AlarmTopicArn  string `envconfig:"WATCHFUL_ALARM_TOPIC_ARN"`
	AlarmEmail     string `envconfig:"WATCHFUL_ALARM_EMAIL" validate:"omitempty,email"`
}

// ALBConfig describes one target group behind an application load balancer.
// The section is disabled when TargetGroupFullName is empty.
type ALBConfig struct {
	Title                string `envconfig:"ALB_TITLE" default:"Application Load Balancer"`
	LoadBalancerName     string `envconfig:"ALB_LOAD_BALANCER_NAME"`
	LoadBalancerFullName string `envconfig:"ALB_LOAD_BALANCER_FULL_NAME" validate:"required_with=TargetGroupFullName"`
	TargetGroupFullName  string `envconfig:"ALB_TARGET_GROUP_FULL_NAME"`

	ActiveConnectionCountThreshold *float64 `envconfig:"ALB_ACTIVE_CONNECTION_COUNT_THRESHOLD" validate:"omitempty,gte=0"`
	ConsumedLCUsThreshold          *float64 `envconfig:"ALB_CONSUMED_LCUS_THRESHOLD" validate:"omitempty,gte=0"`
	TargetResponseTimeThreshold    *float64 `envconfig:"ALB_TARGET_RESPONSE_TIME_THRESHOLD" validate:"omitempty,gte=0"`
	RequestsThreshold              *float64 `envconfig:"ALB_REQUESTS_THRESHOLD" validate:"omitempty,gte=0"`
	RequestsErrorRateThreshold     *float64 `envconfig:"ALB_REQUESTS_ERROR_RATE_THRESHOLD" validate:"omitempty,gte=0,lte=1"`
}

func (c ALBConfig) Enabled() bool { return c.TargetGroupFullName != "" }

// APIGatewayConfig describes one REST API stage. The section is disabled
// when ApiName is empty.
type APIGatewayConfig struct {
	Title                string   `envconfig:"APIGW_TITLE" default:"API Gateway"`
	ApiName              string   `envconfig:"APIGW_API_NAME"`
	ApiID                string   `envconfig:"APIGW_API_ID" validate:"required_with=ApiName"`
	StageName            string   `envconfig:"APIGW_STAGE_NAME" default:"prod"`
	ServerErrorThreshold *float64 `envconfig:"APIGW_SERVER_ERROR_THRESHOLD" validate:"omitempty,gte=0"`
	CacheGraph           bool     `envconfig:"APIGW_CACHE_GRAPH" default:"false"`
	// WatchedOperations are "METHOD /path" pairs, comma separated.
	WatchedOperations []string `envconfig:"APIGW_WATCHED_OPERATIONS"`
}

func (c APIGatewayConfig) Enabled() bool { return c.ApiName != "" }

type ErrorKind string

const (
	ErrParsing    ErrorKind = "PARSING"
	ErrValidation ErrorKind = "VALIDATION"
)

// Error is returned by Load when the environment cannot be turned into a
// valid Config.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] configuration: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads .env (if present, never overriding the environment), then the
// environment itself, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load()
}

func load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &Error{Kind: ErrParsing, Err: err}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, &Error{Kind: ErrValidation, Err: err}
	}
	if _, err := cfg.APIGateway.Operations(); err != nil {
		return nil, &Error{Kind: ErrValidation, Err: err}
	}
	return &cfg, nil
}
