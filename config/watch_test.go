package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/30Piraten/watchful/backend/cloudwatchapi"
	"github.com/30Piraten/watchful/descriptor"
)

func alarmIDs(alarms []*descriptor.Alarm) []string {
	ids := make([]string, 0, len(alarms))
	for _, a := range alarms {
		ids = append(ids, a.Owner+"/"+a.ID)
	}
	return ids
}

func TestWatchNothingEnabled(t *testing.T) {
	cfg := &Config{Region: "us-east-1"}
	dash := cloudwatchapi.New(cloudwatchapi.Options{DashboardName: "empty"})

	alarms, err := cfg.Watch(dash)
	require.NoError(t, err)
	assert.Empty(t, alarms)
}

func TestWatchBothSections(t *testing.T) {
	t.Setenv("WATCHFUL_DASHBOARD_NAME", "checkout")
	t.Setenv("ALB_LOAD_BALANCER_NAME", "my-lb")
	t.Setenv("ALB_LOAD_BALANCER_FULL_NAME", "app/my-lb/123")
	t.Setenv("ALB_TARGET_GROUP_FULL_NAME", "targetgroup/my-tg/456")
	t.Setenv("APIGW_API_NAME", "orders")
	t.Setenv("APIGW_API_ID", "a1b2c3")
	t.Setenv("APIGW_WATCHED_OPERATIONS", "GET /orders")

	cfg, err := load()
	require.NoError(t, err)

	dash := cloudwatchapi.New(cloudwatchapi.Options{DashboardName: cfg.Watchful.DashboardName})
	alarms, err := cfg.Watch(dash)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ALB/activeConnectionCountAlarm",
		"ALB/consumedLCUsAlarm",
		"ALB/targetResponseTimeAlarm",
		"ALB/requestsAlarm",
		"ALB/requestsErrorRateAlarm",
		"ApiGateway/5XXErrorAlarm",
		"ApiGateway/GETorders5XXErrorAlarm",
	}, alarmIDs(alarms))

	def, err := dash.Build()
	require.NoError(t, err)
	assert.Len(t, def.Alarms, 7)
}

func TestWatchRejectsBadOperation(t *testing.T) {
	cfg := &Config{APIGateway: APIGatewayConfig{
		ApiName:           "orders",
		ApiID:             "a1b2c3",
		WatchedOperations: []string{"orders"},
	}}
	_, err := cfg.Watch(cloudwatchapi.New(cloudwatchapi.Options{}))
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrValidation, cfgErr.Kind)
}
