package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/30Piraten/watchful/backend/cloudwatchapi"
	watchfulconfig "github.com/30Piraten/watchful/config"
)

type fakeCloudWatch struct {
	dashboards []string
	alarms     []string
}

func (f *fakeCloudWatch) PutDashboard(_ context.Context, in *cloudwatch.PutDashboardInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutDashboardOutput, error) {
	f.dashboards = append(f.dashboards, aws.ToString(in.DashboardName))
	return &cloudwatch.PutDashboardOutput{}, nil
}

func (f *fakeCloudWatch) PutMetricAlarm(_ context.Context, in *cloudwatch.PutMetricAlarmInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricAlarmOutput, error) {
	f.alarms = append(f.alarms, aws.ToString(in.AlarmName))
	return &cloudwatch.PutMetricAlarmOutput{}, nil
}

func testConfig() *watchfulconfig.Config {
	return &watchfulconfig.Config{
		LogLevel: "info",
		Region:   "eu-west-1",
		Watchful: watchfulconfig.WatchfulConfig{
			DashboardName: "orders",
			AlarmTopicArn: "arn:aws:sns:eu-west-1:123456789012:oncall",
		},
		APIGateway: watchfulconfig.APIGatewayConfig{
			Title:     "Orders API",
			ApiName:   "orders",
			ApiID:     "a1b2c3",
			StageName: "prod",
		},
	}
}

func run(t *testing.T, a *app, cfg *watchfulconfig.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := a.rootCommand(func() (*watchfulconfig.Config, error) { return cfg, nil })
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRender(t *testing.T) {
	out, err := run(t, &app{logger: zap.NewNop()}, testConfig(), "render")
	require.NoError(t, err)

	assert.Equal(t, "orders", gjson.Get(out, "dashboardName").String())
	// section text, then the overall row of three graphs
	assert.Equal(t, int64(4), gjson.Get(out, "body.widgets.#").Int())
	assert.Equal(t, int64(1), gjson.Get(out, "alarms.#").Int())
	assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:oncall", gjson.Get(out, "alarms.0.AlarmActions.0").String())
	assert.Equal(t, "5XXError", gjson.Get(out, "alarms.0.MetricName").String())
}

func TestApply(t *testing.T) {
	fake := &fakeCloudWatch{}
	var gotRegion string
	a := &app{
		logger: zap.NewNop(),
		newAPI: func(_ context.Context, region string) (cloudwatchapi.API, error) {
			gotRegion = region
			return fake, nil
		},
	}

	_, err := run(t, a, testConfig(), "apply")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", gotRegion)
	assert.Equal(t, []string{"orders"}, fake.dashboards)
	assert.Len(t, fake.alarms, 1)
}

func TestApplyDryRun(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := &app{
		logger: zap.New(core),
		newAPI: func(context.Context, string) (cloudwatchapi.API, error) {
			t.Fatal("dry run must not create a client")
			return nil, nil
		},
	}

	_, err := run(t, a, testConfig(), "apply", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("dry run, nothing applied").Len())
}

func TestApplyClientError(t *testing.T) {
	boom := errors.New("no credentials")
	a := &app{
		logger: zap.NewNop(),
		newAPI: func(context.Context, string) (cloudwatchapi.API, error) { return nil, boom },
	}

	_, err := run(t, a, testConfig(), "apply")
	assert.ErrorIs(t, err, boom)
}

func TestConfigErrorStopsCommands(t *testing.T) {
	a := &app{logger: zap.NewNop()}
	cmd := a.rootCommand(func() (*watchfulconfig.Config, error) {
		return nil, &watchfulconfig.Error{Kind: watchfulconfig.ErrValidation, Err: errors.New("dashboard name required")}
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render"})

	err := cmd.Execute()
	var cfgErr *watchfulconfig.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, watchfulconfig.ErrValidation, cfgErr.Kind)
}
