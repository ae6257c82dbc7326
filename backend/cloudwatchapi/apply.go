package cloudwatchapi

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"go.uber.org/zap"
)

// API is the part of the CloudWatch client Apply needs.
type API interface {
	PutDashboard(ctx context.Context, params *cloudwatch.PutDashboardInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutDashboardOutput, error)
	PutMetricAlarm(ctx context.Context, params *cloudwatch.PutMetricAlarmInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricAlarmOutput, error)
}

var _ API = (*cloudwatch.Client)(nil)

type Applier struct {
	api    API
	logger *zap.Logger
}

func NewApplier(api API, logger *zap.Logger) *Applier {
	return &Applier{api: api, logger: logger}
}

// Apply puts the dashboard, then every alarm. It stops at the first failure;
// whatever was already put stays in place.
func (a *Applier) Apply(ctx context.Context, def *Definition) error {
	out, err := a.api.PutDashboard(ctx, &cloudwatch.PutDashboardInput{
		DashboardName: aws.String(def.DashboardName),
		DashboardBody: aws.String(def.Body),
	})
	if err != nil {
		return fmt.Errorf("put dashboard %s: %w", def.DashboardName, err)
	}
	for _, msg := range out.DashboardValidationMessages {
		a.logger.Warn("dashboard validation message",
			zap.String("dashboard", def.DashboardName),
			zap.String("path", aws.ToString(msg.DataPath)),
			zap.String("message", aws.ToString(msg.Message)),
		)
	}
	a.logger.Info("dashboard applied", zap.String("dashboard", def.DashboardName))

	for _, in := range def.Alarms {
		if _, err := a.api.PutMetricAlarm(ctx, in); err != nil {
			return fmt.Errorf("put alarm %s: %w", aws.ToString(in.AlarmName), err)
		}
		a.logger.Info("alarm applied",
			zap.String("alarm", aws.ToString(in.AlarmName)),
			zap.Float64("threshold", aws.ToFloat64(in.Threshold)),
		)
	}
	return nil
}
