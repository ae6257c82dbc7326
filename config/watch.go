package config

import (
	"github.com/30Piraten/watchful/descriptor"
	"github.com/30Piraten/watchful/watchful"
)

// Watch adds the enabled ALB and API Gateway sections to w and returns every
// alarm they created.
func (c *Config) Watch(w watchful.Watchful) ([]*descriptor.Alarm, error) {
	var alarms []*descriptor.Alarm

	if c.ALB.Enabled() {
		alb := watchful.NewWatchAlb("ALB", &watchful.WatchAlbProps{
			WatchAlbOptions: watchful.WatchAlbOptions{
				ActiveConnectionCountThreshold: c.ALB.ActiveConnectionCountThreshold,
				ConsumedLCUsThreshold:          c.ALB.ConsumedLCUsThreshold,
				TargetResponseTimeThreshold:    c.ALB.TargetResponseTimeThreshold,
				RequestsThreshold:              c.ALB.RequestsThreshold,
				RequestsErrorRateThreshold:     c.ALB.RequestsErrorRateThreshold,
			},
			Title:        c.ALB.Title,
			Watchful:     w,
			LoadBalancer: watchful.LoadBalancerRef{Name: c.ALB.LoadBalancerName},
			TargetGroup: watchful.TargetGroupRef{
				FullName:             c.ALB.TargetGroupFullName,
				LoadBalancerFullName: c.ALB.LoadBalancerFullName,
			},
			Region: c.Region,
		})
		alarms = append(alarms, alb.Alarms()...)
	}

	if c.APIGateway.Enabled() {
		ops, err := c.APIGateway.Operations()
		if err != nil {
			return nil, &Error{Kind: ErrValidation, Err: err}
		}
		api := watchful.NewWatchApiGateway("ApiGateway", &watchful.WatchApiGatewayProps{
			WatchApiGatewayOptions: watchful.WatchApiGatewayOptions{
				ServerErrorThreshold: c.APIGateway.ServerErrorThreshold,
				WatchedOperations:    ops,
				CacheGraph:           c.APIGateway.CacheGraph,
			},
			Title:     c.APIGateway.Title,
			Watchful:  w,
			RestApi:   watchful.RestApiRef{Name: c.APIGateway.ApiName, ID: c.APIGateway.ApiID},
			StageName: c.APIGateway.StageName,
			Region:    c.Region,
		})
		alarms = append(alarms, api.Alarms()...)
	}

	return alarms, nil
}
