package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"

	"github.com/30Piraten/watchful/watchful"
)

// CDK resources defined in the same app can be watched directly.
var (
	_ watchful.LoadBalancer = awselasticloadbalancingv2.ApplicationLoadBalancer(nil)
	_ watchful.TargetGroup  = awselasticloadbalancingv2.ApplicationTargetGroup(nil)
	_ watchful.RestApi      = awsapigateway.RestApi(nil)
)
