package watchful

import "fmt"

const defaultRegion = "us-east-1"

func linkForAlbLoadBalancer(region, loadBalancerName string) string {
	return fmt.Sprintf("https://console.aws.amazon.com/ec2/v2/home?region=%s#LoadBalancers:sort=%s",
		regionOrDefault(region), loadBalancerName)
}

func linkForApiGateway(region, restApiId string) string {
	return fmt.Sprintf("https://console.aws.amazon.com/apigateway/home?region=%s#/apis/%s/dashboard",
		regionOrDefault(region), restApiId)
}

func regionOrDefault(region string) string {
	if region == "" {
		return defaultRegion
	}
	return region
}
