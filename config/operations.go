package config

import (
	"fmt"
	"strings"

	"github.com/30Piraten/watchful/monitoring/apigateway"
)

var httpMethods = map[string]bool{
	"ANY": true, "DELETE": true, "GET": true, "HEAD": true,
	"OPTIONS": true, "PATCH": true, "POST": true, "PUT": true,
}

// Operations parses WatchedOperations ("GET /orders", "POST /orders/{id}").
func (c APIGatewayConfig) Operations() ([]apigateway.Operation, error) {
	ops := make([]apigateway.Operation, 0, len(c.WatchedOperations))
	seen := make(map[apigateway.Operation]bool, len(c.WatchedOperations))
	for _, raw := range c.WatchedOperations {
		method, path, ok := strings.Cut(strings.TrimSpace(raw), " ")
		method = strings.ToUpper(method)
		path = strings.TrimSpace(path)
		if !ok || !httpMethods[method] || !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("invalid watched operation %q, want \"METHOD /path\"", raw)
		}
		op := apigateway.Operation{HTTPMethod: method, ResourcePath: path}
		if seen[op] {
			return nil, fmt.Errorf("watched operation %q listed twice", op.Name())
		}
		seen[op] = true
		ops = append(ops, op)
	}
	return ops, nil
}
