// Package awsutil provides utilities for loading AWS configuration.
package awsutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
)

// Load loads the AWS configuration for the given region. When endpoint is
// non-empty (e.g. http://localstack:4566) every service client built from the
// returned config targets it instead of the real AWS endpoints.
func Load(ctx context.Context, region, endpoint string) (aws.Config, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(region),
	}
	if endpoint != "" {
		opts = append(opts, awsCfg.WithBaseEndpoint(endpoint))
	}
	return awsCfg.LoadDefaultConfig(ctx, opts...)
}
