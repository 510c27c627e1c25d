package bootstrap

import (
	"context"
	"fmt"

	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/devforge-portal/portal-backend/config"
	"github.com/devforge-portal/portal-backend/internal/awsutil"
)

// Clients holds the process-wide AWS service clients. They are constructed
// once at startup and passed explicitly into the layers that use them.
type Clients struct {
	DB      *awsdynamodb.Client
	Cognito *cognito.Client
}

// NewClients loads the AWS configuration and builds the service clients.
func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	awsCfg, err := awsutil.Load(ctx, cfg.AWS.Region, cfg.AWS.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Clients{
		DB:      awsdynamodb.NewFromConfig(awsCfg),
		Cognito: cognito.NewFromConfig(awsCfg),
	}, nil
}
