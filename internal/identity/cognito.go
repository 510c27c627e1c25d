package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"golang.org/x/time/rate"
)

// CognitoAPI is the subset of the Cognito client used here.
// *cognitoidentityprovider.Client satisfies it.
type CognitoAPI interface {
	AdminCreateUser(ctx context.Context, params *cognito.AdminCreateUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, params *cognito.AdminSetUserPasswordInput, optFns ...func(*cognito.Options)) (*cognito.AdminSetUserPasswordOutput, error)
	AdminUpdateUserAttributes(ctx context.Context, params *cognito.AdminUpdateUserAttributesInput, optFns ...func(*cognito.Options)) (*cognito.AdminUpdateUserAttributesOutput, error)
	AdminDeleteUser(ctx context.Context, params *cognito.AdminDeleteUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminDeleteUserOutput, error)
	AdminGetUser(ctx context.Context, params *cognito.AdminGetUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminGetUserOutput, error)
	ListUsers(ctx context.Context, params *cognito.ListUsersInput, optFns ...func(*cognito.Options)) (*cognito.ListUsersOutput, error)
}

// Cognito implements Provider against a Cognito user pool. All admin calls
// share one rate limiter; the pool-level admin API quota is low and a burst
// of portal traffic must not trip it.
type Cognito struct {
	client  CognitoAPI
	poolID  string
	limiter *rate.Limiter
}

// NewCognito creates a provider for the given user pool.
func NewCognito(client CognitoAPI, poolID string) *Cognito {
	return &Cognito{
		client:  client,
		poolID:  poolID,
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
}

func (c *Cognito) CreateAccount(ctx context.Context, email, name string) (string, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", "", err
	}
	_, err := c.client.AdminCreateUser(ctx, &cognito.AdminCreateUserInput{
		UserPoolId: aws.String(c.poolID),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
			{Name: aws.String("name"), Value: aws.String(name)},
		},
		MessageAction: types.MessageActionTypeSuppress,
	})
	if err != nil {
		return "", "", fmt.Errorf("admin create user: %w", err)
	}

	tempPassword, err := TempPassword()
	if err != nil {
		return "", "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", "", err
	}
	_, err = c.client.AdminSetUserPassword(ctx, &cognito.AdminSetUserPasswordInput{
		UserPoolId: aws.String(c.poolID),
		Username:   aws.String(email),
		Password:   aws.String(tempPassword),
		Permanent:  false,
	})
	if err != nil {
		return "", "", fmt.Errorf("admin set user password: %w", err)
	}

	return email, tempPassword, nil
}

func (c *Cognito) UpdateAccount(ctx context.Context, username, email, name string) error {
	attrs := make([]types.AttributeType, 0, 2)
	if email != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("email"), Value: aws.String(email)})
	}
	if name != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("name"), Value: aws.String(name)})
	}
	if len(attrs) == 0 {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := c.client.AdminUpdateUserAttributes(ctx, &cognito.AdminUpdateUserAttributesInput{
		UserPoolId:     aws.String(c.poolID),
		Username:       aws.String(username),
		UserAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("admin update user attributes: %w", err)
	}
	return nil
}

func (c *Cognito) DeleteAccount(ctx context.Context, username string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := c.client.AdminDeleteUser(ctx, &cognito.AdminDeleteUserInput{
		UserPoolId: aws.String(c.poolID),
		Username:   aws.String(username),
	})
	if err != nil {
		if isUserNotFound(err) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("admin delete user: %w", err)
	}
	return nil
}

func (c *Cognito) AccountExists(ctx context.Context, username string) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}
	_, err := c.client.AdminGetUser(ctx, &cognito.AdminGetUserInput{
		UserPoolId: aws.String(c.poolID),
		Username:   aws.String(username),
	})
	if err != nil {
		if isUserNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("admin get user: %w", err)
	}
	return true, nil
}

func (c *Cognito) ListUsernames(ctx context.Context) ([]string, error) {
	var (
		names []string
		token *string
	)
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		out, err := c.client.ListUsers(ctx, &cognito.ListUsersInput{
			UserPoolId:      aws.String(c.poolID),
			PaginationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		for _, u := range out.Users {
			if u.Username != nil {
				names = append(names, *u.Username)
			}
		}
		if out.PaginationToken == nil {
			return names, nil
		}
		token = out.PaginationToken
	}
}

func isUserNotFound(err error) bool {
	var nf *types.UserNotFoundException
	return errors.As(err, &nf)
}
