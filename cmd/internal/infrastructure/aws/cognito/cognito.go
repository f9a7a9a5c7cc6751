package cognitoclient

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// AdminAPI is the subset of the Cognito SDK used by the client.
type AdminAPI interface {
	AdminUpdateUserAttributes(ctx context.Context, params *cognito.AdminUpdateUserAttributesInput, optFns ...func(*cognito.Options)) (*cognito.AdminUpdateUserAttributesOutput, error)
	AdminDeleteUser(ctx context.Context, params *cognito.AdminDeleteUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminDeleteUserOutput, error)
}

// Client performs admin operations against a user pool. Users are addressed
// by their "sub", which Cognito accepts as username for admin calls.
type Client struct {
	api    AdminAPI
	poolID string
}

func NewClient(ctx context.Context, region, poolID string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewClientWithAPI(cognito.NewFromConfig(cfg), poolID), nil
}

func NewClientWithAPI(api AdminAPI, poolID string) *Client {
	return &Client{api: api, poolID: poolID}
}

// UpdateUserAttributes writes the new email and name. The email is marked
// as verified since the change comes from an already authenticated session.
func (c *Client) UpdateUserAttributes(ctx context.Context, sub, email, name string) error {
	_, err := c.api.AdminUpdateUserAttributes(ctx, &cognito.AdminUpdateUserAttributesInput{
		UserPoolId: aws.String(c.poolID),
		Username:   aws.String(sub),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
			{Name: aws.String("name"), Value: aws.String(name)},
		},
	})
	return err
}

// DeleteUser removes the user from the pool. A user that is already gone
// is not an error.
func (c *Client) DeleteUser(ctx context.Context, sub string) error {
	_, err := c.api.AdminDeleteUser(ctx, &cognito.AdminDeleteUserInput{
		UserPoolId: aws.String(c.poolID),
		Username:   aws.String(sub),
	})

	var notFound *types.UserNotFoundException
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}
