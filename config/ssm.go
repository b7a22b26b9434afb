package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterGetter is the subset of the SSM client used to fetch secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveAPIKey fills APIKey from SSM Parameter Store when API_KEY_SSM_PARAMETER
// is set and no key was given directly. A nil client builds one from the default AWS chain.
func (c *Config) ResolveAPIKey(ctx context.Context, client ParameterGetter) error {
	if c.APIKey != "" || c.APIKeySSMParameter == "" {
		return nil
	}

	if client == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		client = ssm.NewFromConfig(awsCfg)
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.APIKeySSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get ssm parameter %s: %w", c.APIKeySSMParameter, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return fmt.Errorf("ssm parameter %s is empty", c.APIKeySSMParameter)
	}

	c.APIKey = aws.ToString(out.Parameter.Value)
	return nil
}
