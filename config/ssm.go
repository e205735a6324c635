package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// SSMParameterPathKey names the env var holding the SSM path to overlay.
const SSMParameterPathKey = "AWS_SSM_PARAMETER_PATH"

// OverlaySSM copies every parameter under AWS_SSM_PARAMETER_PATH into env.
// Parameters are keyed by their last path segment, so /blog/prod/AI_API_KEY
// becomes AI_API_KEY. Values already present in env are overwritten.
// It is a no-op when the path is not configured.
func OverlaySSM(ctx context.Context, env map[string]string) error {
	parameterPath := GetString(env, SSMParameterPathKey, "")
	if parameterPath == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	return overlayFromClient(ctx, ssm.NewFromConfig(awsCfg), parameterPath, env)
}

func overlayFromClient(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string, env map[string]string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("get parameters by path %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			key := parameterKey(aws.ToString(p.Name))
			if key == "" {
				continue
			}
			env[key] = aws.ToString(p.Value)
			loaded++
		}
	}

	log.Info().Str("path", parameterPath).Int("parameters", loaded).Msg("Loaded configuration from SSM")
	return nil
}

func parameterKey(name string) string {
	name = strings.TrimSuffix(name, "/")
	if name == "" {
		return ""
	}
	return path.Base(name)
}
