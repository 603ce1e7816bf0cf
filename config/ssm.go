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

// ParameterStore is the subset of the SSM client used to load secrets
type ParameterStore interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// NewParameterStore builds an SSM client from the default AWS credential chain
func NewParameterStore(ctx context.Context, region string) (ParameterStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// MergeParameters loads every parameter under prefix (decrypted) into cfg.
// The last path segment becomes the key, so /portfolio/prod/OPENAI_API_KEY
// fills OPENAI_API_KEY. Values already present in cfg win.
func MergeParameters(ctx context.Context, store ParameterStore, cfg map[string]string, prefix string) (int, error) {
	if prefix == "" {
		return 0, nil
	}

	merged := 0
	var nextToken *string
	for {
		out, err := store.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return merged, fmt.Errorf("failed to read parameters under %s: %w", prefix, err)
		}

		for _, p := range out.Parameters {
			name := path.Base(aws.ToString(p.Name))
			if name == "" || name == "." || name == "/" {
				continue
			}
			if existing, ok := cfg[name]; ok && strings.TrimSpace(existing) != "" {
				continue
			}
			cfg[name] = aws.ToString(p.Value)
			merged++
		}

		if out.NextToken == nil || aws.ToString(out.NextToken) == "" {
			break
		}
		nextToken = out.NextToken
	}

	log.Info().Str("prefix", prefix).Int("count", merged).Msg("Loaded parameters from SSM")
	return merged, nil
}
