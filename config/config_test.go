package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_KEY", "a=b")

	cfg := New()

	assert.Equal(t, "a=b", cfg["PORTFOLIO_TEST_KEY"])
}

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":     "5000",
		"BAD_INT":  "five",
		"ENABLED":  "true",
		"EMPTY":    "",
		"ORIGINS":  "http://a.test, ,http://b.test",
		"BAD_BOOL": "maybe",
	}

	assert.Equal(t, "5000", GetString(cfg, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))

	assert.Equal(t, 5000, GetInt(cfg, "PORT", 1))
	assert.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(cfg, "MISSING", 1))

	assert.True(t, GetBool(cfg, "ENABLED", false))
	assert.False(t, GetBool(cfg, "BAD_BOOL", false))

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetList(cfg, "ORIGINS"))
	assert.Nil(t, GetList(cfg, "MISSING"))
}

type fakeParameterStore struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (f *fakeParameterStore) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestMergeParameters_PagesAndKeepsExplicitValues(t *testing.T) {
	store := &fakeParameterStore{pages: [][]types.Parameter{
		{
			{Name: aws.String("/portfolio/prod/OPENAI_API_KEY"), Value: aws.String("sk-from-ssm")},
			{Name: aws.String("/portfolio/prod/DATABASE_URL"), Value: aws.String("postgres://ssm")},
		},
		{
			{Name: aws.String("/portfolio/prod/S3_BUCKET"), Value: aws.String("portfolio-images")},
		},
	}}
	cfg := map[string]string{"DATABASE_URL": "postgres://env"}

	merged, err := MergeParameters(context.Background(), store, cfg, "/portfolio/prod")

	require.NoError(t, err)
	assert.Equal(t, 2, merged)
	assert.Equal(t, 2, store.calls)
	assert.Equal(t, "sk-from-ssm", cfg["OPENAI_API_KEY"])
	assert.Equal(t, "postgres://env", cfg["DATABASE_URL"])
	assert.Equal(t, "portfolio-images", cfg["S3_BUCKET"])
}

func TestMergeParameters_EmptyPrefixIsNoop(t *testing.T) {
	store := &fakeParameterStore{err: errors.New("should not be called")}

	merged, err := MergeParameters(context.Background(), store, map[string]string{}, "")

	require.NoError(t, err)
	assert.Zero(t, merged)
}

func TestMergeParameters_PropagatesErrors(t *testing.T) {
	store := &fakeParameterStore{err: errors.New("AccessDeniedException")}

	_, err := MergeParameters(context.Background(), store, map[string]string{}, "/portfolio")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDeniedException")
}
