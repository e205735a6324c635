package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load(map[string]string{})

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 180*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, StrategyBoth, cfg.BlogIDStrategy)
	assert.Equal(t, DefaultClientIPHeader, cfg.ClientIPHeader)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AcceptedOrigins)
	assert.Equal(t, DefaultAIModel, cfg.AI.Model)
	assert.Equal(t, 2048, cfg.AI.MaxTokens)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 1e-9)
	assert.Empty(t, cfg.AI.Provider)
}

func TestLoadOverrides(t *testing.T) {
	cfg := Load(map[string]string{
		"PORT":                  "9000",
		"DB_TYPE":               "Postgres",
		"DATABASE_DSN":          "host=db user=blog",
		"DATABASE_REPLICA_DSNS": "host=r1, ,host=r2",
		"AUTO_MIGRATE":          "false",
		"ACCEPTED_ORIGINS":      "https://a.example, https://b.example",
		"BLOG_ID_STRATEGY":      "EXPLICIT",
		"AI_TEMPERATURE":        "0.2",
		"AI_MAX_TOKENS":         "not-a-number",
	})

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "host=db user=blog", cfg.Database.DSN)
	assert.Equal(t, []string{"host=r1", "host=r2"}, cfg.Database.ReplicaDSNs)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AcceptedOrigins)
	assert.Equal(t, StrategyExplicit, cfg.BlogIDStrategy)
	assert.InDelta(t, 0.2, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, 2048, cfg.AI.MaxTokens)
}

func TestUnknownStrategyFallsBackToBoth(t *testing.T) {
	cfg := Load(map[string]string{"BLOG_ID_STRATEGY": "random"})
	assert.Equal(t, StrategyBoth, cfg.BlogIDStrategy)
}

func TestStrategyRoutes(t *testing.T) {
	assert.True(t, StrategyAuto.AllowsAuto())
	assert.False(t, StrategyAuto.AllowsExplicit())
	assert.False(t, StrategyExplicit.AllowsAuto())
	assert.True(t, StrategyExplicit.AllowsExplicit())
	assert.True(t, StrategyBoth.AllowsAuto())
	assert.True(t, StrategyBoth.AllowsExplicit())
}

func TestSupabaseDSN(t *testing.T) {
	cfg := Load(map[string]string{
		"DB_TYPE":              "supa",
		"SUPABASE_DB_HOST":     "db.supabase.co",
		"SUPABASE_DB_USER":     "postgres",
		"SUPABASE_DB_PASSWORD": "secret",
		"SUPABASE_DB_NAME":     "blog",
	})

	assert.Equal(t, "host=db.supabase.co user=postgres password=secret dbname=blog port=5432 sslmode=require", cfg.Database.DSN)
}

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeSSM) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	out := &ssm.GetParametersByPathOutput{Parameters: f.pages[f.calls]}
	f.calls++
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestOverlayFromClient(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/blog/prod/AI_API_KEY"), Value: aws.String("key")}},
		{{Name: aws.String("/blog/prod/PORT"), Value: aws.String("9999")}},
	}}
	env := map[string]string{"PORT": "8080"}

	require.NoError(t, overlayFromClient(context.Background(), client, "/blog/prod", env))

	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "key", env["AI_API_KEY"])
	assert.Equal(t, "9999", env["PORT"])
}

func TestOverlaySSMWithoutPathIsNoop(t *testing.T) {
	env := map[string]string{"PORT": "8080"}
	require.NoError(t, OverlaySSM(context.Background(), env))
	assert.Equal(t, map[string]string{"PORT": "8080"}, env)
}

func TestParameterKey(t *testing.T) {
	assert.Equal(t, "AI_API_KEY", parameterKey("/blog/prod/AI_API_KEY"))
	assert.Equal(t, "PORT", parameterKey("PORT"))
	assert.Equal(t, "", parameterKey(""))
}
