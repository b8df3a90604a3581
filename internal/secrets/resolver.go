// Package secrets resolves the database password from AWS Secrets Manager
// and caches it in process memory for the lifetime of the process.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/core/domain"
)

const fetchTimeout = 10 * time.Second

// SecretsAPI is the slice of the Secrets Manager client the resolver needs.
// Satisfied by *secretsmanager.Client; stubbed in tests.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Config locates the secret: the secret ARN and the region of the store.
type Config struct {
	SecretARN string
	Region    string
}

// secretPayload mirrors the JSON document stored in Secrets Manager.
// Only the password field is consumed.
type secretPayload struct {
	Password string `json:"password"`
}

// Resolver lazily fetches the database password and memoizes it. The mutex
// is held across the outbound call so concurrent first resolutions collapse
// into a single fetch. Failed attempts never populate the cache, so a later
// call retries.
type Resolver struct {
	cfg Config
	log zerolog.Logger

	mu     sync.Mutex
	client SecretsAPI
	cached string
}

// NewResolver builds a Resolver that constructs the real Secrets Manager
// client on first use.
func NewResolver(cfg Config, log zerolog.Logger) *Resolver {
	return &Resolver{cfg: cfg, log: log}
}

// NewResolverWithClient builds a Resolver with an injected client.
func NewResolverWithClient(cfg Config, client SecretsAPI, log zerolog.Logger) *Resolver {
	return &Resolver{cfg: cfg, client: client, log: log}
}

// Password returns the database password, fetching it from the secret store
// on first call and from the in-memory cache afterwards.
func (r *Resolver) Password(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	if r.cfg.SecretARN == "" || r.cfg.Region == "" {
		return "", fmt.Errorf("%w: DB_PASSWORD_SECRET_ARN and AWS_REGION must be set", domain.ErrConfigMissing)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	client, err := r.secretsClient(fetchCtx)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to build secrets manager client")
		return "", fmt.Errorf("%w: %v", domain.ErrRetrievalFailed, err)
	}

	out, err := client.GetSecretValue(fetchCtx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(r.cfg.SecretARN),
	})
	if err != nil {
		r.log.Error().Err(err).Str("secret_arn", r.cfg.SecretARN).Msg("error retrieving db secret")
		return "", fmt.Errorf("%w: %v", domain.ErrRetrievalFailed, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("%w: secret has no string value", domain.ErrRetrievalFailed)
	}

	var payload secretPayload
	if err := json.Unmarshal([]byte(*out.SecretString), &payload); err != nil {
		r.log.Error().Err(err).Msg("error parsing db secret payload")
		return "", fmt.Errorf("%w: %v", domain.ErrRetrievalFailed, err)
	}
	if payload.Password == "" {
		return "", fmt.Errorf("%w: secret payload has no password field", domain.ErrRetrievalFailed)
	}

	r.cached = payload.Password
	r.log.Info().Str("secret_arn", r.cfg.SecretARN).Msg("database credential resolved and cached")
	return r.cached, nil
}

// secretsClient returns the injected client or builds the real one once.
func (r *Resolver) secretsClient(ctx context.Context) (SecretsAPI, error) {
	if r.client != nil {
		return r.client, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(r.cfg.Region))
	if err != nil {
		return nil, err
	}
	r.client = secretsmanager.NewFromConfig(awsCfg)
	return r.client, nil
}
