package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
)

// Identity is what the remote identity check discovers about a set of
// credentials.
type Identity struct {
	AccountID    string
	PrincipalARN string
	UserID       string
}

// Verifier decides whether a record can actually authenticate. Every
// remote failure collapses to ErrInvalidCredentials; callers log the
// cause but never branch on it.
type Verifier interface {
	Verify(ctx context.Context, r *Record) (Identity, error)
}

// STSVerifier validates records with a single GetCallerIdentity call.
type STSVerifier struct {
	timeout time.Duration
	log     zerolog.Logger
}

func NewSTSVerifier(timeout time.Duration, log zerolog.Logger) *STSVerifier {
	return &STSVerifier{timeout: timeout, log: log}
}

func (v *STSVerifier) Verify(ctx context.Context, r *Record) (Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	cfg, err := recordConfig(ctx, r)
	if err != nil {
		v.log.Debug().Str("account", r.AccountName).Err(err).Msg("identity check: config load failed")
		return Identity{}, fmt.Errorf("credentials for %q rejected by remote validation: %w", r.AccountName, ErrInvalidCredentials)
	}

	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		v.log.Debug().Str("account", r.AccountName).Err(err).Msg("identity check failed")
		return Identity{}, fmt.Errorf("credentials for %q rejected by remote validation: %w", r.AccountName, ErrInvalidCredentials)
	}

	return Identity{
		AccountID:    aws.ToString(out.Account),
		PrincipalARN: aws.ToString(out.Arn),
		UserID:       aws.ToString(out.UserId),
	}, nil
}

// recordConfig builds an aws.Config from a record's secrets and region.
func recordConfig(ctx context.Context, r *Record) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(r.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			r.AccessKeyID,
			r.SecretAccessKey,
			r.SessionToken,
		)),
	)
}
