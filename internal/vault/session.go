package vault

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Session is the validated authentication context for the connected
// account. Service wrappers build their per-service clients from it;
// they get a copy of the aws.Config, never a shared mutable reference.
type Session struct {
	cfg      aws.Config
	account  string
	region   string
	identity Identity
}

func newSession(ctx context.Context, r *Record, id Identity) (*Session, error) {
	cfg, err := recordConfig(ctx, r)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:      cfg,
		account:  r.AccountName,
		region:   r.Region,
		identity: id,
	}, nil
}

// Config returns the AWS client configuration for this session.
func (s *Session) Config() aws.Config { return s.cfg }

// Account returns the vault account name the session belongs to.
func (s *Session) Account() string { return s.account }

// Region returns the session's region.
func (s *Session) Region() string { return s.region }

// Identity returns what the identity check discovered at connect time.
func (s *Session) Identity() Identity { return s.identity }
