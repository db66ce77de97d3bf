package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/marcoviana/awsvault/internal/vault"
)

type IAM struct {
	client *iam.Client
}

func NewIAM(sess *vault.Session) *IAM {
	return &IAM{client: iam.NewFromConfig(sess.Config())}
}

type User struct {
	Name             string `json:"name"`
	ARN              string `json:"arn"`
	UserID           string `json:"user_id"`
	CreatedAt        string `json:"created_at,omitempty"`
	PasswordLastUsed string `json:"password_last_used,omitempty"`
}

type Role struct {
	Name        string `json:"name"`
	ARN         string `json:"arn"`
	CreatedAt   string `json:"created_at,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *IAM) ListUsers(ctx context.Context, pathPrefix string) ([]User, error) {
	input := &iam.ListUsersInput{}
	if pathPrefix != "" {
		input.PathPrefix = aws.String(pathPrefix)
	}

	users := []User{}
	paginator := iam.NewListUsersPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range page.Users {
			user := User{
				Name:   aws.ToString(u.UserName),
				ARN:    aws.ToString(u.Arn),
				UserID: aws.ToString(u.UserId),
			}
			if u.CreateDate != nil {
				user.CreatedAt = u.CreateDate.Format("2006-01-02 15:04:05")
			}
			if u.PasswordLastUsed != nil {
				user.PasswordLastUsed = u.PasswordLastUsed.Format("2006-01-02 15:04:05")
			}
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *IAM) ListRoles(ctx context.Context, pathPrefix string) ([]Role, error) {
	input := &iam.ListRolesInput{}
	if pathPrefix != "" {
		input.PathPrefix = aws.String(pathPrefix)
	}

	roles := []Role{}
	paginator := iam.NewListRolesPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Roles {
			role := Role{
				Name:        aws.ToString(r.RoleName),
				ARN:         aws.ToString(r.Arn),
				Description: aws.ToString(r.Description),
			}
			if r.CreateDate != nil {
				role.CreatedAt = r.CreateDate.Format("2006-01-02 15:04:05")
			}
			roles = append(roles, role)
		}
	}
	return roles, nil
}
