package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/marcoviana/awsvault/internal/vault"
)

type Lambda struct {
	client *lambda.Client
}

func NewLambda(sess *vault.Session) *Lambda {
	return &Lambda{client: lambda.NewFromConfig(sess.Config())}
}

type Function struct {
	Name         string `json:"name"`
	ARN          string `json:"arn"`
	Runtime      string `json:"runtime,omitempty"`
	Handler      string `json:"handler,omitempty"`
	MemorySize   int32  `json:"memory_size,omitempty"`
	Timeout      int32  `json:"timeout,omitempty"`
	CodeSize     int64  `json:"code_size,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

func (s *Lambda) ListFunctions(ctx context.Context) ([]Function, error) {
	functions := []Function{}
	paginator := lambda.NewListFunctionsPaginator(s.client, &lambda.ListFunctionsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, fn := range page.Functions {
			functions = append(functions, Function{
				Name:         aws.ToString(fn.FunctionName),
				ARN:          aws.ToString(fn.FunctionArn),
				Runtime:      string(fn.Runtime),
				Handler:      aws.ToString(fn.Handler),
				MemorySize:   aws.ToInt32(fn.MemorySize),
				Timeout:      aws.ToInt32(fn.Timeout),
				CodeSize:     fn.CodeSize,
				LastModified: aws.ToString(fn.LastModified),
			})
		}
	}
	return functions, nil
}

func (s *Lambda) GetFunction(ctx context.Context, name string) (*Function, error) {
	out, err := s.client.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		return nil, err
	}
	cfg := out.Configuration
	return &Function{
		Name:         aws.ToString(cfg.FunctionName),
		ARN:          aws.ToString(cfg.FunctionArn),
		Runtime:      string(cfg.Runtime),
		Handler:      aws.ToString(cfg.Handler),
		MemorySize:   aws.ToInt32(cfg.MemorySize),
		Timeout:      aws.ToInt32(cfg.Timeout),
		CodeSize:     cfg.CodeSize,
		LastModified: aws.ToString(cfg.LastModified),
	}, nil
}
