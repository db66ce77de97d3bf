// Package services holds the thin pass-through wrappers over the AWS
// service APIs. Every method is a single SDK call reshaped into a flat
// display struct; there is no retry logic and no state beyond the
// client handle. Wrappers are built from the coordinator's active
// session and are constructed fresh per invocation.
package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/marcoviana/awsvault/internal/vault"
)

type EC2 struct {
	client *ec2.Client
}

func NewEC2(sess *vault.Session) *EC2 {
	return &EC2{client: ec2.NewFromConfig(sess.Config())}
}

// Instance is the display shape of one EC2 instance.
type Instance struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type"`
	State      string `json:"state"`
	PrivateIP  string `json:"private_ip,omitempty"`
	PublicIP   string `json:"public_ip,omitempty"`
	LaunchTime string `json:"launch_time,omitempty"`
}

// ListInstances returns all instances, optionally filtered by state
// name (running, stopped, ...).
func (s *EC2) ListInstances(ctx context.Context, state string) ([]Instance, error) {
	input := &ec2.DescribeInstancesInput{}
	if state != "" {
		input.Filters = []ec2types.Filter{{
			Name:   aws.String("instance-state-name"),
			Values: []string{state},
		}}
	}

	instances := []Instance{}
	paginator := ec2.NewDescribeInstancesPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				instances = append(instances, formatInstance(inst))
			}
		}
	}
	return instances, nil
}

func (s *EC2) StartInstance(ctx context.Context, id string) error {
	_, err := s.client.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{id},
	})
	return err
}

func (s *EC2) StopInstance(ctx context.Context, id string, force bool) error {
	_, err := s.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{id},
		Force:       aws.Bool(force),
	})
	return err
}

func (s *EC2) RebootInstance(ctx context.Context, id string) error {
	_, err := s.client.RebootInstances(ctx, &ec2.RebootInstancesInput{
		InstanceIds: []string{id},
	})
	return err
}

func formatInstance(inst ec2types.Instance) Instance {
	out := Instance{
		ID:   aws.ToString(inst.InstanceId),
		Type: string(inst.InstanceType),
	}
	if inst.State != nil {
		out.State = string(inst.State.Name)
	}
	out.PrivateIP = aws.ToString(inst.PrivateIpAddress)
	out.PublicIP = aws.ToString(inst.PublicIpAddress)
	if inst.LaunchTime != nil {
		out.LaunchTime = inst.LaunchTime.Format("2006-01-02 15:04:05")
	}
	for _, tag := range inst.Tags {
		if aws.ToString(tag.Key) == "Name" {
			out.Name = aws.ToString(tag.Value)
			break
		}
	}
	return out
}
