package stepfunctions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/goricho/gori-bot/pkg/models"
)

// Client is a wrapper around AWS Step Functions SDK
type Client struct {
	client *sfn.Client
}

// NewClient creates a new Step Functions client
func NewClient(cfg aws.Config) *Client {
	return &Client{
		client: sfn.NewFromConfig(cfg),
	}
}

// StartPipeline starts a state machine execution that runs the agent
// for a deferred chat command. The execution outlives the webhook
// response; once started it is never cancelled.
func (c *Client) StartPipeline(ctx context.Context, stateMachineArn string, input *models.PipelineInput) (string, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("marshal input: %w", err)
	}

	result, err := c.client.StartExecution(ctx, &sfn.StartExecutionInput{
		StateMachineArn: &stateMachineArn,
		Input:           aws.String(string(inputJSON)),
		Name:            aws.String(input.RequestID),
	})
	if err != nil {
		return "", fmt.Errorf("start execution: %w", err)
	}

	return *result.ExecutionArn, nil
}
