package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	appconfig "github.com/goricho/gori-bot/pkg/config"
	"github.com/goricho/gori-bot/pkg/dynamodb"
	"github.com/goricho/gori-bot/pkg/handler"
	"github.com/goricho/gori-bot/pkg/models"
	"github.com/goricho/gori-bot/pkg/stepfunctions"
)

// Handler is the Lambda handler for Discord interaction webhooks
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.Path == "/health" {
		return plainResponse(200, "OK"), nil
	}
	if request.Path == "/discord" && request.HTTPMethod == "POST" {
		return handleDiscordWebhook(ctx, request)
	}

	return plainResponse(404, "Not Found"), nil
}

func handleDiscordWebhook(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log.Printf("Received Discord interaction")

	// Load configuration
	cfg, err := appconfig.Load()
	if err != nil {
		return internalError("Failed to load config", err)
	}

	// Validate handler-specific configuration
	if err := cfg.ValidateWebhook(); err != nil {
		return internalError("Invalid webhook config", err)
	}

	// Verify the Ed25519 interaction signature
	body := []byte(request.Body)
	if !handler.VerifyDiscordRequest(
		body,
		headerValue(request.Headers, "X-Signature-Timestamp"),
		headerValue(request.Headers, "X-Signature-Ed25519"),
		cfg.DiscordPublicKey,
	) {
		log.Printf("Invalid Discord signature")
		return plainResponse(401, "Unauthorized"), nil
	}

	// Parse the interaction payload
	var interaction models.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		return internalError("Failed to parse interaction", err)
	}

	// Initialize AWS SDK
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return internalError("Failed to load AWS config", err)
	}

	// Initialize collaborators
	ddbClient := dynamodb.NewClientWithConfig(awsCfg)
	noteRepo := dynamodb.NewNoteRepository(ddbClient, cfg.NotesTable)
	starter := &pipelineStarter{
		client:          stepfunctions.NewClient(awsCfg),
		stateMachineArn: cfg.StateMachineArn,
	}

	dispatcher := handler.NewInteractionHandler(noteRepo, starter)
	response := dispatcher.HandleInteraction(ctx, &interaction)
	if response == nil {
		return plainResponse(200, "OK"), nil
	}

	return jsonResponse(response)
}

// pipelineStarter binds the state machine ARN onto the Step Functions client
type pipelineStarter struct {
	client          *stepfunctions.Client
	stateMachineArn string
}

func (s *pipelineStarter) StartPipeline(ctx context.Context, input *models.PipelineInput) (string, error) {
	return s.client.StartPipeline(ctx, s.stateMachineArn, input)
}

// headerValue looks a header up under both its canonical and lowercase
// names; API Gateway forwards whatever casing the client sent.
func headerValue(headers map[string]string, name string) string {
	if value, ok := headers[name]; ok {
		return value
	}
	return headers[strings.ToLower(name)]
}

// internalError logs the cause and returns a generic 500
func internalError(message string, err error) (events.APIGatewayProxyResponse, error) {
	log.Printf("ERROR: %s: %v", message, err)
	return plainResponse(500, "Internal Server Error"), nil
}

// plainResponse returns a text response
func plainResponse(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "text/plain"},
	}
}

// jsonResponse returns an interaction response as JSON
func jsonResponse(response *models.InteractionResponse) (events.APIGatewayProxyResponse, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return internalError("Failed to marshal response", err)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Body:       string(data),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}, nil
}

func main() {
	lambda.Start(Handler)
}
