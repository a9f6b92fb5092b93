package lambdafn

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/usecase"
)

var responseHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// Handler is the Lambda entrypoint for toxicity classification
type Handler struct {
	uc  usecase.ToxicityUsecase
	log *zap.Logger
}

// NewHandler creates a new Lambda handler
func NewHandler(uc usecase.ToxicityUsecase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, log: log}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Handle processes one invocation. It accepts either an API Gateway
// style envelope with a serialized JSON body or a bare request object.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	var envelope struct {
		Body *string `json:"body"`
	}
	if err := json.Unmarshal(event, &envelope); err != nil {
		h.log.Error("Failed to parse event", zap.Error(err))
		return serverError(err), nil
	}

	payload := []byte(event)
	if envelope.Body != nil {
		payload = []byte(*envelope.Body)
	}

	var req struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		h.log.Error("Failed to parse request body", zap.Error(err))
		return serverError(err), nil
	}

	if req.Text == nil {
		return respond(http.StatusBadRequest, errorBody{
			Error: "Missing required field: text",
		}), nil
	}

	result, err := h.uc.Analyze(ctx, *req.Text)
	if err != nil {
		h.log.Error("Classification failed", zap.Error(err))
		return serverError(err), nil
	}

	return respond(http.StatusOK, result), nil
}

func serverError(err error) events.APIGatewayProxyResponse {
	return respond(http.StatusInternalServerError, errorBody{
		Error:   err.Error(),
		Message: "Internal server error",
	})
}

func respond(status int, body interface{}) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		// Marshal failure on our own types; keep the contract anyway.
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response","message":"Internal server error"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders,
		Body:       string(data),
	}
}
