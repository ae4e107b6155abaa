package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Invoker is the part of the Lambda API the client needs.
type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaClient sends lookups straight to the lookup lambda, for callers
// that have AWS credentials but no NATS connection.
type LambdaClient struct {
	invoker  Invoker
	function string
}

// NewLambdaClient uses the default AWS credential chain.
func NewLambdaClient(ctx context.Context, function string) (*LambdaClient, error) {
	if function == "" {
		return nil, errors.New("no lambda function given")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewLambdaClientWithInvoker(lambda.NewFromConfig(cfg), function), nil
}

func NewLambdaClientWithInvoker(invoker Invoker, function string) *LambdaClient {
	return &LambdaClient{invoker: invoker, function: function}
}

func (c *LambdaClient) Request(ctx context.Context, req *Request) (*Response, error) {
	evt := LambdaEvent{Request: *req, RequestID: randomID()}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	out, err := c.invoker.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(c.function),
		Payload:      payload,
	})
	if err != nil {
		return nil, err
	}
	if out.FunctionError != nil {
		return nil, fmt.Errorf("lambda %s failed (%s): %s", c.function,
			aws.ToString(out.FunctionError), string(out.Payload))
	}
	log.Debug().Str("requestID", evt.RequestID).Msgf("res: %v", string(out.Payload))

	resp := &Response{}
	if err := json.Unmarshal(out.Payload, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New("lookup service returned: " + resp.Error)
	}
	return resp, nil
}

func randomID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	return lo.RandomString(12, []rune(chars))
}
