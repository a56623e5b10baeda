package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"skynow-api/pkg/resource"
)

// NewSqsClient creates a SQS client, pointed at app.cloud.aws-endpoint when set (LocalStack)
func NewSqsClient(cfg aws.Config) *sqs.Client {
	return sqs.NewFromConfig(cfg, func(options *sqs.Options) {
		if endpoint := resource.GetString("app.cloud.aws-endpoint"); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
}
