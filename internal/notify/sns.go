package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// snsPublisher is the part of *sns.Client the gateway uses.
type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSGateway sends the SMS directly through Amazon SNS.
type SNSGateway struct {
	client      snsPublisher
	countryCode string
	senderID    string
}

// NewSNSGateway loads credentials and region from the default AWS chain.
func NewSNSGateway(ctx context.Context, cfg Config) (*SNSGateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SNSGateway{client: sns.NewFromConfig(awsCfg), countryCode: cfg.CountryCode, senderID: cfg.SenderID}, nil
}

func (g *SNSGateway) Send(ctx context.Context, msg Message) error {
	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
	}
	if g.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(g.senderID)}
	}
	_, err := g.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(E164(msg.MobileNumber, g.countryCode)),
		Message:           aws.String(msg.Text()),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
