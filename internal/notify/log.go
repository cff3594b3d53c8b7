package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogGateway only logs the message. It is the default for local runs.
type LogGateway struct {
	logger *zap.SugaredLogger
}

func NewLogGateway(logger *zap.SugaredLogger) *LogGateway {
	return &LogGateway{logger: logger}
}

func (g *LogGateway) Send(ctx context.Context, msg Message) error {
	g.logger.Infow("sms", "mobile_number", msg.MobileNumber, "text", msg.Text())
	return nil
}
