package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/techmaintain/parts-service/internal/events"
)

// Notification is a rendered message ready for delivery.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// Gateway delivers a notification. Implementations are best-effort; callers
// log failures and never propagate them to the operation that triggered the
// notification.
type Gateway interface {
	Send(ctx context.Context, n Notification) error
}

// RequestNotifier renders request-created events and hands them to the
// gateway. It sits behind the Kafka consumer or, without a broker, behind
// GatewayPublisher.
type RequestNotifier struct {
	gateway Gateway
	logger  *zap.Logger
}

func NewRequestNotifier(gateway Gateway, logger *zap.Logger) *RequestNotifier {
	return &RequestNotifier{
		gateway: gateway,
		logger:  logger,
	}
}

func (n *RequestNotifier) NotifyRequestCreated(ctx context.Context, event events.RequestCreatedEvent) error {
	notification := BuildRequestCreated(event)

	if err := n.gateway.Send(ctx, notification); err != nil {
		return err
	}

	n.logger.Info("Notification sent",
		zap.String("request_id", event.RequestID),
		zap.String("recipient", notification.Recipient))
	return nil
}

// GatewayPublisher satisfies the service's publisher contract without a
// broker: events go straight through the notifier. Delivery failures are
// logged here and never surface.
type GatewayPublisher struct {
	notifier *RequestNotifier
	logger   *zap.Logger
}

func NewGatewayPublisher(notifier *RequestNotifier, logger *zap.Logger) *GatewayPublisher {
	return &GatewayPublisher{
		notifier: notifier,
		logger:   logger,
	}
}

func (p *GatewayPublisher) PublishRequestCreated(event events.RequestCreatedEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
	defer cancel()

	if err := p.notifier.NotifyRequestCreated(ctx, event); err != nil {
		p.logger.Error("Failed to deliver notification",
			zap.String("request_id", event.RequestID),
			zap.String("recipient", event.ResponsibleEmail),
			zap.Error(err))
		return err
	}
	return nil
}

// LogGateway logs notifications instead of delivering them. Used in local
// mode when no SMTP host is configured.
type LogGateway struct {
	logger *zap.Logger
}

func NewLogGateway(logger *zap.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

func (g *LogGateway) Send(_ context.Context, n Notification) error {
	g.logger.Info("Notification (log only)",
		zap.String("recipient", n.Recipient),
		zap.String("subject", n.Subject))
	return nil
}
