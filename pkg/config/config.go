package config

import (
	"github.com/kelseyhightower/envconfig"

	servertls "github.com/techmaintain/parts-service/pkg/tls"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LocalMode bool   `envconfig:"LOCAL_MODE" default:"true"` // in-memory stores, no AWS

	AWSRegion        string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	DynamoEndpoint   string `envconfig:"DYNAMO_ENDPOINT" default:""`
	PartTableName    string `envconfig:"PART_TABLE_NAME" default:"parts-table"`
	RequestTableName string `envconfig:"REQUEST_TABLE_NAME" default:"part-requests-table"`

	KafkaBrokers        string `envconfig:"KAFKA_BROKERS" default:""`
	NotificationTopic   string `envconfig:"NOTIFICATION_TOPIC" default:"part-request-events"`
	NotificationGroupID string `envconfig:"NOTIFICATION_GROUP_ID" default:"parts-service-notifier"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:""`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	MailFrom     string `envconfig:"MAIL_FROM" default:"TechMaintain <noreply@techmaintain.com>"`

	JWTSecret     string `envconfig:"JWT_SECRET" default:"dev-secret"`
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin"`
	ResetURL      string `envconfig:"RESET_URL" default:"http://localhost:3000/reset-password"`

	TLS servertls.Config
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
