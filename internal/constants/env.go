// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvServerPort is the environment variable for the API listen port
	EnvServerPort = "DISPATCH_PORT"

	// EnvNotifyWebhookURL is the environment variable for the outbound
	// notification webhook endpoint; empty means notifications are logged only
	EnvNotifyWebhookURL = "DISPATCH_NOTIFY_WEBHOOK_URL"

	// EnvServerAddress is the environment variable for the CLI's target API server
	EnvServerAddress = "DISPATCH_SERVER_ADDRESS"
)
