// Package constants defines shared constant values used across the application.
package constants

// Database table names.
const (
	TableUsers               = "users"
	TableSubscriptionBundles = "subscription_bundles"
	TableUserMonthlyUsage    = "user_monthly_usage"
	TableChatMessages        = "chat_messages"
)

// Context keys set by middleware.
const (
	ContextKeyRequestID = "request_id"
)
