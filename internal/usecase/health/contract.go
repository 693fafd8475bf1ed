package health

import "context"

// DBPinger checks search database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks an OpenAI-compatible provider's availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
