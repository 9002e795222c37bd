// Package health reports service liveness. The engine is never probed
// over the network; only client configuration is checked.
package health

// Status represents the reported service health.
type Status string

const (
	// OK indicates the service can serve article queries.
	OK Status = "ok"
	// Error indicates the engine client is missing configuration.
	Error Status = "error"
)

// Report is the health check outcome.
type Report struct {
	Status Status
}

// Service coordinates health checks.
type Service struct {
	engineConfigured bool
}

// New creates a Service.
func New(engineConfigured bool) *Service {
	return &Service{engineConfigured: engineConfigured}
}

// Check reports the current health.
func (s *Service) Check() Report {
	if !s.engineConfigured {
		return Report{Status: Error}
	}
	return Report{Status: OK}
}
