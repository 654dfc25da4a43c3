package application

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"github.com/felixgeelhaar/weekplan/pkg/storage"
)

// AuditService records and inspects the hash-chained action log.
type AuditService struct {
	log *storage.EventLog
}

// Compile-time check that AuditService implements AuditLogger.
var _ domain.AuditLogger = (*AuditService)(nil)

// NewAuditService creates the audit service over an event log.
func NewAuditService(log *storage.EventLog) *AuditService {
	return &AuditService{log: log}
}

// Log records one action in the chain.
func (s *AuditService) Log(action string, actor string, metadata map[string]interface{}) error {
	event := domain.Event{
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
	}
	return s.log.Append(&event)
}

// Timeline returns all recorded events in append order.
func (s *AuditService) Timeline() ([]domain.Event, error) {
	return s.log.Events()
}

// VerifyIntegrity walks the chain and returns a description of the
// first break, or nil when the log is intact.
func (s *AuditService) VerifyIntegrity() error {
	if err := s.log.Verify(); err != nil {
		return fmt.Errorf("audit log integrity check failed: %w", err)
	}
	return nil
}
