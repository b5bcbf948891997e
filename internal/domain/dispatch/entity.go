// internal/domain/dispatch/entity.go
package dispatch

import (
	"fmt"

	"artisan-catalog-service/internal/domain/catalog"
	"artisan-catalog-service/internal/domain/customer"
)

type SelectionMode string

const (
	SelectAll    SelectionMode = "all"
	SelectByTags SelectionMode = "tags"
	SelectByIDs  SelectionMode = "ids"
)

// AudienceSelection picks the target audience for a dispatch. Exactly
// one variant is active, determined by Mode.
type AudienceSelection struct {
	Mode        SelectionMode `json:"mode" binding:"required"`
	Tags        []string      `json:"tags,omitempty"`
	CustomerIDs []string      `json:"customer_ids,omitempty"`
}

// Validate checks the selection shape. Emptiness of the resolved
// audience is the resolver's concern, not Validate's.
func (s AudienceSelection) Validate() error {
	switch s.Mode {
	case SelectAll:
		if len(s.Tags) > 0 || len(s.CustomerIDs) > 0 {
			return fmt.Errorf("selection mode %q does not take tags or customer ids", s.Mode)
		}
	case SelectByTags:
		if len(s.CustomerIDs) > 0 {
			return fmt.Errorf("selection mode %q does not take customer ids", s.Mode)
		}
	case SelectByIDs:
		if len(s.Tags) > 0 {
			return fmt.Errorf("selection mode %q does not take tags", s.Mode)
		}
	default:
		return fmt.Errorf("unknown selection mode %q", s.Mode)
	}
	return nil
}

type OutcomeStatus string

const (
	StatusSent   OutcomeStatus = "sent"
	StatusFailed OutcomeStatus = "failed"
)

// Job is one bulk-send operation: one catalog, one resolved audience.
// Recipients are already deduplicated by id. Jobs are built per call
// and discarded once the summary is produced.
type Job struct {
	Catalog         catalog.Reference
	Recipients      []customer.Customer
	MessageTemplate string
	DefaultTemplate string
}

// Outcome is the terminal per-recipient result of a dispatch.
type Outcome struct {
	CustomerID   string        `json:"customer_id"`
	CustomerName string        `json:"customer_name"`
	Phone        string        `json:"phone"`
	Status       OutcomeStatus `json:"status"`
	Error        string        `json:"error,omitempty"`
	TransportRef string        `json:"transport_ref,omitempty"`
}

// Summary aggregates dispatch outcomes. Outcomes preserve the job's
// recipient order, so Sent+Failed == Total == len(Outcomes) always
// holds, even under total failure.
type Summary struct {
	Total    int       `json:"total"`
	Sent     int       `json:"sent"`
	Failed   int       `json:"failed"`
	Outcomes []Outcome `json:"outcomes"`
}
