package tracker

// Status is the lifecycle state of a transmission record. Transitions
// only move forward; there is no path back to PENDING.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusApproved    Status = "APPROVED"
	StatusTransmitted Status = "TRANSMITTED"
	StatusFailed      Status = "FAILED"
	StatusLogged      Status = "LOGGED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusTransmitted, StatusFailed, StatusLogged:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Audit trail actions.
const (
	ActionCreated          = "CREATED"
	ActionDataHashed       = "DATA_HASHED"
	ActionEncrypted        = "ENCRYPTED"
	ActionValidationPassed = "VALIDATION_PASSED"
	ActionValidationFailed = "VALIDATION_FAILED"
	ActionTransmitted      = "TRANSMITTED"
	ActionFailed           = "FAILED"
	ActionLogged           = "LOGGED"
)
