package domain

// DocStatus represents the lifecycle state of an ERP document.
type DocStatus int

const (
	DocStatusDraft DocStatus = iota
	DocStatusSubmitted
	DocStatusCancelled
)

func (s DocStatus) String() string {
	switch s {
	case DocStatusDraft:
		return "Draft"
	case DocStatusSubmitted:
		return "Submitted"
	case DocStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// IsValid checks if the document status is valid
func (s DocStatus) IsValid() bool {
	switch s {
	case DocStatusDraft, DocStatusSubmitted, DocStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid. Submission locks a
// draft; cancellation is the only undo path for a submitted document.
func (s DocStatus) CanTransitionTo(newStatus DocStatus) bool {
	switch s {
	case DocStatusDraft:
		return newStatus == DocStatusSubmitted || newStatus == DocStatusCancelled
	case DocStatusSubmitted:
		return newStatus == DocStatusCancelled
	case DocStatusCancelled:
		return false // Terminal state
	default:
		return false
	}
}

// AddressType distinguishes billing from shipping addresses.
type AddressType string

const (
	AddressTypeBilling  AddressType = "Billing"
	AddressTypeShipping AddressType = "Shipping"
)
