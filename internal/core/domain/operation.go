package domain

import "time"

// OperationKind identifies a user-initiated ledger operation.
type OperationKind string

const (
	OperationSend    OperationKind = "send"
	OperationConvert OperationKind = "convert"
	OperationTopup   OperationKind = "topup"
)

// Valid reports whether k is a known operation kind.
func (k OperationKind) Valid() bool {
	switch k {
	case OperationSend, OperationConvert, OperationTopup:
		return true
	}
	return false
}

// OperationState is a step of the operation lifecycle:
// Idle -> Validating -> (Rejected | Authorizing -> Committing -> Committed).
type OperationState string

const (
	OperationIdle        OperationState = "idle"
	OperationValidating  OperationState = "validating"
	OperationAuthorizing OperationState = "authorizing"
	OperationCommitting  OperationState = "committing"
	OperationCommitted   OperationState = "committed"
	OperationRejected    OperationState = "rejected"
)

// InFlight reports whether an operation in state s still holds the ledger.
func (s OperationState) InFlight() bool {
	return s == OperationValidating || s == OperationAuthorizing || s == OperationCommitting
}

// OperationStatus is a snapshot of the most recent operation.
type OperationStatus struct {
	State         OperationState `json:"state"`
	Kind          OperationKind  `json:"kind,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	ErrorCode     string         `json:"error_code,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Commit is delivered to listeners once an operation has been applied.
type Commit struct {
	Transaction Transaction `json:"transaction"`
	Wallets     Wallets     `json:"wallets"`
}

// DefaultTransferPurpose is used when a transfer names no purpose.
const DefaultTransferPurpose = "Tuition"

// TransferPurposes are the purposes offered for outgoing transfers.
var TransferPurposes = []string{"Tuition", "Family", "Travel", "Business", "Remittance"}

// Recipient is the external beneficiary of a send operation.
type Recipient struct {
	Name          string `json:"name"`
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number,omitempty"`
	Purpose       string `json:"purpose,omitempty"`
}
