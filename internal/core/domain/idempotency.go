package domain

import "strings"

// BuildIdempotencyKey scopes a client-supplied key to the operation kind so the
// same key reused for a different operation never returns the wrong transaction.
func BuildIdempotencyKey(kind OperationKind, clientKey string) string {
	return string(kind) + ":" + strings.TrimSpace(clientKey)
}
