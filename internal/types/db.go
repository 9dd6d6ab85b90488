package types

import (
	"fmt"
	"sort"
	"strings"
)

// LockScope represents the scope of a store-level lock.
type LockScope string

const (
	// LockScopeInvoice serializes payment mutations per invoice.
	LockScopeInvoice LockScope = "invoice"
	// LockScopeForecast serializes the notification guard per forecast key.
	LockScopeForecast LockScope = "forecast"
	// LockScopeInvoiceSequence serializes invoice-number allocation per period.
	LockScopeInvoiceSequence LockScope = "invoice_sequence"
)

// GenerateLockKey builds a deterministic lock key from a scope and
// parameters. Params are sorted so equivalent maps yield the same key.
// The key is an opaque string a SQL store can feed to hashtext() for
// advisory locking; the in-memory store uses it verbatim.
func GenerateLockKey(scope LockScope, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(scope))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(":%s=%v", k, params[k]))
	}
	return b.String()
}
