package types

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_SUBSCRIPTION          = "subs"
	UUID_PREFIX_INVOICE               = "inv"
	UUID_PREFIX_INVOICE_LINE_ITEM     = "inv_line"
	UUID_PREFIX_PAYMENT               = "pay"
	UUID_PREFIX_TIME_RECORD           = "tr"
	UUID_PREFIX_COMPENSATION_FORECAST = "cf"
	UUID_PREFIX_EMPLOYEE              = "emp"
	UUID_PREFIX_REQUEST               = "req"
)

// GenerateUUID returns a lowercase ULID, sortable by creation time.
func GenerateUUID() string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String())
}

// GenerateUUIDWithPrefix returns a ULID with an entity-type prefix.
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}
