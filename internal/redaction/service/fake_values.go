package service

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// fakeValues maps an upper-cased entity type to the pool of stand-in values used by
// the fake strategy.
var fakeValues = map[string][]string{
	"PERSON": {
		"Alice Johnson", "Bob Smith", "Carol Davis", "David Wilson", "Emma Brown", "Frank Miller",
	},
	"EMAIL_ADDRESS": {
		"user1@example.com", "user2@example.com", "user3@example.com", "user4@example.com",
	},
	"PHONE_NUMBER": {"555-0101", "555-0102", "555-0103", "555-0104"},
	"CREDIT_CARD":  {"4111-1111-1111-1111", "4222-2222-2222-2222", "4333-3333-3333-3333"},
	"US_SSN":       {"123-45-6789"},
	"IP_ADDRESS":   {"192.168.1.1"},
	"LOCATION": {
		"New York, NY", "Los Angeles, CA", "Chicago, IL", "Houston, TX", "Phoenix, AZ",
	},
	"DATE_TIME": {"2023-01-01"},
	"URL":       {"https://example.com"},
}

// pickFake selects a pool value from the BLAKE3 digest of the entity type and covered
// text, so the same entity is always replaced by the same value. ok is false for types
// without a pool.
func pickFake(entityType, covered string) (value string, ok bool) {
	pool := fakeValues[entityType]
	if len(pool) == 0 {
		return "", false
	}

	hasher := blake3.New()
	_, _ = hasher.Write([]byte(entityType))
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.Write([]byte(covered))
	digest := hasher.Sum(nil)

	return pool[binary.BigEndian.Uint64(digest[:8])%uint64(len(pool))], true
}
