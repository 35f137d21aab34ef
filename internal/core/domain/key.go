package domain

import "time"

// AcceptanceKey is a one-time registration key issued out-of-band by an admin.
// A key flips Used exactly once, atomically with the registration that redeems it.
type AcceptanceKey struct {
	ID        string    `json:"id"`
	Value     string    `json:"key_value"`
	Used      bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

// RedeemedKey augments a key with the member who redeemed it, if any.
// Unredeemed keys carry empty redeemer fields (left-join semantics).
type RedeemedKey struct {
	AcceptanceKey
	UsedByUsername string `json:"used_by_username,omitempty"`
	UsedByEmail    string `json:"used_by_email,omitempty"`
	UsedByMobile   string `json:"used_by_mobile,omitempty"`
}
