// Package models holds the normalized domain types every remote adapter must
// produce, regardless of the upstream wire format's quirks.
package models

// GrammarIssue is one normalized grammar finding. Offsets are 0-based runes
// into the submitted text.
type GrammarIssue struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Suggestions []string `json:"suggestions"`
}

// Correction is one normalized spelling correction. The upstream tuple format
// carries no offsets, so Start and End default to zero.
type Correction struct {
	Token       string   `json:"token"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Suggestions []string `json:"suggestions"`
}
