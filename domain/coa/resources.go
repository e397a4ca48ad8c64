package coa

import "strings"

// ResourceRecord is one unit in the available-resource pool.
// Quality proxies are pointers; nil means the proxy was not reported.
type ResourceRecord struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Level    string   `json:"level"` // hierarchy level, e.g. "battalion"
	Aliases  []string `json:"aliases,omitempty"`

	Capability *float64 `json:"capability,omitempty"` // [0,1]
	Morale     *float64 `json:"morale,omitempty"`     // [0,1]
}

// SearchText concatenates the fields similarity matchers look at
func (r ResourceRecord) SearchText() string {
	parts := []string{r.ID, r.Category, r.Level}
	parts = append(parts, r.Aliases...)
	return strings.ToLower(strings.Join(parts, " "))
}
