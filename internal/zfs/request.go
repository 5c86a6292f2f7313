package zfs

import (
	"slices"
	"strconv"
	"strings"
)

// Family selects the command family a query is issued against.
type Family int

const (
	FamilyDataset Family = iota
	FamilyPool
)

// Bin returns the default executable name for the family.
func (f Family) Bin() string {
	if f == FamilyPool {
		return "zpool"
	}
	return "zfs"
}

// Noun is the word used for an entity of this family in messages.
func (f Family) Noun() string {
	if f == FamilyPool {
		return "pool"
	}
	return "dataset"
}

func (f Family) String() string { return f.Bin() }

// PropertiesAll requests every property the tool knows about.
const PropertiesAll = "all"

// Dataset type filters accepted by `zfs get -t`.
const (
	TypeAll        = "all"
	TypeFilesystem = "filesystem"
	TypeVolume     = "volume"
	TypeSnapshot   = "snapshot"
	TypeBookmark   = "bookmark"
)

// SupportedTypes lists the valid dataset type filter values.
var SupportedTypes = []string{TypeAll, TypeFilesystem, TypeVolume, TypeSnapshot, TypeBookmark}

// DatasetRequest describes a `zfs get` query.
type DatasetRequest struct {
	Name       string
	Recurse    bool
	Parsable   bool
	Properties string
	Type       string // one of SupportedTypes; defaults to "all"
	Depth      int    // 0 means no bound
}

// WithDefaults fills in unset optional fields.
func (r DatasetRequest) WithDefaults() DatasetRequest {
	if r.Properties == "" {
		r.Properties = PropertiesAll
	}
	if r.Type == "" {
		r.Type = TypeAll
	}
	return r
}

// Validate rejects requests that must not reach the tool.
func (r DatasetRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &InvalidRequestError{Field: "name", Reason: "a dataset name is required"}
	}
	if err := validateProperties(r.Properties); err != nil {
		return err
	}
	if r.Depth < 0 {
		return &InvalidRequestError{Field: "depth", Value: strconv.Itoa(r.Depth), Reason: "must be non-negative"}
	}
	if r.Type != "" && !slices.Contains(SupportedTypes, r.Type) {
		return &InvalidRequestError{
			Field:  "type",
			Value:  r.Type,
			Reason: "must be one of " + strings.Join(SupportedTypes, ", "),
		}
	}
	return nil
}

// PoolRequest describes a `zpool get` query. An empty Name queries every
// imported pool.
type PoolRequest struct {
	Name       string
	Parsable   bool
	Properties string
}

// WithDefaults fills in unset optional fields.
func (r PoolRequest) WithDefaults() PoolRequest {
	if r.Properties == "" {
		r.Properties = PropertiesAll
	}
	return r
}

// Validate rejects requests that must not reach the tool.
func (r PoolRequest) Validate() error {
	return validateProperties(r.Properties)
}

func validateProperties(props string) error {
	if strings.TrimSpace(props) == "" {
		return &InvalidRequestError{Field: "properties", Reason: "must not be empty"}
	}
	if strings.ContainsAny(props, " \t\n") {
		return &InvalidRequestError{Field: "properties", Value: props, Reason: "must be a comma-separated list without whitespace"}
	}
	return nil
}
