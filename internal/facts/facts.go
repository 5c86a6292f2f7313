package facts

import (
	"context"
	"errors"

	"github.com/sigreer/zfsfacts/internal/zfs"
)

// DefaultPrefix namespaces the facts keys, giving ansible_zfs_datasets and
// ansible_zfs_pools.
const DefaultPrefix = "ansible_zfs"

// Response is the success document handed back to the orchestrator.
type Response struct {
	Changed  bool                     `json:"changed" yaml:"changed"`
	Name     string                   `json:"name" yaml:"name"`
	Parsable bool                     `json:"parsable,omitempty" yaml:"parsable,omitempty"`
	Recurse  bool                     `json:"recurse,omitempty" yaml:"recurse,omitempty"`
	Facts    map[string]zfs.RecordSet `json:"facts" yaml:"facts"`
}

// Failure is the error document. It is always fatal for the invocation.
type Failure struct {
	Failed   bool   `json:"failed" yaml:"failed"`
	Message  string `json:"message" yaml:"message"`
	Stderr   string `json:"stderr,omitempty" yaml:"stderr,omitempty"`
	ExitCode int    `json:"exit_code,omitempty" yaml:"exit_code,omitempty"`
}

func (f *Failure) Error() string { return f.Message }

// NewFailure converts any pipeline error into a Failure.
func NewFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	fail := &Failure{Failed: true, Message: err.Error()}
	var tErr *zfs.ToolError
	if errors.As(err, &tErr) {
		fail.Stderr = tErr.Stderr
		fail.ExitCode = tErr.ExitCode
	}
	return fail
}

// Assembler runs the existence check and fetch for a request and shapes the
// outcome.
type Assembler struct {
	Client *zfs.Client
	Prefix string
}

// NewAssembler returns an Assembler; an empty prefix means DefaultPrefix.
func NewAssembler(client *zfs.Client, prefix string) *Assembler {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Assembler{Client: client, Prefix: prefix}
}

// DatasetsKey is the facts key used for dataset results.
func (a *Assembler) DatasetsKey() string { return a.Prefix + "_datasets" }

// PoolsKey is the facts key used for pool results.
func (a *Assembler) PoolsKey() string { return a.Prefix + "_pools" }

// Datasets answers a dataset query. The dataset must exist; if it does not
// the fetch is never attempted.
func (a *Assembler) Datasets(ctx context.Context, req zfs.DatasetRequest) (*Response, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ok, err := a.Client.DatasetExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &zfs.NotFoundError{Family: zfs.FamilyDataset, Name: req.Name}
	}

	set, err := a.Client.FetchDatasets(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Response{
		Name:     req.Name,
		Parsable: req.Parsable,
		Recurse:  req.Recurse,
		Facts:    map[string]zfs.RecordSet{a.DatasetsKey(): set},
	}, nil
}

// Pools answers a pool query. The existence check only runs when a pool is
// named; a pool-wide query goes straight to the fetch.
func (a *Assembler) Pools(ctx context.Context, req zfs.PoolRequest) (*Response, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Name != "" {
		ok, err := a.Client.PoolExists(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &zfs.NotFoundError{Family: zfs.FamilyPool, Name: req.Name}
		}
	}

	set, err := a.Client.FetchPools(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Response{
		Name:     req.Name,
		Parsable: req.Parsable,
		Facts:    map[string]zfs.RecordSet{a.PoolsKey(): set},
	}, nil
}
