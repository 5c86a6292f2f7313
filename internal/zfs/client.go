package zfs

import (
	"context"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sigreer/zfsfacts/internal/logging"
)

// Client issues read-only queries against the zfs and zpool tools.
type Client struct {
	runner   Runner
	logger   *logging.Logger
	zfsBin   string
	zpoolBin string
}

// Option customises a Client.
type Option func(*Client)

// WithBinaries overrides the executables used for each family. Empty
// values keep the default.
func WithBinaries(zfsBin, zpoolBin string) Option {
	return func(c *Client) {
		if zfsBin != "" {
			c.zfsBin = zfsBin
		}
		if zpoolBin != "" {
			c.zpoolBin = zpoolBin
		}
	}
}

// New returns a Client. A nil runner means ExecRunner.
func New(runner Runner, logger *logging.Logger, opts ...Option) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Client{
		runner:   runner,
		logger:   logger.WithPrefix("zfs"),
		zfsBin:   FamilyDataset.Bin(),
		zpoolBin: FamilyPool.Bin(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) bin(f Family) string {
	if f == FamilyPool {
		return c.zpoolBin
	}
	return c.zfsBin
}

func (c *Client) run(ctx context.Context, f Family, args []string) (Result, error) {
	bin := c.bin(f)
	c.logger.Debug("running", "bin", bin, "args", strings.Join(args, " "))

	res, err := c.runner.Run(ctx, bin, args...)
	if err != nil {
		c.logger.Error("could not run tool", "bin", bin, "error", err)
		return res, err
	}

	c.logger.Debug("finished", "bin", bin, "exit_code", res.ExitCode,
		"stdout", humanize.Bytes(uint64(len(res.Stdout))))
	return res, nil
}

// Exists reports whether `<bin> list name` exits 0. Every non-zero status
// is treated as absence, so a permission or pool error also reads as
// "does not exist". Only a failure to start the tool is returned as an error.
func (c *Client) Exists(ctx context.Context, f Family, name string) (bool, error) {
	res, err := c.run(ctx, f, ListArgs(name))
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

// DatasetExists is Exists for the zfs family.
func (c *Client) DatasetExists(ctx context.Context, name string) (bool, error) {
	return c.Exists(ctx, FamilyDataset, name)
}

// PoolExists is Exists for the zpool family.
func (c *Client) PoolExists(ctx context.Context, name string) (bool, error) {
	return c.Exists(ctx, FamilyPool, name)
}

// FetchDatasets runs `zfs get` for req and folds the output into records.
func (c *Client) FetchDatasets(ctx context.Context, req DatasetRequest) (RecordSet, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, FamilyDataset, req.Name, DatasetArgs(req))
}

// FetchPools runs `zpool get` for req and folds the output into records.
func (c *Client) FetchPools(ctx context.Context, req PoolRequest) (RecordSet, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, FamilyPool, req.Name, PoolArgs(req))
}

func (c *Client) fetch(ctx context.Context, f Family, target string, args []string) (RecordSet, error) {
	res, err := c.run(ctx, f, args)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		c.logger.Warn("tool exited non-zero", "bin", c.bin(f), "exit_code", res.ExitCode,
			"stderr", strings.TrimSpace(res.Stderr))
		return nil, &ToolError{Family: f, Target: target, Stderr: res.Stderr, ExitCode: res.ExitCode}
	}

	records, err := ParseRecords(res.Stdout)
	if err != nil {
		c.logger.Error("unexpected output format", "bin", c.bin(f), "error", err)
		return nil, err
	}
	c.logger.Debug("parsed records", "bin", c.bin(f), "count", len(records))
	return records, nil
}
