package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sigreer/zfsfacts/internal/zfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliRunner struct {
	list  zfs.Result
	get   zfs.Result
	calls [][]string
}

func (c *cliRunner) Run(_ context.Context, bin string, args ...string) (zfs.Result, error) {
	c.calls = append(c.calls, append([]string{bin}, args...))
	if args[0] == "list" {
		return c.list, nil
	}
	return c.get, nil
}

// withFakes swaps the process runner and filesystem for the duration of t.
func withFakes(t *testing.T, r *cliRunner) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	origFs, origRunner, origEnv := newFs, newRunner, environ
	newFs = func() afero.Fs { return fs }
	newRunner = func() zfs.Runner { return r }
	environ = func() []string { return nil }
	t.Cleanup(func() {
		newFs, newRunner, environ = origFs, origRunner, origEnv
	})
	return fs
}

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDatasetCommand(t *testing.T) {
	r := &cliRunner{get: zfs.Result{Stdout: "rpool/home\tused\t10G\nrpool/home\tavail\t5G\nrpool/export\tused\t2G\n"}}
	withFakes(t, r)

	out, _, err := execute("dataset", "rpool", "-r", "-p", "--properties", "used,avail")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, false, got["changed"])
	assert.Equal(t, true, got["recurse"])
	assert.Equal(t, true, got["parsable"])

	require.Len(t, r.calls, 2)
	assert.Equal(t, []string{"zfs", "get", "-H", "-p", "-r", "-t", "all",
		"-o", "name,property,value", "used,avail", "rpool"}, r.calls[1])
}

func TestDatasetCommandNotFound(t *testing.T) {
	r := &cliRunner{list: zfs.Result{ExitCode: 1}}
	withFakes(t, r)

	out, stderr, err := execute("dataset", "nope")
	require.ErrorIs(t, err, errQueryFailed)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["failed"])
	assert.Equal(t, "ZFS dataset nope does not exist!", got["message"])
	assert.Contains(t, stderr, "does not exist")
	assert.Len(t, r.calls, 1)
}

func TestDatasetCommandInvalidType(t *testing.T) {
	r := &cliRunner{}
	withFakes(t, r)

	_, _, err := execute("dataset", "tank", "--type", "pool")
	require.ErrorIs(t, err, errQueryFailed)
	assert.Empty(t, r.calls)
}

func TestPoolCommandAllPools(t *testing.T) {
	r := &cliRunner{get: zfs.Result{Stdout: "rpool\tsize\t100G\ntank\tsize\t4T\n"}}
	withFakes(t, r)

	out, _, err := execute("pool", "-o", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "ansible_zfs_pools:")
	assert.Contains(t, out, "name: tank")
	require.Len(t, r.calls, 1)
	assert.Equal(t, "get", r.calls[0][1])
}

func TestPoolCommandToolFailure(t *testing.T) {
	r := &cliRunner{get: zfs.Result{ExitCode: 2, Stderr: "bad property list: invalid property 'bogus'\n"}}
	withFakes(t, r)

	out, _, err := execute("pool", "--properties", "bogus")
	require.ErrorIs(t, err, errQueryFailed)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(2), got["exit_code"])
	assert.Contains(t, got["stderr"], "invalid property")
}

func TestConfigPrefixAndBinaries(t *testing.T) {
	r := &cliRunner{get: zfs.Result{Stdout: "tank\tsize\t4T\n"}}
	fs := withFakes(t, r)
	require.NoError(t, afero.WriteFile(fs, "/etc/zfsfacts/config.yaml",
		[]byte("zpool_path: /sbin/zpool\nfacts_prefix: site_zfs\n"), 0o644))

	out, _, err := execute("pool", "tank")
	require.NoError(t, err)

	assert.Contains(t, out, `"site_zfs_pools"`)
	assert.Equal(t, "/sbin/zpool", r.calls[0][0])
}

func TestModuleCommand(t *testing.T) {
	r := &cliRunner{}
	fs := withFakes(t, r)
	require.NoError(t, afero.WriteFile(fs, "/tmp/args.json",
		[]byte(`{"ds": "tank", "type": "snapshot", "_ansible_check_mode": true}`), 0o644))

	out, _, err := execute("module", "zfs", "/tmp/args.json", "-o", "table")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, false, got["changed"])
	assert.Equal(t, "tank", got["name"])
	facts := got["facts"].(map[string]any)
	assert.Equal(t, []any{}, facts["ansible_zfs_datasets"])
}

func TestModuleCommandBadArgs(t *testing.T) {
	r := &cliRunner{}
	fs := withFakes(t, r)
	require.NoError(t, afero.WriteFile(fs, "/tmp/args.json", []byte(`{"pool": "a", "zpool": "b"}`), 0o644))

	out, _, err := execute("module", "zpool", "/tmp/args.json")
	require.ErrorIs(t, err, errQueryFailed)
	assert.Contains(t, out, `"failed": true`)

	_, _, err = execute("module", "zpool", "/tmp/missing.json")
	require.ErrorIs(t, err, errQueryFailed)

	_, _, err = execute("module", "btrfs", "/tmp/args.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errQueryFailed)
	assert.Empty(t, r.calls)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "zfsfacts ")
}

func TestUnknownOutputFormat(t *testing.T) {
	withFakes(t, &cliRunner{})

	_, _, err := execute("pool", "-o", "xml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errQueryFailed)
}

func TestDebugFromInjectedEnvironment(t *testing.T) {
	withFakes(t, &cliRunner{get: zfs.Result{Stdout: "tank\tsize\t4T\n"}})
	environ = func() []string { return []string{"DEBUG=1"} }

	_, stderr, err := execute("pool")
	require.NoError(t, err)
	assert.Contains(t, stderr, "starting")
	assert.Contains(t, stderr, "running")
}
