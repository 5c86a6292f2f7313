package zfs

import "context"

type call struct {
	Bin  string
	Args []string
}

// fakeRunner answers invocations by their first argument ("list", "get").
type fakeRunner struct {
	calls     []call
	responses map[string]Result
	err       error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]Result{}}
}

func (f *fakeRunner) on(verb string, res Result) *fakeRunner {
	f.responses[verb] = res
	return f
}

func (f *fakeRunner) Run(_ context.Context, bin string, args ...string) (Result, error) {
	f.calls = append(f.calls, call{Bin: bin, Args: args})
	if f.err != nil {
		return Result{ExitCode: -1}, f.err
	}
	if len(args) == 0 {
		return Result{ExitCode: 2, Stderr: "missing command"}, nil
	}
	return f.responses[args[0]], nil
}

func (f *fakeRunner) verbs() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.Bin+" "+c.Args[0])
	}
	return out
}
