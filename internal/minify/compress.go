package minify

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Compress executes a file request: it checks the input/output shape, creates
// every output directory, then runs the compressor once per output.
//
// List outputs are processed pair by pair, concurrently unless Sync is set,
// and the code of the last pair is returned. A single output receives the
// concatenation of all inputs.
func Compress(ctx context.Context, req *FileRequest) (string, error) {
	if req.Compressor == nil {
		return "", ErrCompressorNotFunction
	}

	if req.Output.List {
		if !req.Input.List {
			return "", ErrOutputArrayNeedsInputArray
		}
		if len(req.Input.Files) != len(req.Output.Files) {
			return "", &LengthMismatchError{Input: len(req.Input.Files), Output: len(req.Output.Files)}
		}
	} else if len(req.Output.Files) != 1 || req.Output.Files[0] == "" {
		return "", ErrOutputMandatory
	}

	for _, output := range req.Output.Files {
		if err := EnsureDir(filepath.Dir(output)); err != nil {
			return "", err
		}
	}

	if req.Output.List {
		return compressArray(ctx, req)
	}
	return compressSingle(ctx, req)
}

func compressSingle(ctx context.Context, req *FileRequest) (string, error) {
	if len(req.Input.Files) == 0 {
		return "", ErrNoInputFiles
	}

	content, err := ReadFiles(req.Input.Files...)
	if err != nil {
		return "", err
	}

	return run(ctx, req.Plan, content, NoIndex, req.Output.Files[0])
}

func compressArray(ctx context.Context, req *FileRequest) (string, error) {
	n := len(req.Output.Files)
	if n == 0 {
		return "", nil
	}

	for i, input := range req.Input.Files {
		if input == "" {
			return "", &InvalidPathError{Field: "input", Index: i, Got: typeName(input)}
		}
	}

	codes := make([]string, n)
	pair := func(ctx context.Context, i int) error {
		content, err := ReadFiles(req.Input.Files[i])
		if err != nil {
			return err
		}
		code, err := run(ctx, req.Plan, content, i, req.Output.Files[i])
		if err != nil {
			return err
		}
		codes[i] = code
		return nil
	}

	if req.Sync {
		for i := range n {
			if err := pair(ctx, i); err != nil {
				return "", err
			}
		}
		return codes[n-1], nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			return pair(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return codes[n-1], nil
}

// run invokes the compressor and writes what it returned to output.
func run(ctx context.Context, plan Plan, content []byte, index int, output string) (string, error) {
	res, err := plan.Compressor(ctx, Input{
		Settings: plan,
		Content:  content,
		Index:    index,
		Output:   output,
	})
	if err != nil {
		return "", err
	}
	if res == nil {
		res = &Result{}
	}

	if err := writeResult(res, plan.Options, output); err != nil {
		return "", err
	}

	return res.Code, nil
}

// writeResult writes Buffer, or Code when there is no buffer, to output.
// Outputs are left to the compressor that produced them.
func writeResult(res *Result, opts Options, output string) error {
	if output == "" {
		return nil
	}

	data := res.Buffer
	if data == nil {
		data = []byte(res.Code)
	}
	if err := WriteFile(output, data); err != nil {
		return err
	}

	if res.Map == "" {
		return nil
	}
	if mapPath := SourceMapPath(opts, output); mapPath != "" {
		return WriteFile(mapPath, []byte(res.Map))
	}
	return nil
}
