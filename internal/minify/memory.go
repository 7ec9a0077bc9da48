package minify

import "context"

// CompressInMemory runs the compressor over the request content and returns
// its code. Nothing is read from or written to disk.
func CompressInMemory(ctx context.Context, req *InMemoryRequest) (string, error) {
	if req.Compressor == nil {
		return "", ErrCompressorNotFunction
	}

	res, err := req.Compressor(ctx, Input{
		Settings: req.Plan,
		Content:  req.Content,
		Index:    NoIndex,
	})
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", nil
	}
	return res.Code, nil
}
