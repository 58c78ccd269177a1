package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// decoderFunc wraps a compressed response body with a decompressing reader.
type decoderFunc func(io.ReadCloser) (io.ReadCloser, error)

var decoders = map[string]decoderFunc{
	"gzip": func(body io.ReadCloser) (io.ReadCloser, error) {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		return gz, nil
	},
	"br": func(body io.ReadCloser) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(body)), nil
	},
	"zstd": func(body io.ReadCloser) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport advertises gzip/br/zstd support upstream and
// transparently decodes the response body.
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &compressionTransport{next: next}
}

// RoundTrip implements http.RoundTripper. The request is cloned before
// modification, per the RoundTripper contract.
func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Nothing to decode for bodyless responses (HEAD, 204, 304).
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decode, ok := decoders[firstEncoding(resp.Header.Get("Content-Encoding"))]
	if !ok {
		// Identity or an encoding we did not ask for.
		return resp, nil
	}

	decoded, err := decode(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = &decodedBody{reader: decoded, underlying: resp.Body}
	// The encoding and length headers no longer describe the body.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// firstEncoding returns the first token of a Content-Encoding list,
// lower-cased and trimmed.
func firstEncoding(header string) string {
	encoding, _, _ := strings.Cut(header, ",")
	return strings.ToLower(strings.TrimSpace(encoding))
}

// decodedBody closes both the decompressor and the underlying body.
type decodedBody struct {
	reader     io.ReadCloser
	underlying io.ReadCloser
}

func (b *decodedBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *decodedBody) Close() error {
	err := b.reader.Close()
	if cerr := b.underlying.Close(); err == nil {
		err = cerr
	}
	return err
}
