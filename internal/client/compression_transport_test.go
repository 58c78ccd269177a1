package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

func roundTrip(t *testing.T, handler http.HandlerFunc) *http.Response {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := &http.Client{Transport: newCompressionTransport(nil)}
	resp, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(data)
}

func TestCompressionTransport_AdvertisesEncodings(t *testing.T) {
	var gotHeader string
	resp := roundTrip(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Accept-Encoding")
		_, _ = w.Write([]byte("plain"))
	})
	defer resp.Body.Close()

	if gotHeader != "gzip, br, zstd" {
		t.Errorf("Accept-Encoding = %q", gotHeader)
	}
	if body := readBody(t, resp); body != "plain" {
		t.Errorf("body = %q", body)
	}
}

func TestCompressionTransport_Gzip(t *testing.T) {
	resp := roundTrip(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte("gzipped payload"))
		_ = gz.Close()
	})

	if body := readBody(t, resp); body != "gzipped payload" {
		t.Errorf("body = %q", body)
	}
	if resp.Header.Get("Content-Encoding") != "" {
		t.Error("Content-Encoding should be removed after decoding")
	}
	if resp.ContentLength != -1 {
		t.Errorf("ContentLength = %d, want -1", resp.ContentLength)
	}
}

func TestCompressionTransport_Brotli(t *testing.T) {
	resp := roundTrip(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		br := brotli.NewWriter(w)
		_, _ = br.Write([]byte("brotli payload"))
		_ = br.Close()
	})

	if body := readBody(t, resp); body != "brotli payload" {
		t.Errorf("body = %q", body)
	}
}

func TestCompressionTransport_Zstd(t *testing.T) {
	resp := roundTrip(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "zstd")
		zw, err := zstd.NewWriter(w)
		if err != nil {
			t.Errorf("zstd writer: %v", err)
			return
		}
		_, _ = zw.Write([]byte("zstd payload"))
		_ = zw.Close()
	})

	if body := readBody(t, resp); body != "zstd payload" {
		t.Errorf("body = %q", body)
	}
}

func TestCompressionTransport_UnknownEncodingPassesThrough(t *testing.T) {
	resp := roundTrip(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "identity")
		_, _ = w.Write([]byte("as-is"))
	})

	if body := readBody(t, resp); body != "as-is" {
		t.Errorf("body = %q", body)
	}
	if resp.Header.Get("Content-Encoding") != "identity" {
		t.Error("unknown encodings should be left untouched")
	}
}
