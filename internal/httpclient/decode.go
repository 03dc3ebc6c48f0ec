package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
)

// decodingTransport advertises brotli alongside gzip and decodes whichever
// the panel picks. Setting Accept-Encoding by hand switches off net/http's
// automatic gzip handling, so both encodings are decoded here.
type decodingTransport struct {
	base http.RoundTripper
}

func wrap(base http.RoundTripper) http.RoundTripper {
	return &decodingTransport{base: base}
}

func (t *decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br")
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", BrowserUA)
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	switch resp.Header.Get("Content-Encoding") {
	case "br":
		resp.Body = &decodedBody{r: brotli.NewReader(resp.Body), c: resp.Body}
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		resp.Body = &decodedBody{r: gz, c: resp.Body}
	default:
		return resp, nil
	}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	return resp, nil
}

// decodedBody reads from the decompressor but closes the network body.
type decodedBody struct {
	r io.Reader
	c io.Closer
}

func (b *decodedBody) Read(p []byte) (int, error) { return b.r.Read(p) }
func (b *decodedBody) Close() error               { return b.c.Close() }
