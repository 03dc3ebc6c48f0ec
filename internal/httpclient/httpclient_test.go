package httpclient

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
)

func TestDecodingTransport_brotli(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ae := r.Header.Get("Accept-Encoding"); ae != "gzip, br" {
			t.Errorf("Accept-Encoding = %q", ae)
		}
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		bw.Write([]byte(`{"user_info":{}}`))
		bw.Close()
	}))
	defer srv.Close()

	resp, err := Default().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"user_info":{}}` {
		t.Errorf("body = %q", body)
	}
}

func TestDecodingTransport_gzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(`[]`))
		gz.Close()
	}))
	defer srv.Close()

	resp, err := Default().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `[]` {
		t.Errorf("body = %q", body)
	}
}

func TestDecodingTransport_setsBrowserUA(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	resp, err := Default().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if gotUA != BrowserUA {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestHostSemaphore_caps(t *testing.T) {
	sem := NewHostSemaphore(2)
	var mu sync.Mutex
	active, peak := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := sem.Acquire("http://panel.example:8080/player_api.php")
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
	if peak > 2 {
		t.Errorf("peak concurrency %d exceeds limit 2", peak)
	}
}

func TestWithTimeout(t *testing.T) {
	c := WithTimeout(3 * time.Second)
	if c.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s", c.Timeout)
	}
	if c.Transport != Default().Transport {
		t.Error("WithTimeout should share the default transport")
	}
}
