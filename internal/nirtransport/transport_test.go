package nirtransport

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHandler_PutThenGet(t *testing.T) {
	store := NewStore()
	srv := httptest.NewServer(NewHandler(store))
	defer srv.Close()

	body := []byte{0x01, 0x02, 0x03, 0x04}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/blobs/foo.nir", bytes.NewReader(body))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT status = %d, want 204", resp.StatusCode)
	}

	got, ok := store.Get("foo.nir")
	if !ok {
		t.Fatalf("store does not contain foo.nir after PUT")
	}

	if string(got) != string(body) {
		t.Fatalf("stored blob = %v, want %v", got, body)
	}

	resp2, err := http.Get(srv.URL + "/blobs/foo.nir")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp2.Body.Close()

	got2, err := io.ReadAll(resp2.Body)
	if err != nil {
		t.Fatalf("read GET body: %v", err)
	}

	if string(got2) != string(body) {
		t.Fatalf("GET body = %v, want %v", got2, body)
	}
}

func TestHandler_RangeRequest(t *testing.T) {
	store := NewStore()
	store.Put("stream.nir", []byte("0123456789"))

	srv := httptest.NewServer(NewHandler(store))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/blobs/stream.nir", nil)
	req.Header.Set("Range", "bytes=3-5")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("ranged GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPartialContent {
		t.Fatalf("status = %d, want 206", resp.StatusCode)
	}

	got, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read ranged body: %v", err)
	}

	if string(got) != "345" {
		t.Fatalf("ranged body = %q, want %q", got, "345")
	}
}

func TestHandler_UnknownNameIs404(t *testing.T) {
	store := NewStore()
	srv := httptest.NewServer(NewHandler(store))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/blobs/missing.nir")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandler_RejectsUnsupportedMethod(t *testing.T) {
	store := NewStore()
	srv := httptest.NewServer(NewHandler(store))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/blobs/foo.nir", nil)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

func genSelfSigned(t *testing.T) *tls.Config {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		DNSNames:     []string{"localhost"},
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("create cert: %v", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})

	pair, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		t.Fatalf("x509 key pair: %v", err)
	}

	return &tls.Config{Certificates: []tls.Certificate{pair}, MinVersion: tls.VersionTLS12}
}

// TestServer_PushAllPullAll_Loopback drives a real QUIC/HTTP3 round trip
// through Client.PushAll/PullAll, skipping if this sandbox can't bind a
// UDP socket or complete a QUIC handshake — the same escape hatch the
// teacher's own http3_test.go uses.
func TestServer_PushAllPullAll_Loopback(t *testing.T) {
	store := NewStore()
	srv := NewServer("127.0.0.1:0", genSelfSigned(t), store, Options{})

	addr, err := srv.Start()
	if err != nil {
		t.Skip("nirtransport: udp unavailable:", err)
	}
	defer srv.Stop()

	cli := NewClient("https://"+addr, &tls.Config{InsecureSkipVerify: true}, 2*time.Second, Options{})
	defer cli.Close()

	files := map[string][]byte{
		"a.nir": {1, 2, 3},
		"b.nir": {4, 5, 6, 7},
		"c.nir": {8},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cli.PushAll(ctx, files); err != nil {
		t.Skip("nirtransport: quic handshake failed:", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	got, err := cli.PullAll(ctx, names)
	if err != nil {
		t.Fatalf("PullAll: %v", err)
	}

	for name, want := range files {
		have, ok := got[name]
		if !ok {
			t.Fatalf("PullAll missing %s", name)
		}

		if string(have) != string(want) {
			t.Fatalf("PullAll(%s) = %v, want %v", name, have, want)
		}
	}
}
