// Package nirtransport ships already-serialized NIR byte streams to and
// from a remote build-cache peer over HTTP/3, adapted from
// internal/runtime/netstack/http3.go's quic-go/http3 server wiring. It
// never inspects or partially encodes IR: a blob is whatever
// internal/nir.Serialize (or internal/nirsnapshot) already produced, and
// the only structure this package understands is the byte range a
// caller asks for.
package nirtransport

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	quic "github.com/quic-go/quic-go"
	http3 "github.com/quic-go/quic-go/http3"
)

// Store holds named blobs in memory, keyed by the Defn forest's file
// name (e.g. the basename of the .nir snapshot cmd/nirc serialized).
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Put stores data under name, overwriting any prior blob.
func (s *Store) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[name] = cp
}

// Get returns the blob stored under name, if any.
func (s *Store) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[name]

	return b, ok
}

const blobPathPrefix = "/blobs/"

// Handler serves a Store over HTTP: GET /blobs/<name> (Range-aware, so
// a caller that already knows a Defn's name-index offset can fetch just
// that slice instead of the whole stream) and PUT /blobs/<name> to push
// one.
type Handler struct {
	store *Store
}

// NewHandler builds an http.Handler backed by store.
func NewHandler(store *Store) *Handler { return &Handler{store: store} }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutPrefix(r.URL.Path, blobPathPrefix)
	if !ok || name == "" {
		http.NotFound(w, r)

		return
	}

	switch r.Method {
	case http.MethodGet:
		data, ok := h.store.Get(name)
		if !ok {
			http.NotFound(w, r)

			return
		}
		// http.ServeContent honors Range requests, giving callers partial
		// reads by byte offset without this package decoding anything.
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	case http.MethodPut:
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(r.Body); err != nil {
			http.Error(w, fmt.Sprintf("read body: %v", err), http.StatusBadRequest)

			return
		}

		h.store.Put(name, buf.Bytes())
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, PUT")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Server wraps an http3.Server lifecycle, mirroring
// internal/runtime/netstack/http3.go's HTTP3Server shape.
type Server struct {
	pc    net.PacketConn
	srv   *http3.Server
	close func() error
	errC  chan error
	addr  string
}

// Options configures quic-go for the server and client, mirroring the
// teacher's HTTP3Options.
type Options struct {
	MaxIdleTimeout  time.Duration
	KeepAlivePeriod time.Duration
}

// NewServer builds a Server exposing store at addr. A nil tlsCfg gets a
// TLS 1.3-minimum default, same as the teacher's HTTP3 helpers — QUIC
// requires TLS 1.3.
func NewServer(addr string, tlsCfg *tls.Config, store *Store, opts Options) *Server {
	if tlsCfg == nil {
		tlsCfg = &tls.Config{MinVersion: tls.VersionTLS13, NextProtos: []string{"h3"}}
	} else if tlsCfg.MinVersion < tls.VersionTLS13 {
		c := tlsCfg.Clone()
		c.MinVersion = tls.VersionTLS13

		if len(c.NextProtos) == 0 {
			c.NextProtos = []string{"h3"}
		}

		tlsCfg = c
	}

	qc := &quic.Config{}
	if opts.MaxIdleTimeout > 0 {
		qc.MaxIdleTimeout = opts.MaxIdleTimeout
	}

	if opts.KeepAlivePeriod > 0 {
		qc.KeepAlivePeriod = opts.KeepAlivePeriod
	}

	s := &http3.Server{Addr: addr, TLSConfig: tlsCfg, Handler: NewHandler(store), QUICConfig: qc}

	return &Server{srv: s, addr: addr, errC: make(chan error, 1)}
}

// Start begins serving on an ephemeral UDP port if addr ends with ":0",
// and returns the bound address.
func (s *Server) Start() (string, error) {
	var err error

	s.pc, err = net.ListenPacket("udp", s.addr)
	if err != nil {
		return "", err
	}

	realAddr := s.pc.LocalAddr().String()
	done := make(chan struct{})

	go func() {
		if err := s.srv.Serve(s.pc); err != nil {
			select {
			case s.errC <- err:
			default:
			}
		}

		close(done)
	}()

	s.close = func() error {
		_ = s.pc.Close()
		select {
		case <-done:
		case <-time.After(time.Second):
		}

		return nil
	}

	return realAddr, nil
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	if s.close != nil {
		return s.close()
	}

	return nil
}

// Error returns a non-blocking channel receiving the first serve error.
func (s *Server) Error() <-chan error {
	if s == nil || s.errC == nil {
		ch := make(chan error)
		close(ch)

		return ch
	}

	return s.errC
}
