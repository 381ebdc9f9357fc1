package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Server answers gateway requests on a unix socket, one JSON line per
// request and one per response. Each connection runs in its own goroutine;
// the wrapped Gateway is responsible for serializing store access.
type Server struct {
	gw     Gateway
	logger *log.Logger

	wg sync.WaitGroup
}

// NewServer creates a Server in front of gw.
func NewServer(gw Gateway, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{gw: gw, logger: logger}
}

// Listen binds the unix socket at path, replacing a stale socket file.
func Listen(path string) (net.Listener, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", path, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		ln.Close()
		return nil, fmt.Errorf("chmod socket: %w", err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled, then closes ln
// and waits for open connections to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.logger.Info("listening", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	s.logger.Debug("connection opened")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.logger.Warn("decode request", "err", err)
				_ = enc.Encode(failure(fmt.Errorf("%w: %v", ErrInvalidRequest, err)))
			}
			s.logger.Debug("connection closed")
			return
		}

		resp := s.Handle(ctx, req)
		if !resp.Success {
			s.logger.Warn("request failed", "action", req.Action, "id", req.ID, "err", resp.Error)
		} else {
			s.logger.Debug("request", "action", req.Action, "id", req.ID)
		}
		if err := enc.Encode(resp); err != nil {
			s.logger.Warn("encode response", "err", err)
			return
		}
	}
}

// Handle runs a single request against the wrapped Gateway.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionList:
		bookmarks, err := s.gw.List(ctx)
		if err != nil {
			return failure(err)
		}
		return Response{Success: true, Bookmarks: toEntries(bookmarks)}

	case ActionEdit:
		if err := s.gw.Update(ctx, req.ID, req.Title, req.URL); err != nil {
			return failure(err)
		}
		return Response{Success: true}

	case ActionDelete:
		if err := s.gw.Delete(ctx, req.ID); err != nil {
			return failure(err)
		}
		return Response{Success: true}

	case ActionOpen:
		if err := s.gw.OpenInNewTab(ctx, req.URL); err != nil {
			return failure(err)
		}
		return Response{Success: true}
	}

	return failure(fmt.Errorf("%w: %q", ErrUnknownAction, req.Action))
}
