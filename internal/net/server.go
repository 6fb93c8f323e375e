package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/solorun/internal/game"
)

// Server hosts campaigns over TCP, one session per connection.
type Server struct {
	Addr    string // listen address, e.g. ":9000"
	Session SessionConfig
	Logger  *zap.Logger

	mu sync.Mutex
	ln net.Listener
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Listen binds the server's address. Run calls it when needed.
func (s *Server) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr(), nil
	}
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	s.ln = ln
	return ln.Addr(), nil
}

// Run accepts connections until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	defer ln.Close()

	s.logger().Info("listening", zap.String("addr", addr.String()))

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-stop:
		}
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ServeConn(ctx, conn); err != nil {
				s.logger().Warn("connection ended", zap.String("remote", conn.RemoteAddr().String()), zap.Error(err))
			}
		}()
	}
}

// ServeConn runs one session over conn until the peer disconnects. The
// connection is closed on return.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) (err error) {
	defer conn.Close()
	log := s.logger().With(zap.String("remote", conn.RemoteAddr().String()))
	log.Info("client connected")

	sess := NewSession(s.Session)
	defer sess.Close()

	defer func() {
		if r := recover(); r != nil {
			iv, ok := r.(game.IntegrityViolation)
			if !ok {
				panic(r)
			}
			log.Error("session aborted", zap.Error(iv))
			err = iv
		}
	}()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				log.Info("client disconnected")
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		resp := sess.Handle(ctx, msg)
		if resp.Type == MsgError {
			log.Debug("command rejected", zap.String("command", msg.Type), zap.String("error", resp.Error))
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
}
