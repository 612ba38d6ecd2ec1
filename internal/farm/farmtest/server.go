package farmtest

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/erizocosmico/bitsort/internal/farm"
	"github.com/erizocosmico/bitsort/internal/farm/proto"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

const defaultMaxSize int32 = 16 * 1024 * 1024

// Server is a test implementation of a worker server.
type Server struct {
	Hooks
	addr    string
	maxSize int32
}

// Hooks provides hooks to intercept calls to the server.
type Hooks struct {
	OnHealthcheck func()
	OnInfo        func()
	OnExec        func(uuid.UUID, []byte) ([]byte, error)
}

// NewServer creates a new test worker server.
func NewServer(addr string, hooks Hooks) *Server {
	return &Server{
		Hooks:   hooks,
		addr:    addr,
		maxSize: defaultMaxSize,
	}
}

// Start listenning to connections.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	defer l.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		conn, err := l.Accept()
		if err != nil {
			return err
		}

		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	for {
		req, err := proto.ParseRequest(conn, s.maxSize)
		if err != nil {
			if err == io.EOF || proto.IsEOF(err) {
				break
			}

			s.writeError(conn, err)
			return
		}

		resp, err := s.handleRequest(req)
		if err != nil {
			s.writeError(conn, err)
			continue
		}

		s.writeResponse(conn, &proto.Response{Type: proto.Ok, Data: resp})
	}
}

func (s *Server) info() farm.Info {
	return farm.Info{
		Version: "test",
		Addr:    s.addr,
		Proto:   proto.Version,
	}
}

func (s *Server) handleRequest(r *proto.Request) ([]byte, error) {
	switch r.Op {
	case proto.Exec:
		if s.OnExec != nil {
			return s.OnExec(r.ID, r.Data)
		}

		return nil, fmt.Errorf("Exec hook not provided")
	case proto.HealthCheck:
		if s.OnHealthcheck != nil {
			s.OnHealthcheck()
		}

		return nil, nil
	case proto.Info:
		if s.OnInfo != nil {
			s.OnInfo()
		}

		return s.info().Encode()
	default:
		return nil, proto.ErrInvalidOp
	}
}

func (s *Server) writeError(conn net.Conn, err error) {
	s.writeResponse(conn, &proto.Response{
		Type: proto.Error,
		Data: []byte(err.Error()),
	})
}

func (s *Server) writeResponse(conn net.Conn, r *proto.Response) {
	if err := proto.WriteResponse(r, conn); err != nil {
		logrus.WithField("err", err).Error("unable to write response")
	}
}
