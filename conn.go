package poolhttp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/jpalmerr/poolhttp/internal/static"
)

// serveConn handles one connection from parse to close. It runs on a worker.
//
// Failures stay inside this connection: a write error is logged and the
// connection is dropped, nothing propagates to the pool.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With(
		"conn_id", uuid.NewString(),
		"remote_addr", conn.RemoteAddr().String(),
	)

	resp := s.respond(conn, logger)

	if _, err := resp.WriteTo(conn); err != nil {
		logger.Warn("failed to write response", "error", err)
		return
	}
	logger.Debug("response sent", "status", resp.Status.Code(), "bytes", len(resp.Body))
}

// respond parses a request from r and produces the response for it.
func (s *Server) respond(r io.Reader, logger *slog.Logger) Response {
	req, err := s.parser.Parse(bufio.NewReader(r))
	if err != nil {
		if errors.Is(err, ErrConnectionClosedEarly) {
			logger.Debug("connection closed before request", "error", err)
		} else {
			logger.Warn("bad request", "error", err)
		}
		return s.page(static.BadRequestPage, StatusBadRequest, logger)
	}

	logger.Debug("request received",
		"method", req.Method.String(),
		"path", req.Path,
		"version", req.Version,
	)

	if resp := s.dispatch(req, logger); resp != nil {
		return *resp
	}
	return s.serveStatic(req, logger)
}

// dispatch calls the application with panic recovery. A panic is logged with
// a correlation ID and turned into a 500 response.
func (s *Server) dispatch(req *Request, logger *slog.Logger) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			logger.Error("application panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			internal := s.page(static.InternalErrorPage, StatusInternalServerError, logger)
			resp = &internal
		}
	}()
	return s.app.Handle(req)
}

// serveStatic is the fallback for requests the application did not handle.
func (s *Server) serveStatic(req *Request, logger *slog.Logger) Response {
	if body, found := s.files.Lookup(req.Method.String(), req.Path); found {
		return Response{Status: StatusOK, Body: body}
	}
	return s.page(static.NotFoundPage, StatusNotFound, logger)
}

// page builds a response from a designated page. When no copy of the page
// exists the status text is used as the body.
func (s *Server) page(name string, status StatusCode, logger *slog.Logger) Response {
	body, err := s.files.Page(name)
	if err != nil {
		logger.Error("designated page unavailable", "page", name, "error", err)
		body = status.String()
	}
	return Response{Status: status, Body: body}
}
