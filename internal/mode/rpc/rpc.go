// ABOUTME: RPC mode for agent runtimes: tool requests in, tool responses out
// ABOUTME: JSONL protocol over stdin/stdout; one response line per request line

package rpc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/pi-glob/internal/log"
	"github.com/mauromedda/pi-glob/internal/types"
)

const maxLineSize = 10 * 1024 * 1024

// Dispatcher executes one typed tool request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req types.Request) types.Response
}

// Server reads JSONL requests and writes JSONL responses.
type Server struct {
	reader      *bufio.Scanner
	writer      io.Writer
	dispatcher  Dispatcher
	concurrency int
	log         *log.Logger

	mu sync.Mutex // serializes response lines
}

// NewServer creates a server. With concurrency > 1, up to that many
// requests run at once and responses may arrive out of request order;
// callers correlate them by id.
func NewServer(r io.Reader, w io.Writer, d Dispatcher, concurrency int, logger *log.Logger) *Server {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	if concurrency < 1 {
		concurrency = 1
	}
	return &Server{
		reader:      scanner,
		writer:      w,
		dispatcher:  d,
		concurrency: concurrency,
		log:         logger,
	}
}

// Run serves until the input ends or ctx is cancelled. Requests still in
// flight when ctx is cancelled are answered with cancelled errors before Run
// returns.
func (s *Server) Run(ctx context.Context) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for s.reader.Scan() {
			line := append([]byte(nil), s.reader.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- s.reader.Err()
	}()

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if strings.TrimSpace(string(line)) == "" {
				continue
			}
			g.Go(func() error {
				return s.write(s.handle(ctx, line))
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	if err := <-scanErr; err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

func (s *Server) handle(ctx context.Context, line []byte) types.Response {
	req, err := types.DecodeRequest(line)
	if err != nil {
		s.log.Warn("rpc: rejecting request %q: %v", req.ID, err)
		code := types.CodeInvalidRequest
		if req.Kind != "" && !req.Kind.Valid() {
			code = types.CodeUnknownTool
		}
		return types.ErrorResponse(req.ID, req.Kind, code, err.Error())
	}
	return s.dispatcher.Dispatch(ctx, req)
}

func (s *Server) write(resp types.Response) error {
	data, err := types.EncodeResponse(resp)
	if err != nil {
		data, _ = types.EncodeResponse(types.ErrorResponse(resp.ID, resp.Kind, types.CodeInternal,
			fmt.Sprintf("encoding response: %v", err)))
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer.Write(data); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
