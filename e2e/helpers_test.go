// ABOUTME: PTY harness for end-to-end tests: builds pi-glob once and runs it on a pseudo-terminal
// ABOUTME: Output is read continuously so tests can wait for strings and exit status

package e2e

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "pi-glob-e2e")
	if err != nil {
		fmt.Fprintf(os.Stderr, "e2e: %v\n", err)
		os.Exit(1)
	}
	binPath = filepath.Join(dir, "pi-glob")

	build := exec.Command("go", "build", "-o", binPath, "../cmd/pi-glob")
	build.Stdout = os.Stderr
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "e2e: building pi-glob: %v\n", err)
		_ = os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// session is one pi-glob process attached to a PTY.
type session struct {
	cmd  *exec.Cmd
	ptmx *os.File

	mu   sync.Mutex
	buf  bytes.Buffer
	done chan struct{}

	exitOnce sync.Once
	exitErr  error
	exited   chan struct{}
}

// startPiGlob runs the binary in dir with an isolated HOME.
func startPiGlob(t *testing.T, dir string, args ...string) *session {
	t.Helper()

	cmd := exec.Command(binPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		t.Fatalf("starting pi-glob: %v", err)
	}

	s := &session{cmd: cmd, ptmx: ptmx, done: make(chan struct{}), exited: make(chan struct{})}
	go s.readLoop()
	go func() {
		s.exitErr = cmd.Wait()
		close(s.exited)
	}()
	return s
}

func (s *session) readLoop() {
	defer close(s.done)
	chunk := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(chunk)
		if n > 0 {
			s.mu.Lock()
			s.buf.Write(chunk[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *session) expectStringTimeout(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q; output so far:\n%s", want, s.output())
}

func (s *session) sendCtrl(t *testing.T, c byte) {
	t.Helper()
	if _, err := s.ptmx.Write([]byte{c & 0x1f}); err != nil {
		t.Fatalf("sending ctrl-%c: %v", c, err)
	}
}

func (s *session) sendLine(t *testing.T, line string) {
	t.Helper()
	if _, err := io.WriteString(s.ptmx, line+"\n"); err != nil {
		t.Fatalf("writing line: %v", err)
	}
}

// waitExit waits for the process and returns its exit code.
func (s *session) waitExit(t *testing.T, timeout time.Duration) int {
	t.Helper()
	select {
	case <-s.exited:
	case <-time.After(timeout):
		t.Fatalf("pi-glob did not exit within %s; output:\n%s", timeout, s.output())
	}
	return s.cmd.ProcessState.ExitCode()
}

func (s *session) close() {
	s.exitOnce.Do(func() {
		select {
		case <-s.exited:
		default:
			_ = s.cmd.Process.Kill()
			<-s.exited
		}
		_ = s.ptmx.Close()
	})
}

// writeTree creates files under a temp dir, each one minute newer than the last.
func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(f), 0o644); err != nil {
			t.Fatal(err)
		}
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(p, mt, mt); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
