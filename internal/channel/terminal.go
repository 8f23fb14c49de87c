package channel

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

// outputSub receives every raw output chunk from a Session. Delivery is an
// accumulating queue, not a fixed-size channel: a burst of installer output
// must never be able to evict the chunk carrying the marker line, or the
// scan waiting on it would hang with no timeout to rescue it. The queue only
// grows while a run is in flight, and each run drains it as chunks arrive.
type outputSub struct {
	id     int
	mu     sync.Mutex
	chunks [][]byte
	closed bool
	notify chan struct{}
}

func newOutputSub(id int) *outputSub {
	return &outputSub{id: id, notify: make(chan struct{}, 1)}
}

func (s *outputSub) push(chunk []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.chunks = append(s.chunks, chunk)
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *outputSub) shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// next blocks until a chunk is available, the session ends (ok false, nil
// error), or ctx is done (ctx error).
func (s *outputSub) next(ctx context.Context) ([]byte, bool, error) {
	for {
		s.mu.Lock()
		if len(s.chunks) > 0 {
			chunk := s.chunks[0]
			s.chunks = s.chunks[1:]
			s.mu.Unlock()
			return chunk, true, nil
		}
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return nil, false, nil
		}
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-s.notify:
		}
	}
}

// Session is a long-lived interactive shell on a pseudo-terminal. Everything
// the shell prints is mirrored to the user (so they can watch installer
// output and answer prompts) and fanned out to subscribers scanning for
// marker lines. One command at a time: concurrent sends would interleave
// output and risk marker confusion, so callers serialize access.
type Session struct {
	mu          sync.Mutex
	ptmx        *os.File
	cmd         *exec.Cmd
	subscribers map[int]*outputSub
	nextID      int
	closed      bool
}

// NewSession starts shell on a pty. Output is mirrored to echo; when input is
// non-nil it is forwarded to the shell so the user can type responses.
// Callers pass os.Stdout and os.Stdin for a user-visible session.
func NewSession(shell string, echo io.Writer, input io.Reader) (*Session, error) {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.Command(shell)
	cmd.Env = os.Environ()

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ptmx:        ptmx,
		cmd:         cmd,
		subscribers: make(map[int]*outputSub),
	}

	go s.readLoop(echo)
	if input != nil {
		go func() {
			_, _ = io.Copy(ptmx, input)
		}()
	}

	return s, nil
}

func (s *Session) readLoop(echo io.Writer) {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if echo != nil {
				_, _ = echo.Write(chunk)
			}
			s.broadcast(chunk)
		}
		if err != nil {
			s.shutdown()
			return
		}
	}
}

func (s *Session) broadcast(chunk []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscribers {
		sub.push(chunk)
	}
}

func (s *Session) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, sub := range s.subscribers {
		sub.shutdown()
		delete(s.subscribers, id)
	}
}

// subscribe registers a new raw-output subscriber. The subscription is shut
// down when the session ends.
func (s *Session) subscribe() *outputSub {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := newOutputSub(s.nextID)
	s.nextID++
	if s.closed {
		sub.shutdown()
		return sub
	}
	s.subscribers[sub.id] = sub
	return sub
}

// unsubscribe removes a subscriber so broadcast stops queueing into it.
func (s *Session) unsubscribe(sub *outputSub) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, sub.id)
}

// send writes one line of input to the shell.
func (s *Session) send(text string) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return fmt.Errorf("terminal session is closed")
	}
	_, err := s.ptmx.Write([]byte(text + "\n"))
	return err
}

// Close terminates the shell and releases the pty.
func (s *Session) Close() error {
	err := s.ptmx.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	s.shutdown()
	return err
}

// terminalSession is the slice of Session the runner needs; tests substitute
// a scripted fake.
type terminalSession interface {
	subscribe() *outputSub
	unsubscribe(sub *outputSub)
	send(text string) error
}

// TerminalRunner executes commands through an interactive Session and learns
// their exit status by echoing a marker after each command. There is no
// timeout: interactive commands may legitimately wait on a password prompt
// for as long as the user needs.
type TerminalRunner struct {
	session terminalSession
}

// NewTerminalRunner creates a runner bound to an interactive session.
func NewTerminalRunner(session *Session) *TerminalRunner {
	return &TerminalRunner{session: session}
}

var _ Runner = (*TerminalRunner)(nil)

// Run sends the command into the session followed by a marker echo, then
// scans the session's raw output for the marker carrying the command's exit
// code. The token is fresh per call so stale output can never satisfy the
// scan. The subscription is always released, matched or not.
func (r *TerminalRunner) Run(ctx context.Context, command string) error {
	token := nextToken()
	scanner := newMarkerScanner(token)

	sub := r.session.subscribe()
	defer r.session.unsubscribe(sub)

	if err := r.session.send(command); err != nil {
		return doctorerrors.NewSpawnError(command, err)
	}
	if err := r.session.send(fmt.Sprintf("echo %s:$?", token)); err != nil {
		return doctorerrors.NewSpawnError(command, err)
	}

	for {
		chunk, ok, err := sub.next(ctx)
		if err != nil {
			return doctorerrors.NewInterruptedError(command, err)
		}
		if !ok {
			return doctorerrors.NewSpawnError(command, fmt.Errorf("terminal session closed before command finished"))
		}
		if code, done := scanner.Feed(chunk); done {
			if code == 0 {
				return nil
			}
			return doctorerrors.NewExitError(command, code)
		}
	}
}
