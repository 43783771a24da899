// automap-server serves the automap viewer over SSH, one independent
// viewer per connection. Build:
//
//	go build -o automap-server ./cmd/server
//
// Usage:
//
//	./automap-server [--port 2222] [--key server_host_key]
//
// Connect with:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"automap/internal/game"
	internalssh "automap/internal/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	flag.Parse()

	signer, err := loadOrCreateHostKey(*keyFile)
	if err != nil {
		log.Fatalf("host key: %v", err)
	}

	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No auth callback: anyone may connect. The viewer is read-only
		// and holds no secrets; add gossh.PublicKeyAuth to restrict it.
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("automap SSH server listening on :%d", *port)
	log.Fatal(srv.ListenAndServe())
}

// allowedTerms lists TERM values we trust enough to hand to terminfo.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"tmux":                  true,
	"tmux-256color":         true,
	"screen":                true,
	"screen-256color":       true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// sessionTerm extracts a safe TERM value from the session environment.
func sessionTerm(s gossh.Session) string {
	for _, env := range s.Environ() {
		if t, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[t] {
			return t
		}
	}
	return "xterm-256color"
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// handleSession runs one automap viewer for the lifetime of an SSH
// connection.
func handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "The automap needs a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	// tcell reads TERM from the process environment when building a screen
	// from a Tty, so serialize sessions through that window.
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", sessionTerm(s))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}

	g, err := game.NewWithScreen(screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(s, "Viewer setup failed: %v\n", err)
		return
	}
	log.Printf("viewer session from %s (%s)", s.RemoteAddr(), pty.Term)
	g.Run()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer, nil
		}
	}

	log.Printf("Generating new ed25519 host key at %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for the next run; failing to write is not fatal.
	if pemBlock, err := xssh.MarshalPrivateKey(key, "automap server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer, nil
}
