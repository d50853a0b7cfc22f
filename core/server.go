package core

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/gliderlabs/ssh"
	"github.com/josephlewis42/serialshell/core/config"
	"github.com/josephlewis42/serialshell/core/logger"
	"github.com/josephlewis42/serialshell/core/stream"
	"github.com/josephlewis42/serialshell/core/ttylog"
)

// Server gives every SSH session its own shell.
type Server struct {
	configuration *config.Configuration
	events        *logger.Logger
	logger        *log.Logger
	toClose       io.Closer
	sshServer     *ssh.Server
}

// NewServer creates a server from the configuration. Events are appended to
// the configuration's application log.
func NewServer(configuration *config.Configuration, serverLog *log.Logger) (*Server, error) {
	signer, err := configuration.HostSigner()
	if err != nil {
		return nil, fmt.Errorf("loading host key: %w", err)
	}

	appLog, err := configuration.OpenAppLog()
	if err != nil {
		return nil, err
	}

	server := &Server{
		configuration: configuration,
		events:        logger.NewJsonLinesLogRecorder(appLog),
		logger:        serverLog,
		toClose:       appLog,
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.Serve.SSHPort),
		Handler: func(s ssh.Session) {
			if err := server.HandleConnection(s); err != nil {
				server.logger.Printf("session from %s: %v\n", s.RemoteAddr(), err)
			}
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return server.checkPassword(password)
		},
	}
	server.sshServer.AddHostKey(signer)

	return server, nil
}

func (srv *Server) checkPassword(password string) bool {
	allowed := srv.configuration.Serve.Passwords
	if len(allowed) == 0 {
		return true
	}

	ok := false
	for _, candidate := range allowed {
		if subtle.ConstantTimeCompare([]byte(password), []byte(candidate)) == 1 {
			ok = true
		}
	}
	return ok
}

// HandleConnection runs a shell over the session until the client
// disconnects.
func (srv *Server) HandleConnection(s ssh.Session) error {
	sessionLogger := srv.events.NewSession("")

	ptyInfo, _, isPTY := s.Pty()
	terminal := ""
	if isPTY {
		terminal = ptyInfo.Term
	}
	if err := sessionLogger.Record(&logger.SessionStart{
		User:       s.User(),
		RemoteAddr: s.RemoteAddr().String(),
		Terminal:   terminal,
	}); err != nil {
		srv.logger.Printf("session %s: %v\n", sessionLogger.SessionID(), err)
	}

	serve := srv.configuration.Serve
	conn := stream.NewPollStream(s, stream.Throttle(s, serve.BaudRate))
	defer conn.Close()

	var st stream.Stream = conn
	if serve.RecordSessions {
		logName := fmt.Sprintf("%s.%s", sessionLogger.SessionID(), ttylog.UMLFileExt)
		logFd, err := srv.configuration.CreateSessionLog(logName)
		if err != nil {
			s.Exit(1)
			return err
		}
		defer logFd.Close()

		recorder := ttylog.NewRecorder(conn, ttylog.NewUMLLogSink(logFd), srv.logger)
		defer recorder.Close()
		st = recorder
	}

	sh := NewShell(srv.configuration, st, sessionLogger, srv.logger)
	if serve.SSHBanner != "" {
		sh.Print(serve.SSHBanner)
		sh.Flush()
	}

	err := sh.Run(s.Context(), serve.PollInterval())
	if errors.Is(err, context.Canceled) {
		// The client went away.
		err = nil
	}

	s.Exit(0)
	return err
}

// ListenAndServe listens on the configured port.
func (srv *Server) ListenAndServe() error {
	srv.logger.Printf("- Starting SSH server on %s\n", srv.sshServer.Addr)
	return srv.sshServer.ListenAndServe()
}

// Serve accepts connections on l.
func (srv *Server) Serve(l net.Listener) error {
	srv.logger.Printf("- Starting SSH server on %s\n", l.Addr())
	return srv.sshServer.Serve(l)
}

// Shutdown gracefully stops the server and closes the application log.
func (srv *Server) Shutdown(ctx context.Context) error {
	defer srv.toClose.Close()
	return srv.sshServer.Shutdown(ctx)
}
