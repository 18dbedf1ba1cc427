// Package ftp implements the FTP storage driver.
//
// The protocol cannot safely multiplex concurrent transfers on one control
// connection, so every operation dials a fresh connection, runs a single
// transfer and quits. Connections are closed on all paths.
package ftp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/textproto"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
)

// DefaultPort is used when no FTP port is configured.
const DefaultPort = 21

const dialTimeout = 10 * time.Second

// ErrConnectionFailed wraps dial and login failures with their cause.
var ErrConnectionFailed = errors.New("ftp connection failed")

// Config holds FTP server credentials and layout.
type Config struct {
	Host     string
	User     string
	Password string
	Port     int
	Secure   bool
	BasePath string
	BaseURL  string
}

// Storage is the FTP driver. It keeps no connection state; see the package
// comment for the per-operation connection discipline.
type Storage struct {
	cfg Config
}

// New creates an FTP storage driver. No connection is made until the first
// operation.
func New(cfg Config) (*Storage, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		return nil, fmt.Errorf("ftp host, user and password are required")
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return &Storage{cfg: cfg}, nil
}

// Upload stores data under filename inside the configured base directory.
func (s *Storage) Upload(ctx context.Context, filename string, data []byte) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer quit(conn)

	if err := conn.Stor(s.remotePath(filename), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("ftp store %s: %w", filename, err)
	}
	return nil
}

// Download fetches the full file content.
func (s *Storage) Download(ctx context.Context, filename string) ([]byte, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer quit(conn)

	resp, err := conn.Retr(s.remotePath(filename))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("file %s: %w", filename, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("ftp retrieve %s: %w", filename, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("ftp read %s: %w", filename, err)
	}
	return data, nil
}

// Delete removes the file; a missing file is treated as already deleted.
func (s *Storage) Delete(ctx context.Context, filename string) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer quit(conn)

	if err := conn.Delete(s.remotePath(filename)); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("ftp delete %s: %w", filename, err)
	}
	return nil
}

// Exists reports whether the file is present on the server.
func (s *Storage) Exists(ctx context.Context, filename string) (bool, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return false, err
	}
	defer quit(conn)

	if _, err := conn.FileSize(s.remotePath(filename)); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("ftp size %s: %w", filename, err)
	}
	return true, nil
}

// Type returns "ftp".
func (s *Storage) Type() string {
	return "ftp"
}

// connect dials, authenticates and ensures the base directory exists.
func (s *Storage) connect(ctx context.Context) (*ftp.ServerConn, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(dialTimeout),
	}
	if s.cfg.Secure {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: s.cfg.Host}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	if err := conn.Login(s.cfg.User, s.cfg.Password); err != nil {
		quit(conn)
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	if s.cfg.BasePath != "" {
		// Best effort: the directory usually exists already.
		_ = conn.MakeDir(s.cfg.BasePath)
	}
	return conn, nil
}

func (s *Storage) remotePath(filename string) string {
	if s.cfg.BasePath == "" {
		return filename
	}
	return path.Join(s.cfg.BasePath, filename)
}

func quit(conn *ftp.ServerConn) {
	_ = conn.Quit()
}

// isNotFound detects the FTP 550 "file unavailable" reply.
func isNotFound(err error) bool {
	var proto *textproto.Error
	if errors.As(err, &proto) {
		return proto.Code == ftp.StatusFileUnavailable
	}
	return false
}
