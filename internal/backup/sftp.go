package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTPConfig describes the remote backup target.
type SFTPConfig struct {
	Host      string
	Port      int
	User      string
	Pass      string
	RemoteDir string
}

// SFTPSink uploads snapshots to a remote host, mirroring the local
// layout: files land under <remoteDir>/backups and are fully
// overwritten on each write.
type SFTPSink struct {
	cfg SFTPConfig
}

// NewSFTPSink validates the config and returns a sink. Connections are
// established per write, not held open.
func NewSFTPSink(cfg SFTPConfig) (*SFTPSink, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("sftp: missing host/user/pass")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	return &SFTPSink{cfg: cfg}, nil
}

func (s *SFTPSink) Name() string { return "sftp:" + s.cfg.Host }

func (s *SFTPSink) Write(ctx context.Context, filename string, data []byte) error {
	sshCfg := &ssh.ClientConfig{
		User: s.cfg.User,
		Auth: []ssh.AuthMethod{ssh.Password(s.cfg.Pass)},
		// TODO: load known_hosts instead of skipping verification.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         20 * time.Second,
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	// ssh.Dial has no context support; race it against ctx.
	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return wrapSFTPErr(fmt.Errorf("sftp: dial: %w", r.err))
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	cli, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftp: new client: %w", err)
	}
	defer cli.Close()

	dir := path.Join(s.cfg.RemoteDir, backupsSubdir)
	if err := cli.MkdirAll(dir); err != nil {
		return wrapSFTPErr(fmt.Errorf("sftp: mkdir %s: %w", dir, err))
	}

	dst, err := cli.Create(path.Join(dir, filename))
	if err != nil {
		return wrapSFTPErr(fmt.Errorf("sftp: create remote file: %w", err))
	}
	defer dst.Close()

	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("sftp: upload: %w", err)
	}
	return nil
}

// wrapSFTPErr maps auth/permission failures onto ErrPermission so
// callers treat them like a revoked local grant.
func wrapSFTPErr(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "permission denied") || strings.Contains(msg, "unable to authenticate") {
		return fmt.Errorf("%w: %v", ErrPermission, err)
	}
	return err
}
