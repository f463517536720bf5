// Copyright 2020-2021, DataCube, Inc.

// Package session holds the client identity and the current engine context
// (session id, working directories, last produced cube) that is applied as
// defaults to every request.
package session

import (
	"os"

	"github.com/datacube-org/cubeclient/errors"
	"github.com/datacube-org/cubeclient/proto"
)

// Env vars read by New when readEnv is set. Explicit arguments win.
const (
	ENV_USER   = "CUBE_USER"
	ENV_PASSWD = "CUBE_PASSWD"
	ENV_SERVER = "CUBE_SERVER"
	ENV_PORT   = "CUBE_PORT"
	ENV_TOKEN  = "CUBE_TOKEN"
)

// TOKEN_USER is the synthetic username used when authenticating with a token
// instead of a username/password pair.
const TOKEN_USER = "__token__"

// Session is the single source of truth for identity and current engine
// context. One Session per client identity. The client mutates the context
// fields after every successful submission; callers must not use one Session
// from concurrent submissions (at most one request in flight).
type Session struct {
	Username   string
	Credential string // password or access token
	Server     string
	Port       string

	// Engine context, applied as request defaults unless the caller set them.
	SessionID     string
	Cwd           string
	Cdd           string
	Cube          string // most recently produced artifact handle
	HostPartition string
	ExecMode      string
	NCores        int

	// Bookkeeping for the last request/response cycle.
	LastRequestID  string // client-side id, for log correlation
	LastRequest    string
	LastResponse   string
	LastJobID      string
	LastReturnCode int
	LastError      string
	LastExecTime   float64 // seconds, engine-reported
}

// New creates a Session. If readEnv is set, unset arguments are populated
// from the CUBE_* env vars. If username and credential are both empty but a
// token is available, the token is used with the synthetic TOKEN_USER
// username. Fails with errors.ConfigError if any of username, credential,
// server or port remain empty.
func New(username, credential, server, port, token string, readEnv bool) (*Session, error) {
	if readEnv {
		if username == "" {
			username = os.Getenv(ENV_USER)
		}
		if credential == "" {
			credential = os.Getenv(ENV_PASSWD)
		}
		if server == "" {
			server = os.Getenv(ENV_SERVER)
		}
		if port == "" {
			port = os.Getenv(ENV_PORT)
		}
		if token == "" {
			token = os.Getenv(ENV_TOKEN)
		}
	}

	if username == "" && credential == "" && token != "" {
		username = TOKEN_USER
		credential = token
	}

	switch "" {
	case username:
		return nil, errors.ConfigError{Field: "username"}
	case credential:
		return nil, errors.ConfigError{Field: "credential"}
	case server:
		return nil, errors.ConfigError{Field: "server"}
	case port:
		return nil, errors.ConfigError{Field: "port"}
	}

	return &Session{
		Username:   username,
		Credential: credential,
		Server:     server,
		Port:       port,
		Cwd:        "/",
		Cdd:        "/",
		ExecMode:   proto.EXEC_MODE_SYNC,
		NCores:     1,
	}, nil
}
