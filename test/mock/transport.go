// Copyright 2020, DataCube, Inc.

package mock

import (
	"errors"

	"github.com/datacube-org/cubeclient/transport"
)

var (
	ErrTransport = errors.New("forced error in transport")
)

type Transport struct {
	SubmitFunc func(username, credential, server, port, request string) (*transport.Result, error)

	// Requests records every request text sent through the mock.
	Requests []string
}

func (t *Transport) Submit(username, credential, server, port, request string) (*transport.Result, error) {
	t.Requests = append(t.Requests, request)
	if t.SubmitFunc != nil {
		return t.SubmitFunc(username, credential, server, port, request)
	}
	return &transport.Result{ReturnCode: transport.CODE_OK}, nil
}
