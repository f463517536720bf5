// Copyright 2020-2021, DataCube, Inc.

// Package transport defines the contract for sending one serialized request
// to the remote engine, and an HTTP implementation of it. The client core
// depends only on the Transport interface; anything speaking the engine's
// protocol (HTTP, SOAP, a test double) can stand behind it.
package transport

// Result is the structured outcome of one request the engine accepted at the
// protocol level. ReturnCode zero signals transport-and-engine success;
// nonzero codes map onto the CODE_* enumeration.
type Result struct {
	Response   string // raw JSON response text, may be empty
	JobID      string // engine-assigned job id, may be empty
	SessionID  string // new session id, if the engine assigned one
	ReturnCode int    // CODE_* const
	Error      string // engine-level error message, if any
}

// A Transport sends one serialized request to the engine. A returned error
// means the request never produced an engine result (connection failure,
// protocol failure, malformed response); engine-level failures come back in
// Result.ReturnCode and Result.Error instead. Submit blocks until the engine
// replies; async execution only changes when the engine finishes the work,
// not when Submit returns.
type Transport interface {
	Submit(username, credential, server, port, request string) (*Result, error)
}
