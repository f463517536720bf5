// Copyright 2020-2021, DataCube, Inc.

package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
)

// queryRequest is the JSON envelope posted to the engine's query endpoint.
type queryRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Request  string `json:"request"`
}

// queryReply is the engine's envelope around one result.
type queryReply struct {
	Response  json.RawMessage `json:"response,omitempty"`
	JobID     string          `json:"jobid,omitempty"`
	SessionID string          `json:"sessionid,omitempty"`
	Status    int             `json:"status"`
	Error     string          `json:"error,omitempty"`
}

// httpTransport implements Transport over the engine's HTTP(S) JSON API.
type httpTransport struct {
	*http.Client
	scheme string
}

// NewHTTP takes an http.Client and creates a Transport speaking plain HTTP.
// The http.Client controls timeouts; none are imposed here.
func NewHTTP(c *http.Client) Transport {
	return &httpTransport{Client: c, scheme: "http"}
}

// NewHTTPS is NewHTTP over TLS. Configure certificates on the http.Client's
// transport, e.g. with util.NewTLSConfig.
func NewHTTPS(c *http.Client) Transport {
	return &httpTransport{Client: c, scheme: "https"}
}

func (t *httpTransport) Submit(username, credential, server, port, request string) (*Result, error) {
	// POST <scheme>://<server>:<port>/api/v1/query
	url := fmt.Sprintf("%s://%s:%s/api/v1/query", t.scheme, server, port)

	payload, err := json.Marshal(queryRequest{
		Username: username,
		Password: credential,
		Request:  request,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsuccessful status code: %d (response body: %s)",
			resp.StatusCode, string(body))
	}

	var reply queryReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("malformed engine reply: %s", err)
	}

	return &Result{
		Response:   string(reply.Response),
		JobID:      reply.JobID,
		SessionID:  reply.SessionID,
		ReturnCode: reply.Status,
		Error:      reply.Error,
	}, nil
}
