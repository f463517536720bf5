// Copyright 2020-2021, DataCube, Inc.

// Package client provides the submission controller: it builds engine
// requests from the current session context, sends them through a Transport,
// and updates the session from the structured result. One request/response
// cycle per call; callers must keep at most one request in flight per
// session.
package client

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	cerr "github.com/datacube-org/cubeclient/errors"
	"github.com/datacube-org/cubeclient/proto"
	"github.com/datacube-org/cubeclient/query"
	"github.com/datacube-org/cubeclient/session"
	"github.com/datacube-org/cubeclient/transport"
	"github.com/datacube-org/cubeclient/util"
	"github.com/datacube-org/cubeclient/workflow"
)

// Engine operators issued by the client itself.
const (
	progressQuery = "oph_loggingbk session_filter=%s;workflowid_filter=%s;"
	cancelQuery   = "oph_cancel id=%s;exec_mode=async;"
)

// Client issues requests against one engine identity. Construct with New,
// passing the session explicitly; collaborators share the client handle, not
// global state.
type Client struct {
	sess   *session.Session
	tr     transport.Transport
	logger *logrus.Entry

	// Strict treats an engine error message embedded in a code-0 response
	// as a failure.
	Strict bool
}

func New(sess *session.Session, tr transport.Transport) *Client {
	return &Client{
		sess:   sess,
		tr:     tr,
		logger: logrus.WithField("component", "client"),
	}
}

// SetLogger replaces the default logrus entry.
func (c *Client) SetLogger(logger *logrus.Entry) {
	c.logger = logger
}

// Session returns the session this client mutates.
func (c *Client) Session() *session.Session {
	return c.sess
}

// Submit sends one flat command, augmented with session-context defaults for
// any keys the command does not set, and returns the parsed engine response.
// On success the session adopts whatever context the engine returned: a new
// session id (which resets cwd to "/"), working and data directories, the
// produced cube, a rotated access token. The update is all-or-nothing; a
// failed call leaves the context fields untouched.
func (c *Client) Submit(cmd string) (*proto.Response, error) {
	return c.send(query.BuildCommand(cmd, c.sess))
}

// SubmitWorkflow validates and submits a workflow document. The document is
// validated locally first; an invalid workflow never reaches the transport.
// Positional params replace ${N} and $N placeholders in the serialized form,
// which is re-validated after substitution. A workflow instance that already
// carries a job id is rejected. Returns the engine-assigned job id.
func (c *Client) SubmitWorkflow(w *workflow.Workflow, params ...string) (string, error) {
	if w.Submitted() {
		return "", cerr.AlreadySubmittedError{Workflow: w.Doc.Name, JobID: w.JobID}
	}
	if err := workflow.Validate(w.Doc); err != nil {
		return "", err
	}

	raw, err := w.Marshal()
	if err != nil {
		return "", err
	}
	text := workflow.Substitute(string(raw), params)
	if err := workflow.ValidateText(text); err != nil {
		return "", err
	}

	// Re-read the substituted form and fill in session-context defaults for
	// fields the document leaves empty.
	var doc proto.Workflow
	if err := json.Unmarshal([]byte(workflow.StripComments(text)), &doc); err != nil {
		return "", cerr.ValidationError{Message: "Workflow is not a valid JSON"}
	}
	query.BuildWorkflowRequest(&doc, c.sess)
	request, err := json.Marshal(&doc)
	if err != nil {
		return "", err
	}

	if _, err := c.send(string(request)); err != nil {
		return "", err
	}
	w.JobID = c.sess.LastJobID
	return w.JobID, nil
}

// Progress returns the engine's view of one job: submission timestamp,
// progress ratio and state. An empty jobID falls back to the last submitted
// job. The engine reports progress as a grid row; a response without one
// yields the zero progress ("0000-00-00 00:00:00", 0.0) in state PENDING.
func (c *Client) Progress(jobID string) (Progress, error) {
	jobID, ordinal, err := c.resolveJob(jobID)
	if err != nil {
		return Progress{}, err
	}
	resp, err := c.Submit(fmt.Sprintf(progressQuery, c.sess.SessionID, ordinal))
	if err != nil {
		return Progress{}, err
	}
	ts, ratio, state := progressFromResponse(resp)
	return Progress{JobID: jobID, Timestamp: ts, Ratio: ratio, State: state}, nil
}

// Cancel asks the engine to stop a running job. Cancellation is an ordinary
// async submission carrying the job ordinal; the engine decides whether the
// job can still be stopped.
func (c *Client) Cancel(jobID string) error {
	_, ordinal, err := c.resolveJob(jobID)
	if err != nil {
		return err
	}
	_, err = c.Submit(fmt.Sprintf(cancelQuery, ordinal))
	return err
}

// resolveJob resolves the job to act on: the given id, else the last
// submitted one. Returns the full id and its ordinal.
func (c *Client) resolveJob(jobID string) (string, string, error) {
	if jobID == "" {
		jobID = c.sess.LastJobID
	}
	if jobID == "" {
		return "", "", cerr.MissingJobIdError{}
	}
	ordinal, err := proto.JobOrdinal(jobID)
	return jobID, ordinal, err
}

// send performs one transport cycle: record the attempt, map failures into
// the error taxonomy, and on success apply the response-derived session
// delta atomically.
func (c *Client) send(request string) (*proto.Response, error) {
	reqID := util.XID().String()
	c.sess.LastRequestID = reqID
	c.sess.LastRequest = request
	log := c.logger.WithField("requestId", reqID)
	log.Debugf("submitting: %s", request)

	res, err := c.tr.Submit(c.sess.Username, c.sess.Credential, c.sess.Server, c.sess.Port, request)
	if err != nil {
		// The request never produced an engine result. Record the attempt;
		// context fields stay as they were.
		c.sess.LastResponse = ""
		c.sess.LastJobID = ""
		c.sess.LastReturnCode = transport.CODE_NO_RESPONSE
		c.sess.LastError = err.Error()
		return nil, cerr.TransportError{Err: err}
	}

	c.sess.LastResponse = res.Response
	c.sess.LastJobID = res.JobID
	c.sess.LastReturnCode = res.ReturnCode
	c.sess.LastError = res.Error

	if res.ReturnCode != transport.CODE_OK {
		msg := res.Error
		if msg == "" {
			msg = transport.CodeName[res.ReturnCode]
		}
		log.Warnf("engine error (code %d): %s", res.ReturnCode, msg)
		return nil, cerr.EngineError{Code: res.ReturnCode, Message: msg}
	}
	if c.Strict && res.Error != "" {
		return nil, cerr.EngineError{Code: res.ReturnCode, Message: res.Error}
	}

	resp, delta, err := parseResponse(res.Response)
	if err != nil {
		return nil, cerr.TransportError{Err: err}
	}
	delta.sessionID = res.SessionID
	c.apply(delta)
	log.Debugf("response ok, job id %s", res.JobID)
	return resp, nil
}

// apply commits one response-derived delta to the session. A new session id
// implies a working-directory reset to root; directory values carried by the
// same response then override it.
func (c *Client) apply(d *stateDelta) {
	if d.sessionID != "" && d.sessionID != c.sess.SessionID {
		c.sess.SessionID = d.sessionID
		c.sess.Cwd = "/"
	}
	if d.cube != "" {
		c.sess.Cube = d.cube
	}
	if d.cwd != "" {
		c.sess.Cwd = d.cwd
	}
	if d.cdd != "" {
		c.sess.Cdd = d.cdd
	}
	if d.token != "" {
		c.sess.Credential = d.token
	}
	if d.execTime > 0 {
		c.sess.LastExecTime = d.execTime
	}
}
