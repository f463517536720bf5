// Copyright 2020-2021, DataCube, Inc.

package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/datacube-org/cubeclient/proto"
)

// Zero progress, reported when the engine has no progress row for a job yet.
const zeroTimestamp = "0000-00-00 00:00:00"

// stateDelta is the session update derived from one response. Deltas are
// computed in full before anything is applied, so a parse failure never
// leaves the session half-updated.
type stateDelta struct {
	sessionID string
	cube      string
	cwd       string
	cdd       string
	token     string
	execTime  float64
}

// parseResponse decodes the raw response text once at the boundary and
// derives the session delta from its typed objects. Text objects are read
// first, then the extra key/value side channel, so extra values override
// text-object values for the same field.
func parseResponse(text string) (*proto.Response, *stateDelta, error) {
	resp := &proto.Response{}
	d := &stateDelta{}
	if strings.TrimSpace(text) == "" {
		return resp, d, nil
	}
	if err := json.Unmarshal([]byte(text), resp); err != nil {
		return nil, nil, fmt.Errorf("malformed response: %s", err)
	}

	for _, obj := range resp.Objects {
		if obj.Class != proto.OBJCLASS_TEXT || obj.Key == proto.OBJKEY_EXTRA {
			continue
		}
		for _, ct := range obj.Content {
			switch ct.Title {
			case proto.TITLE_OUTPUT_CUBE:
				d.cube = ct.Message
			case proto.TITLE_CWD:
				d.cwd = ct.Message
			case proto.TITLE_CDD:
				d.cdd = ct.Message
			}
		}
	}

	for _, obj := range resp.Objects {
		if obj.Key != proto.OBJKEY_EXTRA {
			continue
		}
		for _, ct := range obj.Content {
			for i, key := range ct.Keys {
				if i >= len(ct.Values) {
					break
				}
				val := ct.Values[i]
				switch key {
				case proto.EXTRA_KEY_CUBE:
					d.cube = val
				case proto.EXTRA_KEY_CWD:
					d.cwd = val
				case proto.EXTRA_KEY_CDD:
					d.cdd = val
				case proto.EXTRA_KEY_ACCESS_TOKEN:
					d.token = val
				case proto.EXTRA_KEY_EXECUTION_TIME:
					if f, err := strconv.ParseFloat(val, 64); err == nil {
						d.execTime = f
					}
				}
			}
		}
	}

	return resp, d, nil
}

// progressFromResponse reads the last row of the first grid object: the
// first column is the submission timestamp, the last column the progress
// ratio, and any middle column naming a known state (proto.StateValue) is
// the job state. Rows without a state column are inferred from the ratio:
// complete at 1.0, running below it. Missing grid or row yields the zero
// progress in state PENDING, which the engine reports before the job's
// first log row exists.
func progressFromResponse(resp *proto.Response) (string, float64, byte) {
	for _, obj := range resp.Objects {
		if obj.Class != proto.OBJCLASS_GRID {
			continue
		}
		for _, ct := range obj.Content {
			if len(ct.RowValues) == 0 {
				continue
			}
			row := ct.RowValues[len(ct.RowValues)-1]
			if len(row) == 0 {
				continue
			}
			ts := row[0]
			ratio := 0.0
			if f, err := strconv.ParseFloat(row[len(row)-1], 64); err == nil {
				ratio = f
			}

			var state byte
			found := false
			for _, cell := range row[1:] {
				if v, ok := proto.StateValue[cell]; ok {
					state = v
					found = true
					break
				}
			}
			if !found {
				if ratio >= 1.0 {
					state = proto.STATE_COMPLETE
				} else {
					state = proto.STATE_RUNNING
				}
			}
			return ts, ratio, state
		}
	}
	return zeroTimestamp, 0.0, proto.STATE_PENDING
}
