// Copyright 2020, DataCube, Inc.

package transport

const (
	CODE_OK int = iota
	CODE_UNKNOWN
	CODE_NULL_POINTER
	CODE_ERROR
	CODE_IO
	CODE_AUTH
	CODE_SYSTEM
	CODE_BAD_PARAM
	CODE_NO_RESPONSE
)

var CodeName = map[int]string{
	CODE_OK:           "Success",
	CODE_UNKNOWN:      "Unknown error",
	CODE_NULL_POINTER: "Null pointer error",
	CODE_ERROR:        "Generic error",
	CODE_IO:           "I/O error",
	CODE_AUTH:         "Authentication error",
	CODE_SYSTEM:       "System error",
	CODE_BAD_PARAM:    "Bad or missing parameter",
	CODE_NO_RESPONSE:  "No response from server",
}
