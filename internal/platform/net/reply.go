package net

import (
	"context"
	"net/http"

	perr "namematch/internal/platform/errors"
)

// Wire is the JSON envelope every endpoint answers with. Data is set on
// success; Code, Reason, Error and Field on failure
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	RunID      string         `json:"run_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply is a success envelope. Status 0 means 200
func Reply(status int, data any) Wire {
	if status == 0 {
		status = http.StatusOK
	}
	return Wire{StatusCode: status, Status: http.StatusText(status), Data: data}
}

// Fail is the envelope for err with the status its code maps to. A nil err
// is an empty 200
func Fail(err error) Wire {
	if err == nil {
		return Reply(http.StatusOK, nil)
	}
	e := perr.WireFrom(err)
	w := Reply(perr.HTTPStatus(err), nil)
	w.Code, w.Reason, w.Error, w.Field = e.Code, e.Code.String(), e.Message, e.Field
	return w
}

// Stamped returns w carrying the request and run ids found on ctx
func (w Wire) Stamped(ctx context.Context) Wire {
	w.RequestID = RequestID(ctx)
	w.RunID = RunID(ctx)
	return w
}
