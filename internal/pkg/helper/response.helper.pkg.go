package helper

import (
	"net/http"
	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/logger"
)

// ParseResponse fills defaults on a service response and logs server faults.
func ParseResponse(r *types.Response) *types.Response {
	if r == nil {
		r = &types.Response{Code: http.StatusInternalServerError}
	}
	if r.Code == 0 {
		r.Code = http.StatusOK
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	if r.Error != nil && r.Code >= http.StatusInternalServerError {
		logger.Error.Printf("%s: %v", r.Message, r.Error)
	}
	return r
}

// ToResponseAPI converts a service response to the wire envelope.
func ToResponseAPI(r *types.Response) types.ResponseAPI {
	res := types.ResponseAPI{
		Status:  r.Code,
		Message: r.Message,
		Data:    r.Data,
	}
	if r.Error != nil {
		res.Error = r.Error.Error()
	}
	return res
}
