package codes

import (
	"errors"
	"strconv"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
	// Conflict concurrent update of the same position
	Conflict = 100409
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Translate convert engine and store errors to twirp errors
func Translate(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	var code core.ErrorCode
	switch {
	case errors.As(err, &code):
		return translateCode(code)
	case errors.Is(err, db.ErrOptimisticLock):
		return with(twirp.NewError(twirp.Aborted, "position changed concurrently, retry"), Conflict)
	case errors.Is(err, core.ErrTransferNotPaid), errors.Is(err, core.ErrTransferClaimed):
		return with(twirp.NewError(twirp.FailedPrecondition, err.Error()), InvalidArguments)
	default:
		return twirp.InternalErrorWith(err)
	}
}

func translateCode(code core.ErrorCode) twirp.Error {
	var twerr twirp.Error
	switch {
	case code == core.ErrPositionNotFound:
		twerr = twirp.NotFoundError(code.Error())
	case code == core.ErrOperationForbidden:
		twerr = twirp.NewError(twirp.PermissionDenied, code.Error())
	case code.Kind() == core.ErrorKindValidation:
		twerr = twirp.NewError(twirp.InvalidArgument, code.Error())
	default:
		twerr = twirp.NewError(twirp.Internal, code.Error())
	}

	return with(twerr, int(code))
}

func with(twerr twirp.Error, code int) twirp.Error {
	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}
