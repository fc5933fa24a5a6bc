package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInvalidCollateralType unknown collateral type
	ErrInvalidCollateralType ErrorCode = 100102
	// ErrInvalidInterestType unknown interest type
	ErrInvalidInterestType ErrorCode = 100103
	// ErrInvalidDuration invalid loan duration or grace period
	ErrInvalidDuration ErrorCode = 100104
	// ErrCollateralTypeMismatch deposit of a different collateral type
	ErrCollateralTypeMismatch ErrorCode = 100105

	// ErrLoanAlreadyIssued previous loan not matured past grace
	ErrLoanAlreadyIssued ErrorCode = 100200
	// ErrInsufficientCollateral loan exceeds valuation * ltv
	ErrInsufficientCollateral ErrorCode = 100201
	// ErrNoCollateralDeposited nothing in custody
	ErrNoCollateralDeposited ErrorCode = 100202
	// ErrInsufficientRepayment repay amount below collateral + interest
	ErrInsufficientRepayment ErrorCode = 100203
	// ErrLoanNotExpiredOrCollateralUnderwater liquidation not allowed
	ErrLoanNotExpiredOrCollateralUnderwater ErrorCode = 100204
	// ErrInsufficientCollateralRemaining withdraw breaks required backing
	ErrInsufficientCollateralRemaining ErrorCode = 100205

	// ErrArithmeticOverflow checked arithmetic overflow
	ErrArithmeticOverflow ErrorCode = 100900
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                              "unknown error",
	ErrOperationForbidden:                   "operation forbidden",
	ErrPositionNotFound:                     "position not found",
	ErrInvalidAmount:                        "invalid amount",
	ErrInvalidCollateralType:                "invalid collateral type",
	ErrInvalidInterestType:                  "invalid interest type",
	ErrInvalidDuration:                      "invalid loan duration",
	ErrCollateralTypeMismatch:               "collateral type mismatch",
	ErrLoanAlreadyIssued:                    "loan already issued",
	ErrInsufficientCollateral:               "insufficient collateral to issue loan",
	ErrNoCollateralDeposited:                "no collateral deposited",
	ErrInsufficientRepayment:                "insufficient repayment amount including interest",
	ErrLoanNotExpiredOrCollateralUnderwater: "loan not expired and collateral not underwater",
	ErrInsufficientCollateralRemaining:      "insufficient collateral remaining for the loan",
	ErrArithmeticOverflow:                   "arithmetic overflow",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// ErrorKind groups error codes for callers
type ErrorKind int

const (
	// ErrorKindSystemic the engine could not evaluate the operation
	ErrorKindSystemic ErrorKind = iota
	// ErrorKindValidation caller correctable rejection
	ErrorKindValidation
)

func (e ErrorCode) Kind() ErrorKind {
	if e > ErrUnknown && e < ErrArithmeticOverflow {
		return ErrorKindValidation
	}

	return ErrorKindSystemic
}

// IsValidation caller correctable rejection
func (e ErrorCode) IsValidation() bool {
	return e.Kind() == ErrorKindValidation
}
