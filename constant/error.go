package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrUsernameExists
	ErrEmailExists
	ErrPhoneExists
	ErrInvalidCredentials
	ErrUnauthorizedView
	ErrUnauthorizedAction
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "Please log in to access this page",
	ErrUsernameExists:     "Username already taken",
	ErrEmailExists:        "Email already registered",
	ErrPhoneExists:        "Phone number already registered",
	ErrInvalidCredentials: "Incorrect Username / Password, please try again.",
	ErrUnauthorizedView:   "You are unauthorized to view this page.",
	ErrUnauthorizedAction: "You are unauthorized to perform this action.",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrUsernameExists:     http.StatusBadRequest,
	ErrEmailExists:        http.StatusBadRequest,
	ErrPhoneExists:        http.StatusBadRequest,
	ErrInvalidCredentials: http.StatusBadRequest,
	ErrUnauthorizedView:   http.StatusForbidden,
	ErrUnauthorizedAction: http.StatusForbidden,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrUsernameExists:     "0005",
	ErrEmailExists:        "0006",
	ErrPhoneExists:        "0007",
	ErrInvalidCredentials: "0008",
	ErrUnauthorizedView:   "0009",
	ErrUnauthorizedAction: "0010",
}
