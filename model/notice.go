package model

import "github.com/muhammadheryan/car-traders/constant"

// Notice is a user-facing flash message.
type Notice struct {
	Category constant.NoticeCategory `json:"category"`
	Message  string                  `json:"message"`
}
