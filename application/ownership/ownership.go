// Package ownership gates mutations of users and trades to their owner.
package ownership

import (
	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	"github.com/muhammadheryan/car-traders/utils/errors"
)

// Framing selects how a denial is phrased to the user.
type Framing int

const (
	View Framing = iota
	Action
)

// Authorize allows the request iff identity is present and owns the resource.
func Authorize(identity *model.Identity, ownerID uint64, framing Framing) error {
	if identity != nil && identity.ID == ownerID {
		return nil
	}
	if framing == Action {
		return errors.SetCustomError(constant.ErrUnauthorizedAction)
	}
	return errors.SetCustomError(constant.ErrUnauthorizedView)
}
