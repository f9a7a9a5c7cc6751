package policy

import (
	"reflect"

	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils/apierror"
)

// OwnershipPolicy encapsulates the access rules for user owned resources.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type OwnershipPolicy struct {
	notFound apierror.ErrorResponse
}

func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{notFound: apierror.NotFoundError}
}

// NewOwnershipPolicyWith uses a resource specific "not found" error, like
// "Event not found".
func NewOwnershipPolicyWith(notFound apierror.ErrorResponse) *OwnershipPolicy {
	return &OwnershipPolicy{notFound: notFound}
}

// CanAccess hides resources owned by someone else behind the same error
// as a missing one, so IDs of other users cannot be probed.
func (p *OwnershipPolicy) CanAccess(res entity.Owned, actor *entity.User) apierror.ErrorResponse {
	if res == nil || isNil(res) {
		return p.notFound
	}

	if actor == nil || res.OwnerID() != actor.ID {
		return p.notFound // ^^
	}
	return nil
}

func isNil(res entity.Owned) bool {
	v := reflect.ValueOf(res)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
