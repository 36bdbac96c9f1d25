// Package apperrors defines the typed failures returned by the roster services.
//
// Every failure carries a Kind (what class of problem) and, where useful, a Reason
// (a stable machine-readable code) so the HTTP boundary can render distinct
// "you don't have access" and "this no longer exists" responses.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindPermissionDenied Kind = "permission_denied"
	KindNotFound         Kind = "not_found"
	KindInvalidState     Kind = "invalid_state"
	KindStoreFailure     Kind = "store_failure"
)

// Reason is a stable code describing why an operation was refused.
type Reason string

const (
	ReasonNone                      Reason = ""
	ReasonNotOwner                  Reason = "not_owner"
	ReasonNotAuthorized             Reason = "not_authorized"
	ReasonNotTeamMember             Reason = "not_team_member"
	ReasonSelfActionForbidden       Reason = "self_action_forbidden"
	ReasonOwnerMustTransferOrDelete Reason = "owner_must_transfer_or_delete"
	ReasonDuplicatePendingInvite    Reason = "duplicate_pending_invitation"
	ReasonAlreadyMember             Reason = "already_member"
	ReasonInvitationNotPending      Reason = "invitation_not_pending"
	ReasonInvitationExpired         Reason = "invitation_expired"
	ReasonInvalidTeamSize           Reason = "invalid_team_size"
	ReasonInvalidFormation          Reason = "invalid_formation"
	ReasonInvalidInput              Reason = "invalid_input"
	ReasonDuplicate                 Reason = "duplicate"
	ReasonMatchNotScheduled         Reason = "match_not_scheduled"
)

// Entity names used by NotFound errors.
const (
	EntityTeam         = "team"
	EntityPlayer       = "player"
	EntityInvitation   = "invitation"
	EntityUser         = "user"
	EntityMatch        = "match"
	EntityNotification = "notification"
)

// Error is the single error type produced by the service layer.
type Error struct {
	Kind    Kind
	Reason  Reason
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error on Kind, and on Reason and Entity when the target sets them.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Reason != ReasonNone && t.Reason != e.Reason {
		return false
	}
	if t.Entity != "" && t.Entity != e.Entity {
		return false
	}
	return true
}

// PermissionDenied reports that the actor lacks the role an action requires.
func PermissionDenied(reason Reason, message string) *Error {
	return &Error{Kind: KindPermissionDenied, Reason: reason, Message: message}
}

// NotFound reports a missing entity. reason may be ReasonNone.
func NotFound(entity string, reason Reason) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Entity: entity, Message: entity + " not found"}
}

// InvalidState reports a request that conflicts with the current roster state.
func InvalidState(reason Reason, message string) *Error {
	return &Error{Kind: KindInvalidState, Reason: reason, Message: message}
}

// StoreFailure wraps an infrastructure error raised while performing op.
func StoreFailure(op string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Message: "failed to " + op, Err: err}
}

// KindOf returns the Kind of err, or KindStoreFailure for errors that did not
// originate in this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreFailure
}

// ReasonOf returns the Reason attached to err, if any.
func ReasonOf(err error) Reason {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ReasonNone
}

// Sentinels for errors.Is comparisons in callers and tests.
var (
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrInvalidState     = &Error{Kind: KindInvalidState}
	ErrStoreFailure     = &Error{Kind: KindStoreFailure}
)
