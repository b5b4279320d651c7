package viewer

import "errors"

var (
	// ErrNoTickSource is returned when an animated operation is requested on a
	// controller without a TickSource.
	ErrNoTickSource = errors.New("viewer: animation requested but no tick source is registered")
	// ErrAlreadyAttached is returned by Attach when another owner holds the controller.
	ErrAlreadyAttached = errors.New("viewer: controller is already attached to another owner")
	// ErrNotAttached is returned by Detach when the caller is not the current owner.
	ErrNotAttached = errors.New("viewer: controller is not attached to this owner")
	// ErrDisposed is returned by operations on a disposed controller.
	ErrDisposed = errors.New("viewer: controller is disposed")
)
