package effects

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every error returned from ProcessImage.
var ErrInvalidArgument = errors.New("invalid argument")

type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrInvalidArgument }

type UnknownEffectError struct {
	Name string
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("unknown effect type %q", e.Name)
}

func (e *UnknownEffectError) Is(target error) bool { return target == ErrInvalidArgument }

type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save image %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

func (e *SaveError) Is(target error) bool { return target == ErrInvalidArgument }

type CallbackError struct {
	Err error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("progress callback failed: %v", e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

func (e *CallbackError) Is(target error) bool { return target == ErrInvalidArgument }
