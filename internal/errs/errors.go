package errs

import "errors"

var (
	ErrBadArgument = errors.New("blockheap: bad argument")
	ErrNoSpace     = errors.New("blockheap: no space")
	ErrClosed      = errors.New("blockheap: closed")
)
