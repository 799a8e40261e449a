package commands

import (
	"errors"
	"strconv"
)

// ErrTaskIDRequired indicates no task ID was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ErrInvalidTaskID indicates the argument did not parse as a positive
// integer ID.
var ErrInvalidTaskID = errors.New("invalid task id")

// ParseTaskID parses the server-assigned task ID from positional args.
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidTaskID
	}
	return id, nil
}
