package penalties

import (
	"errors"
	"fmt"
)

// MissingDataError reports a requested season without a backing table.
type MissingDataError struct {
	Season string
	Table  string
	Err    error
}

func (e *MissingDataError) Error() string {
	msg := fmt.Sprintf("no %s data for season %s", e.Table, e.Season)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingDataError) Unwrap() error { return e.Err }

// UnknownTeamError reports a selector that is neither a catalog team nor the league.
type UnknownTeamError struct {
	Selector string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team %q", e.Selector)
}

// UnknownPenaltyError reports a penalty outside the tracked categories.
type UnknownPenaltyError struct {
	Penalty string
}

func (e *UnknownPenaltyError) Error() string {
	return fmt.Sprintf("unknown penalty %q", e.Penalty)
}

// EmptySelectionError reports that no seasons were chosen.
type EmptySelectionError struct {
	Field string
}

func (e *EmptySelectionError) Error() string {
	field := e.Field
	if field == "" {
		field = "seasons"
	}
	return "no " + field + " selected"
}

// AsMissingData unwraps err into a MissingDataError.
func AsMissingData(err error) (*MissingDataError, bool) {
	var target *MissingDataError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsUnknownTeam reports whether err is an UnknownTeamError.
func IsUnknownTeam(err error) bool {
	var target *UnknownTeamError
	return errors.As(err, &target)
}

// IsUnknownPenalty reports whether err is an UnknownPenaltyError.
func IsUnknownPenalty(err error) bool {
	var target *UnknownPenaltyError
	return errors.As(err, &target)
}

// IsEmptySelection reports whether err is an EmptySelectionError.
func IsEmptySelection(err error) bool {
	var target *EmptySelectionError
	return errors.As(err, &target)
}
