package utils

import (
	"fmt"

	"github.com/fatih/color"
)

var blkColor = func(is ...interface{}) string {
	return CanColorize(color.New(color.FgHiCyan).SprintFunc())(is...)
}
var valColor = func(is ...interface{}) string {
	return CanColorize(color.New(color.FgHiYellow).SprintFunc())(is...)
}
var insColor = func(is ...interface{}) string {
	return CanColorize(color.New(color.FgHiWhite, color.Faint).SprintFunc())(is...)
}

// BlockString renders a block identifier.
func BlockString(id int) string {
	return blkColor(fmt.Sprintf("B%d", id))
}

// ValueString renders an abstract value.
func ValueString(v any) string {
	return valColor(fmt.Sprint(v))
}

// StatementString renders program text, e.g. statements or expressions.
func StatementString(v any) string {
	return insColor(fmt.Sprint(v))
}
