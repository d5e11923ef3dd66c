package generator

import "strings"

// ParameterName derives the parameter for a member by toggling its leading
// underscore: "_clock" becomes "clock" and "clock" becomes "_clock". Only one
// underscore is stripped, so "__clock" becomes "_clock". A lone "_" becomes
// the empty string.
func ParameterName(memberName string) string {
	if strings.HasPrefix(memberName, "_") {
		return memberName[1:]
	}
	return "_" + memberName
}
