// Code generated by "stringer --linecomment --type Kind --output kind_string.go"; DO NOT EDIT.

package ucl

import "strconv"

func _() {
	// An "invalid array index" compiler error signifies that the constant values have changed.
	// Re-run the stringer command to generate them again.
	var x [1]struct{}
	_ = x[KindNull-0]
	_ = x[KindBool-1]
	_ = x[KindNumber-2]
	_ = x[KindString-3]
	_ = x[KindSequence-4]
	_ = x[KindMapping-5]
}

const _Kind_name = "nullboolnumberstringsequencemapping"

var _Kind_index = [...]uint8{0, 4, 8, 14, 20, 28, 35}

func (i Kind) String() string {
	if i < 0 || i >= Kind(len(_Kind_index)-1) {
		return "Kind(" + strconv.FormatInt(int64(i), 10) + ")"
	}
	return _Kind_name[_Kind_index[i]:_Kind_index[i+1]]
}
