package indenter

import "strings"

// The nesting level is shared between printers, so a value rendered while
// its container is being rendered is indented relative to the container.
var level = 0

func indent() string {
	return strings.Repeat("  ", level)
}

// Indenter accumulates a pretty-printed string.
type Indenter struct {
	buffer string
}

func Start(str string) *Indenter {
	return &Indenter{buffer: str}
}

func (i *Indenter) NestStrings(strs ...string) *Indenter {
	return i.NestStringsSep("", strs...)
}

func (i *Indenter) NestStringsSep(sep string, strs ...string) *Indenter {
	thunks := make([]func() string, len(strs))
	for j, s := range strs {
		s := s
		thunks[j] = func() string { return s }
	}
	return i.NestThunkedSep(sep, thunks...)
}

func (i *Indenter) NestThunked(strs ...func() string) *Indenter {
	return i.NestThunkedSep("", strs...)
}

// NestThunkedSep places every entry on its own line one level deeper, separated
// by sep. A single entry is kept inline. Thunks are forced at the nested level.
func (i *Indenter) NestThunkedSep(sep string, strs ...func() string) *Indenter {
	switch len(strs) {
	case 0:
		return i
	case 1:
		i.buffer += strs[0]()
		return i
	}

	level++
	for j, str := range strs {
		i.buffer += "\n" + indent() + str()
		if j < len(strs)-1 {
			i.buffer += sep
		}
	}
	level--
	i.buffer += "\n"
	return i
}

func (i *Indenter) End(str string) string {
	if strings.HasSuffix(i.buffer, "\n") {
		return i.buffer + indent() + str
	}
	return i.buffer + str
}
