package pego

// decodeEscape translates the character following a backslash inside a
// string literal or character class into the byte it denotes, shared by
// the grammar and regex source parsers. ok is false for an escape neither
// front end recognizes.
func decodeEscape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '0':
		return 0, true
	case '\\', '\'', '"', '[', ']', '-', '.', '*', '+', '?', '|', '(', ')', '^', '$':
		return c, true
	}
	return 0, false
}

// namedClass resolves a `\d \D \w \W \s \S` escape to the set of bytes it
// matches (singles/ranges) plus whether the class is negated. Only the
// regex front end uses it; the grammar front end's class syntax does not
// recognize named classes.
func namedClass(c byte) (gCharClass, bool) {
	switch c {
	case 'd':
		return gCharClass{ranges: []byteRange{{'0', '9'}}}, true
	case 'D':
		return gCharClass{ranges: []byteRange{{'0', '9'}}, negate: true}, true
	case 'w':
		return gCharClass{ranges: []byteRange{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}}, singles: []byte{'_'}}, true
	case 'W':
		return gCharClass{ranges: []byteRange{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}}, singles: []byte{'_'}, negate: true}, true
	case 's':
		return gCharClass{singles: []byte{' ', '\t', '\r', '\n', '\f', '\v'}}, true
	case 'S':
		return gCharClass{singles: []byte{' ', '\t', '\r', '\n', '\f', '\v'}, negate: true}, true
	}
	return gCharClass{}, false
}
