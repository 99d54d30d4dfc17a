package pego

// whitespaceParser matches (and discards) zero or more space/tab/
// carriage-return/newline bytes. It is spliced between a sequence's
// elements by the compiler unless the grammar was compiled
// WHITESPACE_SENSITIVE.
func whitespaceParser() Parser {
	return Many(Satisfy("whitespace", isSpaceByte), discardFold)
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func discardFold([]Value) Value { return nil }

// comment matches a `#`-to-end-of-line comment, used by skipFormatting.
func commentParser() Parser {
	return And(discardFold,
		Char('#'),
		Many(Satisfy("comment body", func(b byte) bool { return b != '\n' }), discardFold),
	)
}

// skipFormatting consumes any run of whitespace and comments, the
// grammar source parser's equivalent of the compiled grammar's own
// injected inter-token whitespace.
func skipFormatting() Parser {
	unit := Or(Satisfy("ws", isSpaceByte), commentParser())
	return Many(unit, discardFold)
}
