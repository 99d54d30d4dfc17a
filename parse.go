package pego

import "io"

// Parse runs p against an in-memory string source named file, for use in
// error messages. It returns the parsed Value, or a non-nil *Error on
// either a parse failure or a usage error (e.g. an undefined Ref).
func Parse(file, src string, p Parser) (v Value, err *Error) {
	return run(OpenString(file, src), p)
}

// ParseBytes is Parse for a byte slice source.
func ParseBytes(file string, src []byte, p Parser) (v Value, err *Error) {
	return run(OpenBytes(file, src), p)
}

// ParseStream runs p against a forward-only byte source such as a pipe or
// network connection.
func ParseStream(file string, r io.Reader, p Parser) (v Value, err *Error) {
	return run(OpenStream(file, r), p)
}

func run(in *Input, p Parser) (v Value, err *Error) {
	defer func() {
		if rec := recover(); rec != nil {
			up, ok := rec.(usagePanic)
			if !ok {
				panic(rec)
			}
			v = nil
			err = &Error{File: in.Name(), Row: in.Position().Row, Col: in.Position().Col,
				Offset: in.Pos(), Kind: KindUsage, Message: up.msg}
		}
	}()
	v, err = p.eval(in)
	if err != nil {
		err.committed = false
		return nil, err
	}
	if !in.EOF() {
		return nil, in.failExpect("end of input")
	}
	return v, nil
}
