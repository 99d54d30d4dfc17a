package pego

// Flags is the public, bitmask-typed knob set a caller passes to Grammar
// and Language.
type Flags int

const (
	// DEFAULT applies the standard compilation pipeline: built-in rule
	// injection, implicit whitespace handling between sequence elements.
	DEFAULT Flags = 0
	// PREDICTIVE wraps every rule body in Predictive, disabling
	// backtracking across rule boundaries (an LL(1)-style grammar).
	PREDICTIVE Flags = 1 << iota
	// WHITESPACE_SENSITIVE disables the implicit whitespace-skipping pass,
	// so literals and rule references must consume surrounding space
	// explicitly.
	WHITESPACE_SENSITIVE
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// RegexFlags is the bitmask knob set Regex accepts, mirroring Flags'
// all-bits-off default.
type RegexFlags int

const (
	// REGEX_DEFAULT excludes `\n` from `.` and anchors `^`/`$` to the
	// whole input only.
	REGEX_DEFAULT RegexFlags = 0
	// MULTILINE makes `^`/`$` match at line boundaries (just after/before
	// a `\n`) in addition to start/end of input.
	MULTILINE RegexFlags = 1 << iota
	// DOTALL makes `.` match `\n` as well as every other byte.
	DOTALL
)

func (f RegexFlags) has(bit RegexFlags) bool { return f&bit != 0 }

// Config is a string-keyed, type-checked settings bag driving the grammar
// compiler's optional passes. Public callers use Flags; Config is the
// richer internal knob set Flags gets translated into, and is also
// addressable directly for compiler-development use (tests).
type Config map[string]*cfgVal

// NewConfig builds a Config primed with the default pass toggles.
func NewConfig() *Config {
	m := make(Config)
	m.SetBool("grammar.add_builtins", true)
	m.SetBool("grammar.inject_whitespace", true)
	m.SetBool("grammar.capture_spacing", true)
	m.SetInt("compiler.optimize", 1)
	m.SetBool("grammar.predictive", false)
	return &m
}

// configFromFlags builds a Config seeded from the public Flags bitmask.
func configFromFlags(f Flags) *Config {
	cfg := NewConfig()
	if f.has(WHITESPACE_SENSITIVE) {
		cfg.SetBool("grammar.inject_whitespace", false)
		cfg.SetBool("grammar.capture_spacing", false)
	}
	if f.has(PREDICTIVE) {
		cfg.SetBool("grammar.predictive", true)
	}
	return cfg
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
	cfgValType_String
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValType_Undefined: "undefined",
		cfgValType_Bool:      "bool",
		cfgValType_Int:       "int",
		cfgValType_String:    "string",
	}[vt]
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValType_Undefined {
		usagef("pego: can't assign %s to a %s config value", vt, v.typ)
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		usagef("pego: can't retrieve a %s from a %s config value", vt, v.typ)
	}
}

func (c *Config) SetBool(path string, v bool) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_Bool)
	(*c)[path].asBool = v
}

func (c *Config) SetInt(path string, v int) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_Int)
	(*c)[path].asInt = v
}

func (c *Config) SetString(path string, v string) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_String)
	(*c)[path].asString = v
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Bool)
		return val.asBool
	}
	usagef("pego: bool setting %q does not exist", path)
	return false
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Int)
		return val.asInt
	}
	usagef("pego: int setting %q does not exist", path)
	return 0
}

func (c *Config) GetString(path string) string {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_String)
		return val.asString
	}
	usagef("pego: string setting %q does not exist", path)
	return ""
}
