package tree

import (
	"fmt"
	"sort"
	"strings"
)

// WriteKeyWord writes the `keyWord` into writer.
// `keyWord` will be converted format(uppercase and lowercase for now) according to `RestoreFlags`.
func (ctx *FmtCtx) WriteKeyWord(keyWord string) {
	switch {
	case ctx.Flags.HasKeyWordUppercaseFlag():
		keyWord = strings.ToUpper(keyWord)
	case ctx.Flags.HasKeyWordLowercaseFlag():
		keyWord = strings.ToLower(keyWord)
	}
	fmt.Fprint(ctx.Builder, keyWord)
}

// WriteStringValue writes the string into writer
// `str` may be wrapped in quotes and escaped according to RestoreFlags.
func (ctx *FmtCtx) WriteStringValue(str string) (int, error) {
	if ctx.Flags.HasStringEscapeBackslashFlag() {
		str = strings.Replace(str, `\`, `\\`, -1)
	}
	quotes := ""
	switch {
	case ctx.Flags.HasStringSingleQuotesFlag():
		str = strings.Replace(str, `'`, `''`, -1)
		quotes = `'`
	case ctx.Flags.HasStringDoubleQuotesFlag():
		str = strings.Replace(str, `"`, `""`, -1)
		quotes = `"`
	}
	return fmt.Fprint(ctx.Builder, quotes, str, quotes)
}

// WriteName writes the name into writer
// `name` maybe wrapped in quotes and escaped according to RestoreFlags.
func (ctx *FmtCtx) WriteName(name string) {
	switch {
	case ctx.Flags.HasNameUppercaseFlag():
		name = strings.ToUpper(name)
	case ctx.Flags.HasNameLowercaseFlag():
		name = strings.ToLower(name)
	}
	quotes := ""
	switch {
	case ctx.Flags.HasNameDoubleQuotesFlag():
		name = strings.Replace(name, `"`, `""`, -1)
		quotes = `"`
	case ctx.Flags.HasNameBackQuotesFlag():
		name = strings.Replace(name, "`", "``", -1)
		quotes = "`"
	}
	fmt.Fprint(ctx.Builder, quotes, name, quotes)
}

// WriteProperties writes `(k1 = v1, k2 = v2)` with keys in lexical order.
func (ctx *FmtCtx) WriteProperties(props map[string]string) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ctx.WriteByte('(')
	for i, k := range keys {
		if i > 0 {
			ctx.WritePlain(", ")
		}
		ctx.WriteStringValue(k)
		ctx.WritePlain(" = ")
		ctx.WriteStringValue(props[k])
	}
	ctx.WriteByte(')')
}

// WritePlain writes the plain text into writer without any handling.
func (ctx *FmtCtx) WritePlain(plainText string) {
	fmt.Fprint(ctx.Builder, plainText)
}

// WritePlainf write the plain text into writer without any handling.
func (ctx *FmtCtx) WritePlainf(format string, a ...interface{}) {
	fmt.Fprintf(ctx.Builder, format, a...)
}

func (ctx *FmtCtx) ToString() string {
	return ctx.String()
}

// -------------------------------------------------------------------------------------
// RestoreFlags mark the Restore format
type RestoreFlags uint64

// Mutually exclusive group of `RestoreFlags`:
// [RestoreStringSingleQuotes, RestoreStringDoubleQuotes]
// [RestoreKeyWordUppercase, RestoreKeyWordLowercase]
// [RestoreNameUppercase, RestoreNameLowercase]
// [RestoreNameDoubleQuotes, RestoreNameBackQuotes]
// The flag with the left position in each group has a higher priority.
const (
	RestoreStringSingleQuotes RestoreFlags = 1 << iota
	RestoreStringDoubleQuotes
	RestoreStringEscapeBackslash

	RestoreKeyWordUppercase
	RestoreKeyWordLowercase

	RestoreNameUppercase
	RestoreNameLowercase
	RestoreNameDoubleQuotes
	RestoreNameBackQuotes
)

const (
	// DefaultRestoreFlags is the default value of RestoreFlags.
	DefaultRestoreFlags = RestoreStringSingleQuotes | RestoreKeyWordUppercase | RestoreNameBackQuotes
)

func (rfg RestoreFlags) has(flag RestoreFlags) bool {
	return rfg&flag != 0
}

// HasStringSingleQuotesFlag returns a boolean indicating when `rf` has `RestoreStringSingleQuotes` flag.
func (rfg RestoreFlags) HasStringSingleQuotesFlag() bool {
	return rfg.has(RestoreStringSingleQuotes)
}

// HasStringDoubleQuotesFlag returns a boolean indicating whether `rf` has `RestoreStringDoubleQuotes` flag.
func (rfg RestoreFlags) HasStringDoubleQuotesFlag() bool {
	return rfg.has(RestoreStringDoubleQuotes)
}

// HasStringEscapeBackslashFlag returns a boolean indicating whether `rf` has `RestoreStringEscapeBackslash` flag.
func (rfg RestoreFlags) HasStringEscapeBackslashFlag() bool {
	return rfg.has(RestoreStringEscapeBackslash)
}

// HasKeyWordUppercaseFlag returns a boolean indicating whether `rf` has `RestoreKeyWordUppercase` flag.
func (rfg RestoreFlags) HasKeyWordUppercaseFlag() bool {
	return rfg.has(RestoreKeyWordUppercase)
}

// HasKeyWordLowercaseFlag returns a boolean indicating whether `rf` has `RestoreKeyWordLowercase` flag.
func (rfg RestoreFlags) HasKeyWordLowercaseFlag() bool {
	return rfg.has(RestoreKeyWordLowercase)
}

// HasNameUppercaseFlag returns a boolean indicating whether `rf` has `RestoreNameUppercase` flag.
func (rfg RestoreFlags) HasNameUppercaseFlag() bool {
	return rfg.has(RestoreNameUppercase)
}

// HasNameLowercaseFlag returns a boolean indicating whether `rf` has `RestoreNameLowercase` flag.
func (rfg RestoreFlags) HasNameLowercaseFlag() bool {
	return rfg.has(RestoreNameLowercase)
}

// HasNameDoubleQuotesFlag returns a boolean indicating whether `rf` has `RestoreNameDoubleQuotes` flag.
func (rfg RestoreFlags) HasNameDoubleQuotesFlag() bool {
	return rfg.has(RestoreNameDoubleQuotes)
}

// HasNameBackQuotesFlag returns a boolean indicating whether `rf` has `RestoreNameBackQuotes` flag.
func (rfg RestoreFlags) HasNameBackQuotesFlag() bool {
	return rfg.has(RestoreNameBackQuotes)
}
