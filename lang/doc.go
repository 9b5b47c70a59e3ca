// Package lang is the entry point to the snow scripting language.
//
// A snow program is a sequence of statements evaluated top to bottom:
//
//	# count down from three
//	n = 3
//	loop {
//		out n
//		n = n - 1
//		if n < 1 { break }
//	}
//	out "liftoff"
//
// Source text flows through three phases, each of which stops at its first
// error: [Lex] turns text into tokens, [Parse] builds the syntax tree, and
// [Run] evaluates it. Errors from every phase are *diag.Error values that
// carry a kind (LexError, SyntaxError, TypeError, ...) and the byte offset
// they refer to.
//
// [Compile] memoizes parsing by source hash, so running the same text again
// skips the lexer and parser.
//
// The subpackages hold each phase: [token], [lexer], [parser], [ast],
// [value], [interp] and diag.
package lang
