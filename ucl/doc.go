// Package ucl implements the Universal Configuration Language: a
// line-oriented configuration format with sections, typed values, arithmetic
// and string expressions, cross-references, explicit type conversions, file
// inclusion, and a trailing defaults block.
//
// # Pipeline
//
// A document passes through fixed stages, in order:
//
//  1. Comment stripping: block comments (/* ... */) are removed first, then
//     line comments (// ...) outside quotes. Line numbers are preserved.
//  2. Include expansion: lines of the form include "path" splice in the
//     referenced file, recursively, resolved against one base directory.
//  3. Assembly: section headers ([a.b.c]) scope the key = value lines that
//     follow; a [Defaults] header starts the defaults block, which must be
//     last. Values spanning balanced { } or [ ] continue across lines.
//  4. Evaluation: each raw value resolves through an ordered pipeline of
//     environment references, type-conversion suffixes, expressions,
//     references, and literals.
//  5. Defaults: captured defaults entries fill keys that are missing or
//     null, in order, never replacing a present value.
//
// # Values
//
// Every evaluated value is one of six kinds: null, bool, number, string,
// sequence, or mapping. All numbers are float64. The zero Value is null.
//
//	port = 8080
//	name = "service"        // quotes stripped, escapes processed
//	ratio = (3 + 1) / 8     // expressions use + - * / % with ( )
//	url = host + ":" + port // + concatenates when either side is a string
//	debug = $ENV{DEBUG}     // environment reference, null when unset
//	count = "42".int        // explicit conversion suffix
//	peers = ["a", "b"]      // sequence, elements re-enter the pipeline
//	meta = {"k": "v"}       // mapping, strict JSON
//
// # References
//
// A bare dotted path resolves against the document assembled so far. When
// an absolute path fails, one retry prepends the referencing value's section
// path. Bracketed accessors index sequences ([0]) and mappings (["key"]),
// applied strictly left to right.
//
//	[Server]
//	base = 8000
//	port = base + 80        // relative: Server.base
//	first = Data.users[0]["name"]
//
// # Errors
//
// All failures belong to one family with four kinds, matchable with
// errors.Is: [ErrSyntax], [ErrReference], [ErrType], and [ErrInclusion].
// The first error aborts the parse.
package ucl
