// Package core provides the canonicalization and fixed-format encoding engine
// for Argentine tax filings.
//
// This package contains the domain logic independent of any transport. It
// can be used by web handlers, the CLI, or tests without modification.
//
// # Architecture
//
// A conversion flows through four stages:
//
//   - Header resolution: [Resolve] maps free-form header text to semantic
//     [Field] values using aliases and a keyword fallback.
//   - Canonicalization: [CanonicalizeSingle] and [CanonicalizeDual] turn raw
//     rows into [CanonicalRow] values with normalized dates, parsed amounts
//     and catalog rates.
//   - Sequencing: [SortRows] orders rows by date, keeping input order for ties.
//   - Encoding: each format renders rows through a [Layout] or a delimited
//     writer and returns its lines.
//
// # Format Registry
//
// Formats are registered at init time using [Register]. Each
// [FormatDefinition] carries its layout facts and a transform:
//
//	core.Register(core.FormatDefinition{
//	    Info: core.FormatInfo{Key: "suss", Group: "AFIP", Label: "SUSS"},
//	    Transform: transformSUSS,
//	})
//
// Import the formats package for its side effects to populate the registry.
//
// # Service
//
// [Service.Transform] is the single entry point. It checks preconditions,
// bounds concurrency with a [ConversionLimiter], runs the transform, checks
// record widths and joins the lines with the format separator.
//
// # Error Handling
//
// Precondition failures are typed ([MissingColumnsError], [LineLengthError])
// or sentinel values ([ErrInvalidShape], [ErrMissingSources]). [MapError]
// maps any of them to a user-facing message with a support code.
package core
