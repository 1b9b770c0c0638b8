// Package core provides the canonicalization and fixed-format encoding engine.
//
// # Error Codes Reference
//
// This file defines user-facing error messages with codes for support reference.
// Users can quote the code when reporting a rejected conversion.
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid shape: the body is not a header list plus rows
//	         Patterns: "missing or invalid headers/rows"
//
//	REQ002 - Missing sources: the dual flow needs both withholding and perception tables
//	         Patterns: "se requieren ambos archivos"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL004 - Missing column: a required column could not be resolved
//	         Patterns: "missing required column"
//
// # Format Errors (FMT001-FMT099, LEN001-LEN099)
//
//	FMT001 - Unknown format: no transform registered under that key
//	         Patterns: "unknown format"
//
//	LEN001 - Line length: an output record does not match its layout width
//	         Patterns: "line length mismatch"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large             Patterns: "file too large", "request body too large"
//	FILE002 - Invalid delimited text     Patterns: "invalid csv"
//	FILE003 - Invalid workbook           Patterns: "invalid workbook"
//	FILE004 - No file                    Patterns: "no file provided"
//	FILE005 - Empty file                 Patterns: "empty file"
//	FILE006 - Unsupported file type      Patterns: "unsupported file type"
//
// # Conversion Errors (CNV001-CNV099)
//
//	CNV002 - System busy                 Patterns: "too many conversions"
//	CNV004 - Request cancelled           Patterns: "context canceled"
//	CNV005 - Request timeout             Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Returned when no pattern matches. Check the logs for the technical error
// using the conversion id or request id.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns go before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-facing error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Request shape
	{
		pattern: "missing or invalid headers/rows",
		msg: UserMessage{
			Message: "Missing or invalid headers/rows",
			Action:  "Send a JSON object with a headers array and a rows array",
			Code:    "REQ001",
		},
	},
	{
		pattern: "se requieren ambos archivos",
		msg: UserMessage{
			Message: "Se requieren ambos archivos: Retenciones y Percepciones (con datos válidos).",
			Action:  "Adjunte la planilla de retenciones y la de percepciones",
			Code:    "REQ002",
		},
	},

	// Columns
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Faltan columnas requeridas en el archivo.",
			Action:  "Revise los encabezados del archivo",
			Code:    "VAL004",
		},
	},

	// Formats
	{
		pattern: "unknown format",
		msg: UserMessage{
			Message: "Unknown output format",
			Action:  "List the available formats at /api/formats",
			Code:    "FMT001",
		},
	},
	{
		pattern: "line length mismatch",
		msg: UserMessage{
			Message: "An output record does not match the required layout",
			Action:  "Please report this conversion id to support",
			Code:    "LEN001",
		},
	},

	// Files
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller periods",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller periods",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not valid delimited text",
			Action:  "Export the sheet as CSV separated by ';'",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid workbook",
		msg: UserMessage{
			Message: "File is not a readable workbook",
			Action:  "Save the file as .xlsx and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a file to convert",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a file with a header row and data rows",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Unsupported file type",
			Action:  "Upload a .csv, .txt or .xlsx file",
			Code:    "FILE006",
		},
	},

	// Conversion
	{
		pattern: "too many conversions",
		msg: UserMessage{
			Message: "System is busy processing other conversions",
			Action:  "Please wait a moment and try again",
			Code:    "CNV002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "CNV004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "CNV005",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Error processing request",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-facing message.
// Returns the ERR000 fallback when no pattern matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a display string: "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
