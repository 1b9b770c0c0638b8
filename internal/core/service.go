package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/JonMunkholm/parseos/internal/logging"
	"github.com/google/uuid"
)

// ServiceOptions configures a Service.
type ServiceOptions struct {
	MaxConcurrent    int           // Parallel conversions; DefaultMaxConcurrent when zero
	MaxWait          time.Duration // Wait for a slot; DefaultMaxWaitTime when zero
	StrictLineLength bool          // Fail instead of warn on record width mismatches
	Overrides        AliasOverrides
}

// Service runs conversions against the format registry.
// It is safe for concurrent use.
type Service struct {
	limiter   *ConversionLimiter
	strict    bool
	overrides AliasOverrides
}

// NewService creates a Service.
func NewService(opts ServiceOptions) *Service {
	return &Service{
		limiter:   NewConversionLimiter(opts.MaxConcurrent, opts.MaxWait),
		strict:    opts.StrictLineLength,
		overrides: opts.Overrides,
	}
}

// Formats returns information about all registered formats.
func (s *Service) Formats() []FormatInfo {
	defs := All()
	infos := make([]FormatInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// Format returns the info of a single format.
func (s *Service) Format(key string) (FormatInfo, bool) {
	def, ok := Get(key)
	if !ok {
		return FormatInfo{}, false
	}
	return def.Info, true
}

// LimiterStatus reports conversion slot usage for health checks.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForConversions blocks until in-flight conversions finish or ctx is done.
func (s *Service) WaitForConversions(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// Transform converts sources into the text file of the format registered
// under key.
//
// Preconditions are checked before any row is touched: the format must
// exist and every source it needs must be a header list plus rows. The
// output text never starts with a byte order mark.
func (s *Service) Transform(ctx context.Context, key string, sources Sources) (*Result, error) {
	def, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, key)
	}

	if err := ValidateSources(def.Info, sources); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	conversionID := uuid.New().String()
	logger := logging.WithFields(ctx,
		"conversion_id", conversionID,
		"format", key,
	)

	start := time.Now()
	logger.Info("conversion started", "rows_in", rowCount(def.Info, sources))

	lines, err := s.run(def, sources, logger)
	if err != nil {
		return nil, err
	}

	warnings, err := checkLineLengths(def.Info, lines, s.strict)
	if err != nil {
		logger.Error("record width mismatch", "error", err)
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("record width mismatch", "detail", w)
	}

	text := Join(def.Info, lines)

	logger.Info("conversion completed",
		"lines_out", len(lines),
		"bytes", len(text),
		"duration", time.Since(start),
	)

	return &Result{
		ConversionID: conversionID,
		Format:       key,
		Text:         text,
		Lines:        len(lines),
		Warnings:     warnings,
	}, nil
}

// run calls the format transform, turning panics into ErrInternal.
func (s *Service) run(def FormatDefinition, sources Sources, logger *slog.Logger) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("transform panicked", "panic", r)
			lines, err = nil, ErrInternal
		}
	}()

	in := Input{Format: def.Info.Key, Sources: sources, Overrides: s.overrides}
	lines, err = def.Transform(in)
	if err != nil {
		logger.Warn("conversion rejected", "error", err)
		return nil, err
	}
	return lines, nil
}

func rowCount(info FormatInfo, sources Sources) int {
	n := 0
	for _, name := range info.Sources {
		n += len(sources[name].Rows)
	}
	return n
}

// Join concatenates lines with the format separator. An empty slice yields
// the empty string, never a lone separator.
func Join(info FormatInfo, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	sep := info.Separator
	if sep == "" {
		sep = "\n"
	}
	text := strings.Join(lines, sep)
	if info.Trailing {
		text += sep
	}
	return StripBOM(text)
}

// checkLineLengths compares each line with the declared record width.
// In strict mode the first mismatch is returned as a *LineLengthError.
func checkLineLengths(info FormatInfo, lines []string, strict bool) ([]string, error) {
	if info.LineLength <= 0 {
		return nil, nil
	}
	var warnings []string
	for i, line := range lines {
		got := utf8.RuneCountInString(line)
		if got == info.LineLength {
			continue
		}
		lerr := &LineLengthError{Format: info.Key, Line: i + 1, Want: info.LineLength, Got: got}
		if strict {
			return nil, lerr
		}
		warnings = append(warnings, lerr.Error())
	}
	return warnings, nil
}
