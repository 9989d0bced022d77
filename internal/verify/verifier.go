package verify

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// DefaultReferencePath is where the reference corpus is looked up when no
// path is configured.
const DefaultReferencePath = "data/pi_one_mil.txt"

// Verifier checks computed digit strings against a reference file.
type Verifier struct {
	ReferencePath string
	logger        zerolog.Logger
}

// NewVerifier returns a Verifier reading path, or DefaultReferencePath when
// path is empty.
func NewVerifier(path string) *Verifier {
	if path == "" {
		path = DefaultReferencePath
	}
	return &Verifier{ReferencePath: path, logger: zerolog.Nop()}
}

// SetLogger configures debug logging.
func (v *Verifier) SetLogger(l zerolog.Logger) { v.logger = l }

// Verify compares computed with the reference file. A reference that cannot
// be opened or read does not fail the run: the report comes back Skipped
// with a ResourceError in Err.
func (v *Verifier) Verify(ctx context.Context, computed string) Report {
	_, span := otel.Tracer("github.com/agbru/picalc/internal/verify").Start(ctx, "verify.compare")
	defer span.End()

	f, err := os.Open(v.ReferencePath)
	if err != nil {
		v.logger.Debug().Err(err).Str("path", v.ReferencePath).Msg("reference unavailable")
		return v.skipped(err)
	}
	defer f.Close()

	report, err := Compare(computed, f)
	if err != nil {
		return v.skipped(err)
	}
	report.ReferencePath = v.ReferencePath
	span.SetAttributes(
		attribute.Int("accuracy", report.Accuracy),
		attribute.Int("digits", report.DigitsComputed),
	)
	v.logger.Debug().
		Str("path", v.ReferencePath).
		Int("accuracy", report.Accuracy).
		Int("digits", report.DigitsComputed).
		Msg("verification finished")
	return report
}

func (v *Verifier) skipped(err error) Report {
	return Report{
		ReferencePath: v.ReferencePath,
		Skipped:       true,
		Err:           apperrors.ResourceError{Kind: apperrors.ResourceReference, Path: v.ReferencePath, Cause: err},
	}
}
