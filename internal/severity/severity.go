// Package severity provides the severity levels attached to diagnostics
// reported while resolving schemas and generating models.
//
// Only warnings and info messages are ever recorded as issues; anything
// fatal is returned as an error from the oaserrors package instead. The
// error level exists so that callers mirroring issues into a log can map
// them one to one.
package severity

// Severity indicates the severity level of a reported issue.
type Severity int

const (
	// SeverityError marks an issue that accompanies a fatal job error.
	SeverityError Severity = iota

	// SeverityWarning marks a recoverable condition: the offending schema,
	// contributor or path entry is skipped and processing continues.
	SeverityWarning

	// SeverityInfo marks progress notices ("Skipped X").
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}
