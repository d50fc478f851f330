package policy

import (
	"fmt"
	"time"

	"github.com/On-Jun9/ShutterSort/pkg/types"
)

// canonicalLayout is the name given to files renamed after their metadata timestamp.
const canonicalLayout = "20060102_150405"

// Decision is the result of reconciling the metadata and filename dates.
type Decision struct {
	// Date is the chosen date; nil when Skip is set.
	Date *types.CandidateDate
	// Rename is set when the file must be renamed to CanonicalName.
	Rename bool
	Skip   bool
	Reason string
}

// Reconcile picks the date for a file from the two extractor results.
//
// Agreeing dates keep the metadata candidate for its time precision. When the
// calendar dates disagree the metadata wins only if preferMetadata is set, and
// the file is then renamed after the metadata timestamp; otherwise the file is
// skipped.
func Reconcile(meta, name types.DateResult, preferMetadata bool) Decision {
	switch {
	case meta.Found() && name.Found():
		if meta.Date.SameDay(*name.Date) {
			return Decision{Date: meta.Date}
		}
		if preferMetadata {
			return Decision{Date: meta.Date, Rename: true}
		}
		return Decision{
			Skip: true,
			Reason: fmt.Sprintf("date from metadata (%s) and from filename (%s) are different",
				meta.Date.Time.Format("2006-01-02"), name.Date.Time.Format("2006-01-02")),
		}
	case meta.Found():
		return Decision{Date: meta.Date}
	case name.Found():
		return Decision{Date: name.Date}
	default:
		return Decision{Skip: true, Reason: "cannot extract date from metadata or filename"}
	}
}

// CanonicalName returns YYYYMMDD_HHMMSS followed by the extension of original.
func CanonicalName(t time.Time, original string) string {
	_, ext := types.SplitName(original)
	return t.Format(canonicalLayout) + ext
}

// CandidateName returns name for counter 0 and <stem>_NN<ext> afterwards.
func CandidateName(name string, counter int) string {
	if counter == 0 {
		return name
	}
	stem, ext := types.SplitName(name)
	return fmt.Sprintf("%s_%02d%s", stem, counter, ext)
}
