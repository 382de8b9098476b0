package batch

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// summaryDoc is the serializable view of a Summary. Failures carry their
// message explicitly because error values don't marshal.
type summaryDoc struct {
	Total     int          `json:"total" yaml:"total"`
	Completed int          `json:"completed" yaml:"completed"`
	Failed    int          `json:"failed" yaml:"failed"`
	Duration  string       `json:"duration" yaml:"duration"`
	Workers   int          `json:"workers" yaml:"workers"`
	Failures  []failureDoc `json:"failures,omitempty" yaml:"failures,omitempty"`
}

type failureDoc struct {
	File    string `json:"file" yaml:"file"`
	Stage   string `json:"stage" yaml:"stage"`
	Message string `json:"message" yaml:"message"`
}

func newSummaryDoc(s *Summary) summaryDoc {
	doc := summaryDoc{
		Total:     s.Total,
		Completed: s.Completed,
		Failed:    s.Failed,
		Duration:  s.Duration.Round(time.Millisecond).String(),
		Workers:   s.Workers,
	}
	for _, f := range s.Failures {
		doc.Failures = append(doc.Failures, failureDoc{
			File:    f.Path,
			Stage:   f.Kind.String(),
			Message: f.Message(),
		})
	}
	return doc
}

// formatSummary renders the summary in the specified format.
func formatSummary(s *Summary, format string) (string, error) {
	switch format {
	case "json":
		bts, err := json.MarshalIndent(newSummaryDoc(s), "", "  ")
		if err != nil {
			return "", err
		}
		return string(bts) + "\n", nil
	case "yaml":
		bts, err := yaml.Marshal(newSummaryDoc(s))
		return string(bts), err
	case "", "text":
		return formatSummaryText(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", format)
	}
}

// formatSummaryText renders a human-readable summary.
func formatSummaryText(s *Summary) string {
	var output strings.Builder
	fmt.Fprintf(&output, "Processed %d of %d images (%d failed) in %v\n",
		s.Completed, s.Total, s.Failed, s.Duration.Round(time.Millisecond))
	for _, f := range s.Failures {
		fmt.Fprintf(&output, "  FAILED %s (%s): %s\n", f.Path, f.Kind, f.Message())
	}
	return output.String()
}
