package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	return jf.marshal(compSet)
}

// FormatSweep generates JSON output for a price sweep
func (jf *JSONFormatter) FormatSweep(sweep *SweepResult) (string, error) {
	return jf.marshal(sweep)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
