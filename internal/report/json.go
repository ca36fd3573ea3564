package report

import (
	"encoding/json"
	"os"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

// jsonReport wraps the scan result verbatim with the derived verdict, the
// structured counterpart of the rendered report.
type jsonReport struct {
	*model.ScanResult
	Overall Overall         `json:"overall"`
	Risk    model.RiskLevel `json:"riskLevel"`
}

func MarshalJSON(res *model.ScanResult, overall Overall, risk model.RiskLevel) ([]byte, error) {
	return json.MarshalIndent(jsonReport{ScanResult: res, Overall: overall, Risk: risk}, "", "  ")
}

func WriteJSON(path string, res *model.ScanResult, overall Overall, risk model.RiskLevel) error {
	data, err := MarshalJSON(res, overall, risk)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
