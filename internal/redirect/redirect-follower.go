package redirect

import (
	"github.com/RassulYunussov/forgeclient/common"
	internal_common "github.com/RassulYunussov/forgeclient/internal/common"
	local_errors "github.com/RassulYunussov/forgeclient/internal/errors"
)

const locationHeader = "Location"

// Follow re-targets spec at the Location of a 3xx outcome.
// Method, body and headers travel unchanged; the Location value is used verbatim.
func Follow(spec common.RequestSpec, outcome internal_common.Outcome) (common.RequestSpec, *local_errors.HttpError) {
	location := outcome.Headers.Get(locationHeader)
	if location == "" {
		return spec, local_errors.NewMissingLocationError(outcome.StatusCode, spec.URL(), outcome.Body)
	}
	return spec.WithURL(location), nil
}
