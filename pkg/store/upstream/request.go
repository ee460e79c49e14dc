package upstream

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	EndpointIndexAttributes = "GetIndexAttributes"
	EndpointPeriodList      = "GetPeriodList"
	EndpointSegmentList     = "GetSegmentList"
	EndpointIndexTreeData   = "GetIndexTreeData"
	EndpointIndexPeriods    = "GetIndexPeriods"
)

// Params holds query parameters. Values are strings or integers.
type Params map[string]any

func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		switch val := v.(type) {
		case string:
			values.Set(k, val)
		case int:
			values.Set(k, strconv.Itoa(val))
		case int64:
			values.Set(k, strconv.FormatInt(val, 10))
		default:
			values.Set(k, fmt.Sprint(val))
		}
	}
	return values
}

// Request is a single upstream query.
type Request struct {
	Endpoint string
	Params   Params
}
