package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// JSONBenchmarks reads benchmarks out of a JSON document, typically an
// industry statistics file published online.
//
// Each ratio is located in the document by a JSONPath expression, e.g.
//
//	{"retail": {"liquidity": {"current": 1.4}}}
//
// is read with "$.retail.liquidity.current".
type JSONBenchmarks struct {
	// Location is a file path, or an http(s) URL.
	Location string
	// Paths holds one JSONPath expression per ratio. Ratios without a path
	// default to "$.<ratio name>".
	Paths map[Ratio]string
	// Client is used to fetch URL locations. Defaults to Daily().
	Client *http.Client
}

func (j *JSONBenchmarks) Benchmarks(ctx context.Context) (Benchmarks, error) {
	doc, err := j.document(ctx)
	if err != nil {
		return nil, err
	}
	b := make(Benchmarks)
	for _, r := range Ratios() {
		path, ok := j.Paths[r]
		if !ok {
			path = "$." + r.String()
		}
		v, err := lookupDecimal(doc, path)
		if err != nil {
			return nil, fmt.Errorf("benchmark %s in %q: %w", r, j.Location, err)
		}
		b[r] = v
	}
	return b, nil
}

func (j *JSONBenchmarks) document(ctx context.Context) (any, error) {
	var doc any
	if strings.HasPrefix(j.Location, "http://") || strings.HasPrefix(j.Location, "https://") {
		client := j.Client
		if client == nil {
			client = Daily()
		}
		if err := jwget(ctx, client, j.Location, &doc); err != nil {
			return nil, fmt.Errorf("fetching benchmarks: %w", err)
		}
		return doc, nil
	}
	content, err := os.ReadFile(j.Location)
	if err != nil {
		return nil, fmt.Errorf("reading benchmarks: %w", err)
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decoding benchmarks %q: %w", j.Location, err)
	}
	return doc, nil
}

// lookupDecimal evaluates path in doc and converts the result to a decimal.
func lookupDecimal(doc any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("evaluating %q: %w", path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return decimal.Decimal{}, fmt.Errorf("%q matches nothing", path)
		}
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		// some publishers quote their numbers, sometimes with a percent sign.
		s := strings.TrimSuffix(strings.TrimSpace(v), "%")
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return decimal.Decimal{}, fmt.Errorf("%q is not a number: %q", path, v)
		}
		return decimal.NewFromString(s)
	default:
		return decimal.Decimal{}, fmt.Errorf("%q is not a number: %v", path, jval)
	}
}
