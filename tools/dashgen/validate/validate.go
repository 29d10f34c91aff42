// Package validate checks generated dashboards and rules against the set of
// metrics the service exports.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/dvf-estimator/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// are reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// histogramSuffixes are stripped before looking a series up in the known set.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// MetricNames parses expr and returns the metric names it selects.
func MetricNames(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			seen[vs.Name] = true
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Expr validates one expression, recording findings under label.
func Expr(label, expr string, known map[string]bool, r *Result) {
	names, err := MetricNames(expr)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("%s: invalid PromQL %q: %v", label, expr, err))
		return
	}
	for _, name := range names {
		if !isKnown(name, known) {
			r.Errors = append(r.Errors, fmt.Sprintf("%s: unknown metric %q", label, name))
		}
	}
}

// Dashboard validates every query expression of a built dashboard. The
// dashboard is inspected through its JSON form so any panel type is covered.
func Dashboard(dash any, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return r
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return r
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		r.Warnings = append(r.Warnings, "dashboard has no queries")
	}
	for i, expr := range exprs {
		Expr(fmt.Sprintf("query %d", i+1), expr, known, &r)
	}
	return r
}

func collectExprs(v any, out []string) []string {
	switch t := v.(type) {
	case map[string]any:
		if expr, ok := t["expr"].(string); ok && expr != "" {
			out = append(out, expr)
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = collectExprs(t[k], out)
		}
	case []any:
		for _, item := range t {
			out = collectExprs(item, out)
		}
	}
	return out
}

// Rules validates every rule expression in cr. Alert rules must carry a
// severity label and summary annotation.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			label := rule.Record
			if rule.Alert != "" {
				label = rule.Alert
				if rule.Labels["severity"] == "" {
					r.Errors = append(r.Errors, fmt.Sprintf("%s: missing severity label", label))
				}
				if rule.Annotations["summary"] == "" {
					r.Warnings = append(r.Warnings, fmt.Sprintf("%s: missing summary annotation", label))
				}
			}
			Expr(g.Name+"/"+label, rule.Expr, known, &r)
		}
	}
	return r
}
