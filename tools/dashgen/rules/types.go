// Package rules generates the dvf-estimator recording and alert rules as
// Prometheus Operator PrometheusRule resources.
package rules

const (
	apiVersion = "monitoring.coreos.com/v1"
	kind       = "PrometheusRule"

	// RulesSelector is the label the Prometheus instance selects rule
	// resources by.
	RulesSelector = "system-rules-prometheus"

	// PartOf tags every generated resource with the owning service.
	PartOf = "dvf-estimator"

	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// PrometheusRule is the Prometheus Operator custom resource.
type PrometheusRule struct {
	APIVersion string                 `yaml:"apiVersion"`
	Kind       string                 `yaml:"kind"`
	Metadata   PrometheusRuleMetadata `yaml:"metadata"`
	Spec       PrometheusRuleSpec     `yaml:"spec"`
}

// PrometheusRuleMetadata holds the resource name and labels.
type PrometheusRuleMetadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// PrometheusRuleSpec holds the rule groups.
type PrometheusRuleSpec struct {
	Groups []RuleGroup `yaml:"groups"`
}

// RuleGroup is a named set of rules evaluated together.
type RuleGroup struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is either a recording rule (Record set) or an alert (Alert set).
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// newPrometheusRule wraps one rule group in a resource labelled for the
// dvf-estimator rules selector.
func newPrometheusRule(name string, group RuleGroup) PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: PrometheusRuleMetadata{
			Name: name,
			Labels: map[string]string{
				"prometheus":                RulesSelector,
				"app.kubernetes.io/part-of": PartOf,
			},
		},
		Spec: PrometheusRuleSpec{Groups: []RuleGroup{group}},
	}
}

func record(name, expr string) Rule {
	return Rule{Record: name, Expr: expr}
}

func alert(name, expr, pending, severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    pending,
		Labels: map[string]string{"severity": severity},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}
