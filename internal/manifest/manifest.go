// Package manifest implements the versioned textual manifest codec (§4.A):
// encode/decode between YAML documents on disk and typed manifest structs,
// with deterministic field ordering and a migration hook for older
// apiVersion strings. It knows nothing about entity lifecycles or
// repository placement; internal/domain and internal/repo build on top.
package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CurrentAPIVersion is the only apiVersion this codec writes.
const CurrentAPIVersion = "tasktaskrevolution.io/v1alpha1"

// Kind enumerates the manifest kinds understood by the workspace.
type Kind string

const (
	KindCompany  Kind = "Company"
	KindProject  Kind = "Project"
	KindTask     Kind = "Task"
	KindResource Kind = "Resource"
	KindConfig   Kind = "Config"
)

// Metadata carries the identity and audit fields common to every manifest.
type Metadata struct {
	ID        string `yaml:"id"`
	Code      string `yaml:"code,omitempty"`
	CreatedAt string `yaml:"createdAt"`
	UpdatedAt string `yaml:"updatedAt"`
	CreatedBy string `yaml:"createdBy,omitempty"`
}

// DecodeErrorKind classifies why a manifest failed to parse.
type DecodeErrorKind string

const (
	DecodeInvalidSyntax     DecodeErrorKind = "InvalidSyntax"
	DecodeUnknownKind       DecodeErrorKind = "UnknownKind"
	DecodeUnsupportedVer    DecodeErrorKind = "UnsupportedVersion"
	DecodeSchemaViolation   DecodeErrorKind = "SchemaViolation"
	DecodeSchemaFieldReason DecodeErrorKind = DecodeSchemaViolation
)

// DecodeError reports a manifest that could not be turned into a value.
type DecodeError struct {
	Kind   DecodeErrorKind
	Field  string
	Reason string
	Cause  error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case DecodeSchemaViolation:
		return fmt.Sprintf("manifest decode: schema violation field=%s reason=%s", e.Field, e.Reason)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("manifest decode: %s: %v", e.Kind, e.Cause)
		}
		return fmt.Sprintf("manifest decode: %s", e.Kind)
	}
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// header is the minimal shape needed to dispatch decoding to the right
// concrete manifest struct, and to run the version migration hook.
type header struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// peekHeader inspects apiVersion/kind without fully decoding the document.
func peekHeader(data []byte) (header, error) {
	var h header
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, &DecodeError{Kind: DecodeInvalidSyntax, Cause: err}
	}
	if h.Kind == "" {
		return h, &DecodeError{Kind: DecodeInvalidSyntax, Cause: fmt.Errorf("missing kind field")}
	}
	return h, nil
}

// migrate maps an older apiVersion's raw document forward to the current
// schema. There is currently only one shipped version, so migrate is a
// pass-through for CurrentAPIVersion and a hard failure otherwise; the hook
// exists so a future version bump has a single place to add translation
// logic instead of scattering version checks through the codec.
func migrate(data []byte, h header) ([]byte, error) {
	if h.APIVersion == CurrentAPIVersion {
		return data, nil
	}
	if h.APIVersion == "" {
		return nil, &DecodeError{Kind: DecodeUnsupportedVer, Cause: fmt.Errorf("apiVersion is required")}
	}
	return nil, &DecodeError{Kind: DecodeUnsupportedVer, Cause: fmt.Errorf("unsupported apiVersion %q", h.APIVersion)}
}

// UnknownFields reports spec keys present in a document but not consumed by
// the target struct, per §4.A's "reported as a structured warning" clause.
func UnknownFields(data []byte, known map[string]bool) ([]string, error) {
	var doc struct {
		Spec map[string]yaml.Node `yaml:"spec"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var extra []string
	for k := range doc.Spec {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	return extra, nil
}

// encode marshals v with yaml.v3, which preserves declared struct field
// order, giving the deterministic output §4.A and §8's round-trip laws
// require. A trailing newline is guaranteed even if yaml.Marshal's own
// output already ends in one.
func encode(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	s := string(out)
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s, nil
}
