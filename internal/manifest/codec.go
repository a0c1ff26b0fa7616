package manifest

import "gopkg.in/yaml.v3"

// Any is the sum type returned by DecodeAny; exactly one field is set.
type Any struct {
	Kind     Kind
	Company  *CompanyManifest
	Project  *ProjectManifest
	Task     *TaskManifest
	Resource *ResourceManifest
	Config   *ConfigManifest
}

// DecodeAny decodes a manifest of unknown kind, dispatching on the header's
// kind field, and running the version migration hook first.
func DecodeAny(data []byte) (Any, error) {
	h, err := peekHeader(data)
	if err != nil {
		return Any{}, err
	}
	migrated, err := migrate(data, h)
	if err != nil {
		return Any{}, err
	}
	switch Kind(h.Kind) {
	case KindCompany:
		m, err := decodeInto[CompanyManifest](migrated)
		return Any{Kind: KindCompany, Company: m}, err
	case KindProject:
		m, err := decodeInto[ProjectManifest](migrated)
		return Any{Kind: KindProject, Project: m}, err
	case KindTask:
		m, err := decodeInto[TaskManifest](migrated)
		return Any{Kind: KindTask, Task: m}, err
	case KindResource:
		m, err := decodeInto[ResourceManifest](migrated)
		return Any{Kind: KindResource, Resource: m}, err
	case KindConfig:
		m, err := decodeInto[ConfigManifest](migrated)
		return Any{Kind: KindConfig, Config: m}, err
	default:
		return Any{}, &DecodeError{Kind: DecodeUnknownKind, Cause: unknownKindErr(h.Kind)}
	}
}

func decodeInto[T any](data []byte) (*T, error) {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &DecodeError{Kind: DecodeInvalidSyntax, Cause: err}
	}
	return &v, nil
}

type unknownKindErr string

func (e unknownKindErr) Error() string { return "unknown kind: " + string(e) }

// DecodeCompany decodes a Company manifest, verifying its kind.
func DecodeCompany(data []byte) (*CompanyManifest, error) {
	a, err := DecodeAny(data)
	if err != nil {
		return nil, err
	}
	if a.Kind != KindCompany {
		return nil, &DecodeError{Kind: DecodeSchemaViolation, Field: "kind", Reason: "expected Company"}
	}
	return a.Company, nil
}

// DecodeProject decodes a Project manifest, verifying its kind.
func DecodeProject(data []byte) (*ProjectManifest, error) {
	a, err := DecodeAny(data)
	if err != nil {
		return nil, err
	}
	if a.Kind != KindProject {
		return nil, &DecodeError{Kind: DecodeSchemaViolation, Field: "kind", Reason: "expected Project"}
	}
	return a.Project, nil
}

// DecodeTask decodes a Task manifest, verifying its kind.
func DecodeTask(data []byte) (*TaskManifest, error) {
	a, err := DecodeAny(data)
	if err != nil {
		return nil, err
	}
	if a.Kind != KindTask {
		return nil, &DecodeError{Kind: DecodeSchemaViolation, Field: "kind", Reason: "expected Task"}
	}
	return a.Task, nil
}

// DecodeResource decodes a Resource manifest, verifying its kind.
func DecodeResource(data []byte) (*ResourceManifest, error) {
	a, err := DecodeAny(data)
	if err != nil {
		return nil, err
	}
	if a.Kind != KindResource {
		return nil, &DecodeError{Kind: DecodeSchemaViolation, Field: "kind", Reason: "expected Resource"}
	}
	return a.Resource, nil
}

// DecodeConfig decodes the workspace Config manifest, verifying its kind.
func DecodeConfig(data []byte) (*ConfigManifest, error) {
	a, err := DecodeAny(data)
	if err != nil {
		return nil, err
	}
	if a.Kind != KindConfig {
		return nil, &DecodeError{Kind: DecodeSchemaViolation, Field: "kind", Reason: "expected Config"}
	}
	return a.Config, nil
}

// Encode* render a manifest to its canonical, deterministic text form.

func EncodeCompany(m *CompanyManifest) (string, error) {
	m.APIVersion = CurrentAPIVersion
	m.Kind = string(KindCompany)
	return encode(m)
}

func EncodeProject(m *ProjectManifest) (string, error) {
	m.APIVersion = CurrentAPIVersion
	m.Kind = string(KindProject)
	return encode(m)
}

func EncodeTask(m *TaskManifest) (string, error) {
	m.APIVersion = CurrentAPIVersion
	m.Kind = string(KindTask)
	return encode(m)
}

func EncodeResource(m *ResourceManifest) (string, error) {
	m.APIVersion = CurrentAPIVersion
	m.Kind = string(KindResource)
	return encode(m)
}

func EncodeConfig(m *ConfigManifest) (string, error) {
	m.APIVersion = CurrentAPIVersion
	m.Kind = string(KindConfig)
	return encode(m)
}
