package info

import (
	"errors"
	"fmt"
	"strings"
)

// Schema identifies the shape of the /info payload
type Schema string

const (
	SchemaNested Schema = "nested"
	SchemaFlat   Schema = "flat"
)

// ServiceInfo is the nested /info payload
type ServiceInfo struct {
	Name        string            `json:"nombre" yaml:"nombre"`
	Version     string            `json:"version" yaml:"version"`
	Language    string            `json:"lenguaje" yaml:"lenguaje"`
	Framework   string            `json:"framework" yaml:"framework"`
	Student     map[string]string `json:"estudiante" yaml:"estudiante"`
	University  string            `json:"universidad" yaml:"universidad"`
	Faculty     string            `json:"facultad" yaml:"facultad"`
	Course      string            `json:"curso" yaml:"curso"`
	Description string            `json:"descripcion" yaml:"descripcion"`
}

// InstanceInfo is the flat /info payload
type InstanceInfo struct {
	Instance string `json:"Instancia" yaml:"Instancia"`
	Course   string `json:"Curso" yaml:"Curso"`
	Group    string `json:"Grupo" yaml:"Grupo"`
}

// CheckBody selects the liveness response format
type CheckBody string

const (
	CheckBodyText CheckBody = "text" // OK
	CheckBodyJSON CheckBody = "json" // {"status":"ok"}
)

const (
	DefaultCheckPath = "/check"
	DefaultInfoPath  = "/info"

	// MetricsPath is reserved for the Prometheus endpoint
	MetricsPath = "/metrics"
)

// Routes holds the paths an instance serves its check and document on.
// Empty fields take the defaults.
type Routes struct {
	Check     string    `yaml:"check"`
	Info      string    `yaml:"info"`
	CheckBody CheckBody `yaml:"check_body"`
}

// WithDefaults fills unset fields with /check, /info and a text body
func (r Routes) WithDefaults() Routes {
	if r.Check == "" {
		r.Check = DefaultCheckPath
	}
	if r.Info == "" {
		r.Info = DefaultInfoPath
	}
	if r.CheckBody == "" {
		r.CheckBody = CheckBodyText
	}
	return r
}

// Validate checks the routes after defaults are applied
func (r Routes) Validate() error {
	r = r.WithDefaults()

	for _, path := range []string{r.Check, r.Info} {
		if !strings.HasPrefix(path, "/") || strings.ContainsAny(path, ":*") {
			return fmt.Errorf("invalid route path: %q", path)
		}
		if path == MetricsPath {
			return fmt.Errorf("route path %s is reserved", MetricsPath)
		}
	}
	if r.Check == r.Info {
		return fmt.Errorf("check and info routes must differ: %s", r.Check)
	}
	if r.CheckBody != CheckBodyText && r.CheckBody != CheckBodyJSON {
		return fmt.Errorf("unsupported check body: %q (must be text or json)", r.CheckBody)
	}

	return nil
}

// Profile describes one deployed instance of the service
type Profile struct {
	Name     string        `yaml:"name"`
	Port     int           `yaml:"port"`
	Schema   Schema        `yaml:"schema"`
	Routes   Routes        `yaml:"routes"`
	Service  *ServiceInfo  `yaml:"service,omitempty"`
	Instance *InstanceInfo `yaml:"instance,omitempty"`
}

// Validate checks that the profile carries exactly the record its schema names
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("profile name is required")
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("profile %s: invalid port: %d", p.Name, p.Port)
	}
	if err := p.Routes.Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}

	switch p.Schema {
	case SchemaNested:
		if p.Service == nil || p.Instance != nil {
			return fmt.Errorf("profile %s: nested schema requires only a service record", p.Name)
		}
		if p.Service.Name == "" || p.Service.Version == "" || p.Service.Language == "" {
			return fmt.Errorf("profile %s: nombre, version and lenguaje are required", p.Name)
		}
	case SchemaFlat:
		if p.Instance == nil || p.Service != nil {
			return fmt.Errorf("profile %s: flat schema requires only an instance record", p.Name)
		}
		if p.Instance.Instance == "" {
			return fmt.Errorf("profile %s: Instancia is required", p.Name)
		}
	default:
		return fmt.Errorf("profile %s: unsupported schema: %q (must be nested or flat)", p.Name, p.Schema)
	}

	return nil
}

// Record returns the payload selected by the schema
func (p *Profile) Record() interface{} {
	if p.Schema == SchemaFlat {
		return p.Instance
	}
	return p.Service
}

// Document validates the profile and encodes its record
func (p *Profile) Document() (*Document, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return NewDocument(p.Record())
}
