package info

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownProfile is returned when a profile name is not in the catalog
var ErrUnknownProfile = errors.New("unknown profile")

const (
	courseSeminar = "Seminario de Sistemas 1"
	courseGroup   = "Seminario de sistemas 1 A"
	group11       = "Grupo 11"
)

// catalog holds the built-in profiles. Each entry builds a fresh value so
// callers can never modify the catalog.
var catalog = map[string]func() Profile{
	"api1": func() Profile {
		return Profile{
			Name:   "api1",
			Port:   3000,
			Schema: SchemaNested,
			Service: &ServiceInfo{
				Name:      "API 1",
				Version:   "1.0.0",
				Language:  "Go",
				Framework: "Gin",
				Student: map[string]string{
					"nombre": "[Tu Nombre]",
					"carne":  "[Tu Carné]",
					"grupo":  "[Tu Grupo]",
				},
				University:  "Universidad San Carlos de Guatemala",
				Faculty:     "Facultad de Ingeniería",
				Course:      courseSeminar,
				Description: "Esta es la API 1 desarrollada en Go como parte de la hoja de trabajo #1 sobre balanceadores de carga.",
			},
		}
	},
	"maquina1": func() Profile {
		return Profile{
			Name:   "maquina1",
			Port:   5000,
			Schema: SchemaFlat,
			Instance: &InstanceInfo{
				Instance: "Maquina 1 - API 1",
				Course:   courseGroup,
				Group:    group11,
			},
		}
	},
	// FastAPI deployment of maquina2: same record, different surface
	"maquina2-fastapi": func() Profile {
		return Profile{
			Name:   "maquina2-fastapi",
			Port:   8000,
			Schema: SchemaFlat,
			Routes: Routes{
				Check:     "/health",
				Info:      "/get-data",
				CheckBody: CheckBodyJSON,
			},
			Instance: &InstanceInfo{
				Instance: "Maquina 2 - API 2",
				Course:   courseGroup,
				Group:    group11,
			},
		}
	},
	"maquina2": func() Profile {
		return Profile{
			Name:   "maquina2",
			Port:   5000,
			Schema: SchemaFlat,
			Instance: &InstanceInfo{
				Instance: "Maquina 2 - API 2",
				Course:   courseGroup,
				Group:    group11,
			},
		}
	},
}

// Builtin returns the named profile from the catalog
func Builtin(name string) (Profile, error) {
	build, ok := catalog[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownProfile, name, Names())
	}
	return build(), nil
}

// Names returns the catalog profile names in sorted order
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the profile loaded from file when set, otherwise the
// built-in profile called name
func Resolve(name, file string) (Profile, error) {
	if file != "" {
		return LoadFile(file)
	}
	return Builtin(name)
}
