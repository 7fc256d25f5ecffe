// Package info provides the metadata document served on /info.
//
// A Profile describes one deployed instance: its name, default port, the
// schema of its /info payload and the record itself. Two schemas exist:
//   - nested: ServiceInfo, with a student sub-object
//   - flat: InstanceInfo, three top-level keys
//
// Profiles come from the built-in catalog or from a YAML file. At startup
// the selected profile is encoded once into a Document, which is what the
// HTTP layer serves.
//
// Example usage:
//
//	profile, err := info.Resolve("api1", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := profile.Document()
package info
