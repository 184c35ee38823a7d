// Package config loads generation jobs.
//
// A job file is YAML or JSON and names a source document, an output target
// and the resolution settings applied to its schemas:
//
//	source: ./openapi.yaml
//	target: dart
//	default:
//	  classNamePrefix: Api
//	  importPrefix: my_app/models
//	  outputDirectory: lib/models
//	  typeCorrections:
//	    ApiUser.id: String
//	  nullabilityCorrections:
//	    ApiUser.email: true
//	schemas:
//	  Internal:
//	    ignore: true
//	paths:
//	  - {path: /users/{id}, method: get, status: "200", name: UserResponse}
//
// Correction keys are written as "Class.property", where Class is the
// generated (prefixed) class name and property is the field-cased property
// name. They are parsed into PropertyKey values when the job is loaded.
//
// Settings for a schema are Default overlaid with its entry in Schemas; see
// Job.SettingsFor.
package config
