// Package builder provides programmatic construction of documents and layers.
//
// The builder package enables users to construct configuration documents and
// layers in Go using a fluent API, as an alternative to parsing YAML files.
// Methods accumulate state and record problems as they occur; Build surfaces
// every accumulated problem in a single error.
//
// # Quick Start
//
// Build a document:
//
//	doc, err := builder.NewDocument("Deployment", "web").
//		APIVersion("apps/v1").
//		Label("app", "web").
//		Field("spec.replicas", 3).
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Build a layer and compose it:
//
//	layer, err := builder.NewLayer("production").
//		Patch(patch).
//		AddCommonLabel("stage", "prod").
//		SetNamePrefix("prod-").
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := compose.New(compose.DefaultConfig()).Compose(base, layer)
//
// # Error Accumulation
//
// Builder methods never return errors. Invalid arguments are recorded and
// the builder keeps chaining, so a whole construction reads as one
// expression. Build returns a BuildErrors collection describing every
// problem at once:
//
//	_, err := builder.NewDocument("", "").Build()
//	// builder: 2 error(s):
//	//   - configuration error for kind: kind cannot be empty
//	//   - configuration error for name: name cannot be empty
//
// Builders remain usable after Build: the returned document or layer holds
// copies of the builder's state, and later mutations only affect later
// Build calls.
package builder
