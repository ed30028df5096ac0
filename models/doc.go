// Package models holds the model registry consulted when a return type
// names a model rather than a primitive or container.
//
// A Registry is built explicitly at startup and handed to the response
// package, so there is no hidden package-level state:
//
//	reg := models.NewRegistry()
//	petstore.Register(reg)
//
//	resp, err := response.New(httpResp, response.WithRegistry(reg))
//
// Each model owns its hydration. Most generated models delegate to Decode,
// which maps JSON keys onto struct fields through their `json` tags.
package models
