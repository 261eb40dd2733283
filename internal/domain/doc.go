// Package domain contains the core domain model for paslint.
//
// The domain is parser- and persistence-agnostic: it does not depend on YAML parsing,
// the filesystem, or any concrete scanner. Infra/adapters map into/from these types.
package domain
