// Package travelgo embeds the web front end's templates and static assets.
package travelgo

import "embed"

// Embedded assets for production builds.
// Dev mode reads the same trees from disk so template edits show up without a rebuild.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
