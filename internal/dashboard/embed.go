package dashboard

import "embed"

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets/*
var assetsFS embed.FS

// AssetVersion is part of every static asset URL. Bump it whenever a file
// under assets/ changes so browsers drop their cached copy.
const AssetVersion = "v3"
