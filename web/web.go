// Package web holds the static upload page served on the index route.
package web

import _ "embed"

//go:embed index.html
var IndexPage []byte
