// Package web holds the single page served by the relay.
package web

import _ "embed"

//go:embed templates/index.html
var index []byte

func Index() []byte {
	return index
}
