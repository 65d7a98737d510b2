// Command folio runs the portfolio site backend: public content API,
// admin CMS endpoints, chatbot, and the SSE change stream.
//
// All lifecycle wiring lives in internal/app/bootstrap; this entrypoint
// only hands the hooks to the WAFFLE runtime.
package main

import (
	"context"

	"github.com/foliostack/folio/internal/app/bootstrap"

	"github.com/dalemusser/waffle/app"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
