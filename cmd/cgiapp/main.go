// A sample routed application run as a Gemini CGI script: the gateway
// spawns one process per request and reads the response from stdout.
package main

import (
	"context"
	"fmt"

	"github.com/gemgate/gemgate/cgi"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
	"github.com/gemgate/gemgate/router"
)

func main() {
	rt := router.New()

	rt.RegisterFunc("/", func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return response.Gemtext("# gemgate\n\nServed over CGI.\n"), nil
	})

	rt.RegisterFunc("/greet/:name", func(ctx context.Context, r *request.Request) (*response.Response, error) {
		return response.Gemtext(fmt.Sprintf("# Hello, %s!\n", r.Params["name"])), nil
	})

	cgi.Run(rt.Seal())
}
