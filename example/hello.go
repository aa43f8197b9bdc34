package main

import (
	"io/fs"
	"log/slog"

	"github.com/jpalmerr/poolhttp"
)

// helloApp answers GET / with index.html and everything else with 404.html,
// both read from res.
type helloApp struct {
	res    fs.FS
	logger *slog.Logger
}

func (a helloApp) Handle(req *poolhttp.Request) *poolhttp.Response {
	name, status := "404.html", poolhttp.StatusNotFound
	if req.Method == poolhttp.MethodGet && req.Path == "/" {
		name, status = "index.html", poolhttp.StatusOK
	}

	resp, err := poolhttp.ServeFile(a.res, name, status)
	if err != nil {
		// let the server fall back to its own pages
		a.logger.Warn("page missing", "page", name, "error", err)
		return nil
	}
	return &resp
}
