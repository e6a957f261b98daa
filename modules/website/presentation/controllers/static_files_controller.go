package controllers

import (
	"net/http"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"

	"github.com/plexdi/studio/pkg/application"
)

type StaticFilesController struct {
	fsInstances []*hashfs.FS
}

func NewStaticFilesController(fsInstances []*hashfs.FS) application.Controller {
	return &StaticFilesController{fsInstances: fsInstances}
}

func (c *StaticFilesController) Key() string {
	return "StaticFilesController"
}

func (c *StaticFilesController) Register(r *mux.Router) {
	for _, fsInstance := range c.fsInstances {
		handler := hashfs.FileServer(fsInstance)
		r.PathPrefix("/static/").Handler(http.StripPrefix("/", handler))
	}
}
