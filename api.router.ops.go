package main

import (
	"net/http"
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
)

// runtime profiles exposed under /ops/debug/pprof/ when the profiler is enabled.
var profiles = []string{"heap", "allocs", "goroutine", "threadcreate", "block", "mutex"}

// SetupOpsRoutes injects internal operations related endpoints.
func (api *APIHandler) SetupOpsRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/ops/configs", m.ops(api.GetConfigs))
	router.GET("/ops/stats", m.ops(api.GetStatistics))

	if api.config.ProfilerEnable {
		router.GET("/ops/debug/pprof/", m.ops(WrapHandler(http.HandlerFunc(pprof.Index))))
		router.GET("/ops/debug/pprof/profile", m.ops(WrapHandler(http.HandlerFunc(pprof.Profile))))
		router.GET("/ops/debug/pprof/trace", m.ops(WrapHandler(http.HandlerFunc(pprof.Trace))))
		router.GET("/ops/debug/pprof/symbol", m.ops(WrapHandler(http.HandlerFunc(pprof.Symbol))))
		router.GET("/ops/debug/pprof/cmdline", m.ops(WrapHandler(http.HandlerFunc(pprof.Cmdline))))
		for _, name := range profiles {
			router.GET("/ops/debug/pprof/"+name, m.ops(WrapHandler(pprof.Handler(name))))
		}
	}
	return router
}

// WrapHandler adapts a standard http.Handler to the router handle signature.
func WrapHandler(h http.Handler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.ServeHTTP(w, r)
	}
}
