// Package serving exposes the HTTP API through which runs are requested
// and their results retrieved.
package serving

import (
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackwhelpton/fasthttp-routing/v2"
	"github.com/kmw248/mcmc/results"
	"github.com/kmw248/mcmc/runqueue"
	"github.com/valyala/fasthttp"
)

type ServerOptions struct {
	ListenAddr string
	Publisher  *runqueue.Publisher
	Store      results.Store
}

// Server accepts run requests over HTTP and serves stored results. Runs
// are executed asynchronously: POST /runs enqueues a job and returns its
// ID, which the caller polls under GET /runs/<id>.
type Server struct {
	listenAddr string
	publisher  *runqueue.Publisher
	store      results.Store
}

func NewServer(options *ServerOptions) *Server {
	return &Server{
		listenAddr: options.ListenAddr,
		publisher:  options.Publisher,
		store:      options.Store,
	}
}

func (s *Server) ListenAndServe() error {
	router := routing.New()

	router.Post("/runs", s.createRunHandler())
	router.Get("/runs/<id>", s.getRunHandler())
	router.Get("/runs/<id>/samples", s.getRunSamplesHandler())

	return fasthttp.ListenAndServe(s.listenAddr, router.HandleRequest)
}

func (s *Server) createRunHandler() routing.Handler {
	return func(c *routing.Context) error {
		var job runqueue.Job
		if err := c.Read(&job); err != nil {
			return routing.NewHTTPError(fasthttp.StatusBadRequest, fmt.Sprintf("could not parse body: %v", err))
		}

		// IDs are assigned here so callers cannot collide with or
		// overwrite previous runs.
		job.ID = uuid.New().String()
		if err := job.Validate(); err != nil {
			return routing.NewHTTPError(fasthttp.StatusBadRequest, err.Error())
		}

		if err := s.publisher.Enqueue(job); err != nil {
			return fmt.Errorf("could not enqueue run: err = %w", err)
		}

		b, err := json.Marshal(&struct {
			ID string `json:"id"`
		}{ID: job.ID})
		if err != nil {
			return fmt.Errorf("could not marshal response: err = %w", err)
		}
		c.SetStatusCode(fasthttp.StatusAccepted)
		return c.Write(b)
	}
}

func (s *Server) getRunHandler() routing.Handler {
	return func(c *routing.Context) error {
		result, err := s.store.Get(c.Param("id"))
		if err == results.ErrNotFound {
			return routing.NewHTTPError(fasthttp.StatusNotFound, fmt.Sprintf("no run with id %s", c.Param("id")))
		} else if err != nil {
			return fmt.Errorf("could not fetch run: err = %w", err)
		}

		// The chain itself is served under /samples to keep the result
		// payload small.
		b, err := json.Marshal(result.WithoutSamples())
		if err != nil {
			return fmt.Errorf("could not marshal run: err = %w", err)
		}
		return c.Write(b)
	}
}

func (s *Server) getRunSamplesHandler() routing.Handler {
	return func(c *routing.Context) error {
		result, err := s.store.Get(c.Param("id"))
		if err == results.ErrNotFound {
			return routing.NewHTTPError(fasthttp.StatusNotFound, fmt.Sprintf("no run with id %s", c.Param("id")))
		} else if err != nil {
			return fmt.Errorf("could not fetch run: err = %w", err)
		}

		b, err := json.Marshal(&struct {
			ID      string    `json:"id"`
			Samples []float64 `json:"samples"`
		}{ID: result.ID, Samples: result.Samples})
		if err != nil {
			return fmt.Errorf("could not marshal samples: err = %w", err)
		}
		return c.Write(b)
	}
}
