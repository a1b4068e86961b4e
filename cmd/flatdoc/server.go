package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ehsanranjbar/flatdoc/flatten"
	"github.com/ehsanranjbar/flatdoc/store"
	"github.com/ehsanranjbar/flatdoc/value"
	"github.com/google/uuid"
	echo "github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is an echo server exposing a DB over HTTP.
type Server struct {
	db  *DB
	log *zap.Logger
}

// NewServer creates a new server
func NewServer(db *DB, log *zap.Logger) *Server {
	return &Server{db: db, log: log}
}

// Handler returns the routes of the server. Metrics of reg are served on /metrics.
func (srv *Server) Handler(reg *prometheus.Registry) *echo.Echo {
	requests := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flatdoc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of handled HTTP requests",
		},
		[]string{"method", "status"},
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			requests.WithLabelValues(v.Method, strconv.Itoa(v.Status)).Inc()
			srv.log.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	e.POST("/docs", srv.PutDoc)
	e.GET("/docs", srv.FindDocs)
	e.GET("/docs/:id", srv.GetDoc)
	e.DELETE("/docs/:id", srv.DeleteDoc)
	e.GET("/query", srv.Query)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return e
}

func (srv *Server) PutDoc(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
	}
	doc, err := value.Unmarshal(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Errorf("failed to parse document: %w", err))
	}

	id, err := srv.db.Put(doc)
	if errors.Is(err, flatten.ErrFirstLevelMustBeAnObject) ||
		errors.Is(err, flatten.ErrKeyWillBeOverwritten) ||
		errors.Is(err, flatten.ErrMaxDepthExceeded) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Errorf("failed to put document: %w", err))
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": id.String()})
}

func (srv *Server) GetDoc(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Errorf("failed to parse id: %w", err))
	}

	r, err := srv.db.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Errorf("failed to get document: %w", err))
	}

	return c.JSONBlob(http.StatusOK, []byte(recordValue(r).String()))
}

func (srv *Server) DeleteDoc(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Errorf("failed to parse id: %w", err))
	}

	err = srv.db.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Errorf("failed to delete document: %w", err))
	}

	return c.NoContent(http.StatusNoContent)
}

func (srv *Server) FindDocs(c echo.Context) error {
	paths := c.QueryParams()["path"]
	if len(paths) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one path is required")
	}

	ids, err := srv.db.Find(paths...)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Errorf("failed to find documents: %w", err))
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return c.JSON(http.StatusOK, out)
}

func (srv *Server) Query(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	var limit int
	if s := c.QueryParam("limit"); s != "" {
		var err error
		limit, err = strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Errorf("failed to parse limit: %w", err))
		}
	}

	rs, err := srv.db.Query(q, limit)
	if errors.Is(err, store.ErrInvalidQuery) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Errorf("failed to query documents: %w", err))
	}

	items := make([]value.Value, 0, len(rs))
	for _, r := range rs {
		items = append(items, recordValue(r))
	}
	return c.JSONBlob(http.StatusOK, []byte(value.Array(items...).String()))
}
