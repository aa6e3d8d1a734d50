package infoserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/fleet"
	"github.com/zhulik/fleetscaler/internal/httpserver"
	"github.com/zhulik/fleetscaler/internal/metrics"
	"github.com/zhulik/fleetscaler/pkg/json"
)

// MaxScaleBodyBytes limits the POST /scale request body.
const MaxScaleBodyBytes = 64 << 10

var validate = validator.New() //nolint:gochecknoglobals

// scaleRequest is the POST /scale body. Count is a pointer so a missing count is rejected
// instead of being read as zero.
type scaleRequest struct {
	Count            *int   `json:"count"                      validate:"required"`
	InstanceType     string `json:"instanceType,omitempty"`
	SubnetID         string `json:"subnetId,omitempty"`
	PlacementGroupID string `json:"placementGroupId,omitempty"`
	DryRun           bool   `json:"dryRun,omitempty"`
}

func (r scaleRequest) scalingRequest() core.ScalingRequest {
	return core.ScalingRequest{
		DesiredCount:     *r.Count,
		InstanceType:     r.InstanceType,
		SubnetID:         r.SubnetID,
		PlacementGroupID: r.PlacementGroupID,
		DryRun:           r.DryRun,
	}
}

type Server struct {
	*httpserver.Server

	injector *do.Injector
	provider core.Provider
	scaler   *fleet.Scaler
	timeout  time.Duration
}

// NewServer creates a new Server instance.
func NewServer(injector *do.Injector) (*Server, error) {
	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	server, err := httpserver.NewServer(injector, "infoserver.Server", config.HTTPPort())
	if err != nil {
		return nil, fmt.Errorf("failed to create a new http server: %w", err)
	}

	scaler, err := do.Invoke[*fleet.Scaler](injector)
	if err != nil {
		return nil, err
	}

	recorder, err := do.Invoke[*metrics.Recorder](injector)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		Server:   server,
		injector: injector,
		provider: do.MustInvoke[core.Provider](injector),
		scaler:   scaler,
		timeout:  config.RunTimeout(),
	}

	srv.Router.GET("/provider", srv.ProviderHandler)
	srv.Router.GET("/fleet", srv.FleetHandler)
	srv.Router.GET("/plan/:count", srv.PlanHandler)
	srv.Router.POST("/scale", srv.ScaleHandler)
	srv.Router.GET("/pulse", srv.PulseHandler)
	srv.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(recorder.Registry, promhttp.HandlerOpts{})))

	return srv, nil
}

func (s *Server) ProviderHandler(c *gin.Context) {
	info, err := s.provider.Info(c.Request.Context())
	if err != nil {
		c.Error(err) //nolint:errcheck

		return
	}

	c.IndentedJSON(http.StatusOK, info)
}

// runContext bounds a handler's scaler call by the run timeout.
func (s *Server) runContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.timeout)
}

func (s *Server) FleetHandler(c *gin.Context) {
	ctx, cancel := s.runContext(c)
	defer cancel()

	classification, err := s.scaler.Fleet(ctx)
	if err != nil {
		renderError(c, err)

		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"slots":    lo.Ternary(classification.Slots == nil, []core.Slot{}, classification.Slots),
		"shadowed": lo.Ternary(classification.Shadowed == nil, []string{}, classification.Shadowed),
	})
}

func (s *Server) PlanHandler(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be an integer"})

		return
	}

	ctx, cancel := s.runContext(c)
	defer cancel()

	plan, err := s.scaler.Plan(ctx, count)
	if err != nil {
		renderError(c, err)

		return
	}

	c.IndentedJSON(http.StatusOK, plan)
}

func (s *Server) ScaleHandler(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxScaleBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})

			return
		}

		c.Error(err) //nolint:errcheck

		return
	}

	req, err := json.Unmarshal[scaleRequest](body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	err = validate.Struct(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count is required"})

		return
	}

	ctx, cancel := s.runContext(c)
	defer cancel()

	result, err := s.scaler.Scale(ctx, req.scalingRequest())
	if err != nil {
		if core.IsCommandFailure(err) {
			c.IndentedJSON(http.StatusBadGateway, gin.H{
				"error":         err.Error(),
				"failedBatches": lo.Map(core.FailedBatches(err), func(b core.Batch, _ int) string { return b.String() }),
				"result":        result,
			})

			return
		}

		renderError(c, err)

		return
	}

	c.IndentedJSON(http.StatusOK, result)
}

func (s *Server) PulseHandler(c *gin.Context) {
	errs := lo.PickBy(s.injector.HealthCheck(), func(_ string, err error) bool {
		return err != nil
	})

	if len(errs) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"errors": lo.MapValues(errs, func(err error, _ string) string { return err.Error() }),
		})

		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidDesiredCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case core.IsQueryFailure(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.Error(err) //nolint:errcheck
	}
}
